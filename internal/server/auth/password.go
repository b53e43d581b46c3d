package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/avetrovs/userhub/internal/common"
)

// HashCost matches the work factor the account base was created with.
const HashCost = 10

// PasswordHasher performs one-way salted hashing and verification.
// Both operations are CPU-heavy, so they run on their own goroutine and
// honor the caller's context deadline.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: HashCost}
}

type hashResult struct {
	hash string
	err  error
}

// Hash produces a salted bcrypt hash of plaintext. Identical inputs yield
// different hashes across calls. A context deadline hit while hashing
// returns common.ErrDependencyTimeout.
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	ch := make(chan hashResult, 1)
	go func() {
		b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		ch <- hashResult{hash: string(b), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", common.ErrDependencyTimeout
	case res := <-ch:
		return res.hash, res.err
	}
}

type verifyResult struct {
	ok  bool
	err error
}

// Verify reports whether plaintext matches hash. A wrong password is
// (false, nil); only a malformed hash produces an error.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	ch := make(chan verifyResult, 1)
	go func() {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
		switch {
		case err == nil:
			ch <- verifyResult{ok: true}
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			ch <- verifyResult{ok: false}
		default:
			ch <- verifyResult{err: err}
		}
	}()

	select {
	case <-ctx.Done():
		return false, common.ErrDependencyTimeout
	case res := <-ch:
		return res.ok, res.err
	}
}
