package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avetrovs/userhub/internal/common"
	"github.com/avetrovs/userhub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleUser() *models.User {
	dob, _ := models.ParseDate("1990-01-01")
	return &models.User{
		ID:           "9f3c0c5e-0000-4000-8000-000000000001",
		Username:     "alice01",
		FullName:     "Alice A",
		PasswordHash: "$2a$10$hash",
		DateOfBirth:  dob,
		Gender:       models.GenderFemale,
		Country:      "US",
	}
}

const insertPattern = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*full_name,\s*password_hash,\s*date_of_birth,\s*gender,\s*country\)`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUser()
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(insertPattern).
		WithArgs(u.ID, u.Username, u.FullName, u.PasswordHash, u.DateOfBirth, u.Gender, u.Country).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Username != "alice01" || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertPattern).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Create(context.Background(), sampleUser())
	if !errors.Is(err, common.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertPattern).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleUser())
	if err == nil || errors.Is(err, common.ErrDuplicateUsername) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const selectByUsernamePattern = `(?s)^SELECT\s+id,\s*username,\s*full_name,\s*password_hash,\s*date_of_birth,\s*gender,\s*country,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "full_name", "password_hash", "date_of_birth", "gender", "country", "created_at"}).
		AddRow("u-1", "alice01", "Alice A", "$2a$10$hash", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "Female", "US", time.Now())
	mock.ExpectQuery(selectByUsernamePattern).
		WithArgs("alice01").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice01")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != "u-1" || got.Gender != models.GenderFemale {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.DateOfBirth.String() != "1990-01-01" {
		t.Fatalf("unexpected date of birth: %s", got.DateOfBirth)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByUsernamePattern).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)WHERE\s+id\s*=\s*\$1`).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "gone")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
