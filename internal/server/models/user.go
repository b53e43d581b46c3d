// Package models holds the persistent entities of the server side.
package models

import "time"

// Gender is the closed set of values accepted at registration.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User is the stored account record. PasswordHash always holds a bcrypt
// hash, never plaintext, and is excluded from every API response.
type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	DateOfBirth  Date
	Gender       Gender
	Country      string
	CreatedAt    time.Time
}

// PublicUser is the user view returned by the API: every field except
// the password hash.
type PublicUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	DateOfBirth Date   `json:"dateOfBirth"`
	Gender      Gender `json:"gender"`
	Country     string `json:"country"`
}

// Public strips the credential material from a stored record.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Country:     u.Country,
	}
}
