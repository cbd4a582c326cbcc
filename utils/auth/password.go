package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing for portal accounts. Every credential-bearing row
// (users, employees, students, managers) stores a bcrypt hash produced
// here; plaintext never reaches the database.

// bcryptCost is the work factor for new hashes.
const bcryptCost = 12

// minPasswordLength matches the request-validation password rule.
const minPasswordLength = 8

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// HashPassword hashes a plaintext password for storage. Passwords under
// minPasswordLength are rejected even when the request validator was
// skipped.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a stored hash against a login attempt. A
// wrong password comes back as ErrPasswordMismatch; anything else is a
// malformed hash.
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
