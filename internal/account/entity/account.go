package entity

import (
	"strings"
	"time"
)

// Account is the durable record of a user, keyed by normalized email.
//
// OTP state (code, issued-at, attempt counter) is embedded in the account
// because verification and password reset both operate on the same row the
// credentials live in.
type Account struct {
	ID           int64
	Email        string
	Password     string // hashed
	FirstName    string
	LastName     string
	Mobile       string
	IsActive     bool
	IsStaff      bool
	OTPCode      *string
	OTPCreatedAt *time.Time
	OTPAttempts  int16
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, trimming when either is empty.
func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Locked reports whether the account has burned through its failed OTP
// attempts and needs a fresh code before any further checks.
func (a Account) Locked() bool {
	return a.OTPAttempts >= OTPMaxAttempts
}

// OTPExpired reports whether the stored code is missing or older than the
// OTP lifetime at the given instant.
func (a Account) OTPExpired(now time.Time) bool {
	if a.OTPCode == nil || a.OTPCreatedAt == nil {
		return true
	}

	return now.After(a.OTPCreatedAt.Add(OTPLifetime))
}

// NewAccount is the payload for creating an account during registration.
type NewAccount struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Mobile    string
	OTP       OTPIssue
}

// OTPIssue is a freshly generated code with its issuance time. Persisting an
// issue always resets the attempt counter to zero.
type OTPIssue struct {
	Code     string
	IssuedAt time.Time
}

// ProfileChange is the payload for updating an account's own profile fields.
type ProfileChange struct {
	ID        int64
	FirstName string
	LastName  string
	Mobile    string
}

// ListFilter narrows and pages the admin account listing.
type ListFilter struct {
	Search   string
	IsSearch bool
	Size     int32
	Offset   int32
}

// NormalizeEmail lower-cases and trims an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
