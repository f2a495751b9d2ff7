package entity

import "time"

const (
	// OTPLength is the number of digits in a verification code.
	OTPLength = 6

	// OTPLifetime is how long a code stays valid after issuance.
	OTPLifetime = 10 * time.Minute

	// OTPMaxAttempts is the number of failed checks before lockout.
	OTPMaxAttempts = 5
)

// Role is the authorization subject derived from the account's staff flag.
type Role string

const (
	// RoleUser is a regular verified account.
	RoleUser Role = "user"

	// RoleStaff is an account with administrative privileges.
	RoleStaff Role = "staff"
)

// String returns the role as a casbin subject.
func (r Role) String() string {
	return string(r)
}

// RoleOf maps the staff flag to a role.
func RoleOf(isStaff bool) Role {
	if isStaff {
		return RoleStaff
	}

	return RoleUser
}
