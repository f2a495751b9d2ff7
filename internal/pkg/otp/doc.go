// Package otp generates one-time numeric passcodes.
//
// Codes are short-lived secrets delivered out of band (email) and compared
// against a stored value, so they must come from an unpredictable source.
package otp
