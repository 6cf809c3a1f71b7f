package auth

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")

	// ErrInvalidToken covers malformed, badly signed and expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenRevoked is returned for a token that was logged out.
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrRevocationUnavailable wraps failures of the revocation store.
	ErrRevocationUnavailable = errors.New("token revocation store unavailable")
)
