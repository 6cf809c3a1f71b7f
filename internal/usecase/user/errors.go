// Package user implements account registration, profiles and author
// subscriptions.
package user

import "errors"

var (
	// ErrUserNotFound is returned when the requested user or author does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by Register for an email already in use.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrUsernameTaken is returned by Register for a username already in use.
	ErrUsernameTaken = errors.New("user with this username already exists")

	// ErrWrongPassword is returned by SetPassword when current_password does not match.
	ErrWrongPassword = errors.New("current password is invalid")

	// ErrSelfSubscription is returned when a user tries to follow themselves.
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")

	// ErrAlreadySubscribed is returned for a duplicate subscription.
	ErrAlreadySubscribed = errors.New("already subscribed to this author")

	// ErrNotSubscribed is returned when removing a subscription that does not exist.
	ErrNotSubscribed = errors.New("not subscribed to this author")
)
