package users

import "errors"

var (
	ErrUserNotFound = errors.New("users: user not found")
	ErrEmptyID      = errors.New("users: empty user id")
)
