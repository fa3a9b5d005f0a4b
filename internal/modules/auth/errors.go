package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrNotApproved        = errors.New("account has not been approved")
	ErrUserNotFound       = errors.New("user not found")
)
