package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrInvalidPhone   = errors.New("invalid phone number")
)
