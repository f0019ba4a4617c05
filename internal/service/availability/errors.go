package availability

import "errors"

var ErrDoctorNotFound = errors.New("doctor not found")
