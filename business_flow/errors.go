// Package businessflow contains the core business logic and use cases for the short link workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Customer-related errors
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Short link errors
	ErrShortLinkNotFound = errors.New("short link not found")
	ErrAliasTaken        = errors.New("alias already taken")
	ErrNotLinkOwner      = errors.New("short link belongs to another customer")
	ErrShortLinkExpired  = errors.New("short link has expired")
	ErrNoClicksRecorded  = errors.New("no click events recorded for this short link")

	// Click recording errors
	ErrUnknownDeviceType = errors.New("device type could not be classified")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsCustomerNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsShortLinkNotFound(err error) bool {
	return errors.Is(err, ErrShortLinkNotFound)
}

func IsAliasTaken(err error) bool {
	return errors.Is(err, ErrAliasTaken)
}

func IsNotLinkOwner(err error) bool {
	return errors.Is(err, ErrNotLinkOwner)
}

func IsShortLinkExpired(err error) bool {
	return errors.Is(err, ErrShortLinkExpired)
}

func IsNoClicksRecorded(err error) bool {
	return errors.Is(err, ErrNoClicksRecorded)
}

func IsUnknownDeviceType(err error) bool {
	return errors.Is(err, ErrUnknownDeviceType)
}
