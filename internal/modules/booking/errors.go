package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("booking not found")
	ErrAlreadyCanceled = errors.New("booking already canceled")
	ErrGiftUsed        = errors.New("gift certificate already redeemed")
)
