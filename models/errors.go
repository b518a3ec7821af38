package models

import "errors"

var (
	ErrOutOfStock        = errors.New("not enough stock")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
