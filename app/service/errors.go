package service

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
	ErrGateway            = errors.New("payment gateway request failed")
)
