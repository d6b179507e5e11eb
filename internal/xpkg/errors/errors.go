package errors

import "errors"

var (
	ErrDBConn  = errors.New("db connection failure")
	ErrRMQConn = errors.New("rabbitmq connection failure")
	ErrMBCh    = errors.New("message broker channel failure")

	ErrFieldIsEmpty = errors.New("field is empty")
	ErrInvalidBody  = errors.New("invalid request body")
)
