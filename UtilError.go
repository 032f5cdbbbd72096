package gobitfinex

import "fmt"

// Error is a coded api error, the exchange rejections carry a remote
// error code next to the message.
type Error interface {
	error
	Code() int
}

var _ Error = (*ServerError)(nil)

// ArgumentError means a caller supplied value failed a precondition,
// the request never went to the network.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument error: %s", e.Msg)
}

// ServerError means the exchange returned a non 2xx status with a
// parseable error envelope. The call reached the exchange and was rejected.
type ServerError struct {
	ErrCode int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.ErrCode, e.Message)
}

func (e *ServerError) Code() int {
	return e.ErrCode
}

// TransportError means the exchange was unreachable, the call timed out,
// or the error body could not be parsed. Distinct from ServerError so the
// caller can tell "rejected" from "unreachable".
type TransportError struct {
	Msg        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %s", e.Msg, e.Err.Error())
	}
	return fmt.Sprintf("transport error: %s", e.Msg)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DeserializationError means a 2xx body did not match the expected schema.
type DeserializationError struct {
	Msg string
	Err error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deserialization error: %s: %s", e.Msg, e.Err.Error())
	}
	return fmt.Sprintf("deserialization error: %s", e.Msg)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
