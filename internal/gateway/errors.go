package gateway

import (
	"errors"
	"fmt"
)

// The gateway distinguishes failure classes for diagnostics, but every
// class reduces to one displayable string at the UI boundary. Handlers
// call ErrorMessage and never inspect the concrete type.

// displayable is implemented by every gateway error.
type displayable interface {
	Message() string
}

// TransportError is a network-level failure: the request produced no
// HTTP response at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Message() string {
	return "Erro de comunicação com o servidor. Por favor, tente novamente."
}

// StatusError is a non-2xx response, already reduced to a single
// message by parseErrorBody.
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: status %d: %s", e.Code, e.Msg)
}

func (e *StatusError) Message() string { return e.Msg }

// ShapeError is a success response whose payload violated the API
// contract, e.g. a list endpoint answering with a non-array.
type ShapeError struct {
	Expected string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("gateway: unexpected payload shape, want %s", e.Expected)
}

func (e *ShapeError) Message() string {
	return "Resposta inválida do servidor"
}

// DecodeError is malformed JSON in a success response.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gateway: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Message() string {
	return "Resposta inválida do servidor"
}

// ErrorMessage normalizes any error that crossed the gateway into the
// string shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var d displayable
	if errors.As(err, &d) {
		return d.Message()
	}
	return "Erro inesperado. Por favor, tente novamente."
}
