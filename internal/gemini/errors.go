package gemini

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when the service answered successfully but without a usable candidate.
var ErrEmptyResult = errors.New("no candidates returned from API")

// ConfigError means a required setting is missing. Every call fails fast with it.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing Gemini configuration: %s is not set", e.Setting)
}

// TransportError wraps a failure to reach the service at all.
type TransportError struct {
	Transport string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Transport, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-success HTTP status from the service.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}
