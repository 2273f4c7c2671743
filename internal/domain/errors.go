package domain

import "fmt"

// StatusError is returned by API clients when the upstream answers with a
// status other than 200.
type StatusError struct {
	API        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.API, e.StatusCode, e.Body)
}

// DecodeError is returned when a response body is not the expected JSON.
// Body is kept so callers can echo it for diagnosis.
type DecodeError struct {
	API  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.API, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
