package audio

import "fmt"

// ResourceNotFoundError is returned when a referenced file does not exist
type ResourceNotFoundError struct {
	Path string
	Err  error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %v", e.Path)
}

func (e *ResourceNotFoundError) Unwrap() error {
	return e.Err
}
