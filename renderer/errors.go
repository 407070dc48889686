package renderer

import "fmt"

// ResourceError reports a GPU resource that could not be created.
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("render resource %s unavailable", e.Resource)
	}
	return fmt.Sprintf("render resource %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
