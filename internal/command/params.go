package command

import "fmt"

// ParamError reports an invalid or missing parameter. It is raised before
// any I/O takes place.
type ParamError struct {
	Param   string
	Message string
}

func (e *ParamError) Error() string {
	return e.Message
}

// Params holds the decoded arguments of one invocation
type Params map[string]any

// String returns a required string parameter. Empty strings are accepted.
func (p Params) String(name string) (string, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return "", &ParamError{Param: name, Message: fmt.Sprintf("missing required parameter: %s", name)}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ParamError{Param: name, Message: fmt.Sprintf("parameter %s must be a string", name)}
	}
	return s, nil
}

// NonEmpty returns a required string parameter that must not be empty
func (p Params) NonEmpty(name string) (string, error) {
	s, err := p.String(name)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &ParamError{Param: name, Message: fmt.Sprintf("parameter %s must not be empty", name)}
	}
	return s, nil
}

// Path returns the required path parameter
func (p Params) Path() (string, error) {
	return p.NonEmpty("path")
}
