package types

// ErrorShape names how a command reports failure
type ErrorShape string

const (
	// ErrorShapeMessage is a bare message string
	ErrorShapeMessage ErrorShape = "message"
	// ErrorShapeCoded is an object with message and code
	ErrorShapeCoded ErrorShape = "coded"
)

// CommandDefinition describes one named command
type CommandDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
	// ErrorShape is the shape of failures raised by the operation itself.
	// Parameter validation failures are always a bare message, even for
	// coded commands.
	ErrorShape ErrorShape `json:"error_shape"`
	ErrorCode  string     `json:"error_code,omitempty"`
}

// Classification lists how file extensions are read: the binary allow-list
// and the extension to language table
type Classification struct {
	Binary    []string          `json:"binary"`
	Languages map[string]string `json:"languages"`
}

// Parameter describes one command parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}
