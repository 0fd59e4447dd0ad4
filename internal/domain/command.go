package domain

// ExecCommand represents an external command to be executed.
// It carries the registration tool invocation between layers without
// exposing os/exec details to the use cases.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}
