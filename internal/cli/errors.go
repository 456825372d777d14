package cli

import (
	"errors"

	"github.com/ttrash/tt/internal/config"
)

const (
	ExitCodeOK          = 0
	ExitCodeFlagError   = 2
	ExitCodeConfigError = 3
	ExitCodeTrashError  = 127
)

// FlagError is returned when the command line cannot be parsed
type FlagError struct {
	Err error
}

func (e *FlagError) Error() string {
	return e.Err.Error()
}

func (e *FlagError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Run to a process exit status
func ExitCode(err error) int {
	var ferr *FlagError
	switch {
	case err == nil:
		return ExitCodeOK
	case errors.As(err, &ferr):
		return ExitCodeFlagError
	case config.IsParseError(err):
		return ExitCodeConfigError
	default:
		return ExitCodeTrashError
	}
}
