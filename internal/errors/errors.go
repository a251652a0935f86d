package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrConfigRead         = errors.New("unable to read dataset config")
	ErrInsufficientConfig = errors.New("No database name")
	ErrIO                 = errors.New("unable to read script")
	ErrNoResetScripts     = errors.New("There are no reset scripts to run")
	ErrExecution          = errors.New("statement failed")
	ErrMissingArgument    = errors.New("missing argument")
	ErrConnect            = errors.New("unable to connect to database")
	ErrUnknownDriver      = errors.New("unknown driver")
)

func WrapConfigRead(path string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrConfigRead, path, err)
}

func WrapIO(path string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrIO, path, err)
}

func WrapExecution(err error) error {
	return fmt.Errorf("%w: %w", ErrExecution, err)
}

func WrapConnect(err error) error {
	return fmt.Errorf("%w: %w", ErrConnect, err)
}

func WrapUnknownDriver(driver string) error {
	return fmt.Errorf("%w %q: must be one of pgx, postgres, sqlite", ErrUnknownDriver, driver)
}

// MissingArgument carries the exact message shown to the user while still
// matching ErrMissingArgument.
type MissingArgument struct {
	Msg string
}

func (e *MissingArgument) Error() string { return e.Msg }

func (e *MissingArgument) Is(target error) bool { return target == ErrMissingArgument }

func NewMissingArgument(msg string) error {
	return &MissingArgument{Msg: msg}
}
