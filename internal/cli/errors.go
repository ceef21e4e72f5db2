package cli

import (
	"errors"
	"fmt"
)

var (
	ErrLocked = errors.New("app is locked")
	ErrUsage  = errors.New("usage error")
)

func usageError(msg string) error {
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}
