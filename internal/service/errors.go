// internal/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks request-shape problems the caller can fix.
var ErrValidation = errors.New("invalid request")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
