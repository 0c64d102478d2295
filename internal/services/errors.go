package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration covers malformed settings and unusable directories.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation covers inputs that fail precondition checks.
	ErrValidation = errors.New("validation error")
	// ErrNotFound covers missing manifests and files that vanished.
	ErrNotFound = errors.New("not found")
	// ErrLocked covers files held open elsewhere at move time.
	ErrLocked = errors.New("file locked")
	// ErrTransient covers filesystem failures worth retrying manually.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failure"
	}
	return strings.Join(parts, ": ")
}
