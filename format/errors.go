package format

import "github.com/cockroachdb/errors"

// Errors returned by format lookups and mapping.
var (
	// ErrInvalidFormat is returned for unknown or structurally invalid
	// base formats.
	ErrInvalidFormat = errors.New("format: invalid format")

	// ErrInvalidModifierCombination is returned when a modifier set
	// cannot be applied to a base format.
	ErrInvalidModifierCombination = errors.New("format: invalid modifier combination")
)

func wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}
