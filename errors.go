package gralloc

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/internal/selector"
	"github.com/gogpu/gralloc/usage"
)

// Errors returned by the Allocator. Match them with errors.Is.
var (
	// ErrInvalidFormat is returned for unknown or unusable formats.
	ErrInvalidFormat = format.ErrInvalidFormat

	// ErrInvalidUsage is returned for usage masks with unrecognized bits
	// and for YUV requests that forbid compression.
	ErrInvalidUsage = usage.ErrInvalidUsage

	// ErrNoCompatibleFormat is returned when no format satisfies every
	// producer and consumer.
	ErrNoCompatibleFormat = selector.ErrNoCompatibleFormat

	// ErrInvalidModifierCombination is returned when requested modifiers
	// cannot be applied.
	ErrInvalidModifierCombination = format.ErrInvalidModifierCombination

	// ErrNotTextureCompatible is returned by Buffer.TextureDescriptor for
	// layouts a GPU texture cannot describe.
	ErrNotTextureCompatible = errors.New("gralloc: buffer is not texture compatible")
)
