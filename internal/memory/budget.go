package memory

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// ParseLimit parses a human-readable size such as "512MiB" or "2GB".
// An empty string or "0" means no limit.
func ParseLimit(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, apperrors.ValidationError{Field: "memory-limit", Message: fmt.Sprintf("cannot parse %q: %v", s, err)}
	}
	return n, nil
}

// FormatBytes renders n in binary units, e.g. "1.5 GiB".
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}

// Budget bounds how much memory a run may plan to use. Zero fields are
// unbounded.
type Budget struct {
	// Limit is the user-configured ceiling.
	Limit uint64
	// Available is what the system reported as available at run start.
	Available uint64
}

// Effective returns the tighter of the two bounds, or 0 when neither is set.
func (b Budget) Effective() uint64 {
	switch {
	case b.Limit == 0:
		return b.Available
	case b.Available == 0:
		return b.Limit
	}
	return min(b.Limit, b.Available)
}

// Check returns a MemoryError when requested exceeds the budget.
func (b Budget) Check(requested uint64) error {
	limit := b.Effective()
	if limit == 0 || requested <= limit {
		return nil
	}
	return apperrors.MemoryError{Requested: requested, Available: b.Available, Limit: b.Limit}
}
