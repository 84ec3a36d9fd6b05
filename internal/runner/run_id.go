package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const runIDSuffixLen = 8

// NewRunID returns a sortable run id: a UTC timestamp plus a short random
// suffix.
func NewRunID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return FormatRunID(time.Now().UTC(), id.String()), nil
}

// FormatRunID combines a timestamp with a uuid, keeping the uuid's first
// hex characters as the suffix.
func FormatRunID(now time.Time, id string) string {
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > runIDSuffixLen {
		suffix = suffix[:runIDSuffixLen]
	}
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
