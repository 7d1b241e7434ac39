// Package tenant resolves tenant ids to on-disk pricing configs.
package tenant

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxIDLength bounds tenant ids.
const MaxIDLength = 64

var (
	// ErrInvalidID is returned for ids that are empty, too long or contain
	// characters outside [a-zA-Z0-9_-].
	ErrInvalidID = errors.New("invalid tenant id")
	// ErrNotFound is returned when a tenant has no pricing config on disk.
	ErrNotFound = errors.New("tenant not found")

	idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateID checks a tenant id before it is used in a path or a query.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidID, MaxIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// resolveDir returns the tenant's directory, refusing anything that escapes root.
func resolveDir(root, id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}

	base, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve tenants dir: %w", err)
	}
	dir := filepath.Join(base, id)

	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: path escapes tenants dir", ErrInvalidID)
	}
	return dir, nil
}
