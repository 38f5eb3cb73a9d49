package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Store keeps rendered proposal PDFs by id.
type Store interface {
	Put(ctx context.Context, id string, pdf []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

var (
	ErrNotFound  = errors.New("proposal not found")
	ErrInvalidID = errors.New("invalid proposal id")
)

const keyPrefix = "proposals/"

// NewID returns a fresh proposal id.
func NewID() string {
	return uuid.NewString()
}

// normalizeID accepts a bare id and rejects anything that is not a UUID.
func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: id is required", ErrInvalidID)
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}
	return u.String(), nil
}

func objectKey(id string) string {
	return keyPrefix + id + ".pdf"
}

func idFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, keyPrefix) || !strings.HasSuffix(key, ".pdf") {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(key, keyPrefix), ".pdf"), true
}
