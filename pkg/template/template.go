package template

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Arunachalam-140897/DevEngine/pkg/errors"
)

// MaxNameLength bounds template names.
const MaxNameLength = 128

// ErrNotFound is wrapped by every store when a template does not exist.
var ErrNotFound = stderrors.New("template not found")

// Template is a saved manifest bundle.
type Template struct {
	Name      string    `json:"name" yaml:"name"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Store persists templates.
type Store interface {
	// Save creates or replaces the template called name. CreatedAt of an
	// existing template is preserved.
	Save(ctx context.Context, name, content string) (*Template, error)
	Get(ctx context.Context, name string) (*Template, error)
	// List returns every template sorted by name.
	List(ctx context.Context) ([]Template, error)
	Delete(ctx context.Context, name string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// ValidateName checks that name is usable as a template key.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "template name is required")
	}
	if len(name) > MaxNameLength {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("template name exceeds %d characters", MaxNameLength))
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == '/' {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("template name %q contains invalid characters", name))
		}
	}
	return nil
}

func notFound(name string) error {
	return errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("template %q not found", name), ErrNotFound)
}

// NewStore returns a RedisStore when redisAddr is set and a MemoryStore otherwise.
func NewStore(ctx context.Context, redisAddr string) (Store, error) {
	if strings.TrimSpace(redisAddr) == "" {
		return NewMemoryStore(), nil
	}
	s := NewRedisStore(redisAddr)
	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
