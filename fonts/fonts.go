// Package fonts resolves font families for text records. A family must be
// registered before text can use it; loading reports the family's category,
// which text records keep as their type face.
package fonts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

var ErrUnavailable = errors.New("font unavailable")

const (
	SansSerif   = "sans-serif"
	Serif       = "serif"
	Monospace   = "monospace"
	Display     = "display"
	Handwriting = "handwriting"
)

type Family struct {
	Name     string
	Category string
}

// Registry holds the families available for rendering.
type Registry struct {
	mu       sync.RWMutex
	families map[string]Family
}

func NewRegistry() *Registry {
	return &Registry{families: make(map[string]Family)}
}

// Builtin returns a registry preloaded with the Go font family.
func Builtin() *Registry {
	r := NewRegistry()
	builtin := []struct {
		name, category string
		ttf            []byte
	}{
		{"Go", SansSerif, goregular.TTF},
		{"Go Medium", SansSerif, gomedium.TTF},
		{"Go Bold", SansSerif, gobold.TTF},
		{"Go Italic", SansSerif, goitalic.TTF},
		{"Go Mono", Monospace, gomono.TTF},
		{"Go Smallcaps", Display, gosmallcaps.TTF},
	}
	for _, b := range builtin {
		if err := r.Register(b.name, b.category, b.ttf); err != nil {
			panic(err)
		}
	}
	return r
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register parses ttf and makes it available under name.
func (r *Registry) Register(name, category string, ttf []byte) error {
	if key(name) == "" {
		return fmt.Errorf("%w: empty family name", ErrUnavailable)
	}
	if _, err := truetype.Parse(ttf); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.families[key(name)] = Family{Name: name, Category: category}
	return nil
}

// Load makes sure family is available and returns its category.
func (r *Registry) Load(ctx context.Context, family string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.families[key(family)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnavailable, family)
	}
	return f.Category, nil
}

// Families lists the registered families sorted by name.
func (r *Registry) Families() []Family {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Family, 0, len(r.families))
	for _, f := range r.families {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
