package flow

import (
	"context"
	"fmt"
)

// DefaultThemeKey is the slot holding the theme preference.
const DefaultThemeKey = "theme"

// Theme is the render layer's color scheme. The editor core stores it but never reads it.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Themes persists the theme preference in its own Store slot.
type Themes struct {
	store Store
	key   string
}

// NewThemes creates a theme preference over store. An empty key means DefaultThemeKey.
func NewThemes(store Store, key string) *Themes {
	if key == "" {
		key = DefaultThemeKey
	}
	return &Themes{store: store, key: key}
}

// Get returns the stored theme, or Light if none or an unknown value is stored.
func (t *Themes) Get(ctx context.Context) (Theme, error) {
	b, err := t.store.Get(ctx, t.key)
	if err != nil {
		return Light, fmt.Errorf("flow: read theme: %w", err)
	}
	th, err := ParseTheme(string(b))
	if err != nil {
		return Light, nil
	}
	return th, nil
}

// Set stores th.
func (t *Themes) Set(ctx context.Context, th Theme) error {
	if _, err := ParseTheme(string(th)); err != nil {
		return err
	}
	if err := t.store.Put(ctx, t.key, []byte(th)); err != nil {
		return fmt.Errorf("flow: write theme: %w", err)
	}
	return nil
}

// Toggle flips the stored theme and returns the new value.
func (t *Themes) Toggle(ctx context.Context) (Theme, error) {
	cur, err := t.Get(ctx)
	if err != nil {
		return cur, err
	}
	next := cur.Toggled()
	if err := t.Set(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}
