// Package presets stores named style presets and the current style configuration.
//
// Every operation is scoped by an owner ID. Local CLI use runs as uuid.Nil; the HTTP
// server uses the user ID from a validated token when auth is enabled.
package presets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/types"
)

// Store is the persistence port for presets and the current configuration.
type Store interface {
	// SaveCurrent replaces the owner's current configuration.
	SaveCurrent(ctx context.Context, owner uuid.UUID, cfg types.StyleConfig) error
	// LoadCurrent returns the owner's current configuration, or the defaults when none was saved.
	LoadCurrent(ctx context.Context, owner uuid.UUID) (*types.StyleConfig, error)
	// SavePreset inserts or replaces a preset. A zero ID or CreatedAt is filled in, and an
	// ID already held by another owner is replaced by a fresh one. The returned preset
	// carries the ID actually stored.
	SavePreset(ctx context.Context, owner uuid.UUID, preset *types.Preset) (*types.Preset, error)
	// GetPreset returns a preset or a *NotFoundError.
	GetPreset(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*types.Preset, error)
	// ListPresets returns the owner's presets, newest first.
	ListPresets(ctx context.Context, owner uuid.UUID) ([]types.Preset, error)
	// DeletePreset removes a preset or returns a *NotFoundError.
	DeletePreset(ctx context.Context, owner uuid.UUID, id uuid.UUID) error
}

// NotFoundError is returned when a preset does not exist for the owner.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("preset not found: %s", e.Ref)
}

// NewPreset builds an unsaved preset from a configuration.
// An empty name becomes "Style <date>".
func NewPreset(name, prompt string, cfg types.StyleConfig, now time.Time) *types.Preset {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Style " + now.UTC().Format("2006-01-02")
	}
	return &types.Preset{
		ID:           uuid.New(),
		Name:         name,
		Prompt:       prompt,
		CustomPrompt: cfg.CustomPrompt,
		Mix:          cfg.Mix,
		Skin:         cfg.Skin,
		Task:         cfg.Task,
		CreatedAt:    now.UTC(),
	}
}

// Find resolves ref as a preset ID, falling back to the newest preset with that exact name.
func Find(ctx context.Context, store Store, owner uuid.UUID, ref string) (*types.Preset, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return store.GetPreset(ctx, owner, id)
	}

	list, err := store.ListPresets(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Name == ref {
			return &list[i], nil
		}
	}
	return nil, &NotFoundError{Ref: ref}
}

// Use loads a preset and makes its configuration the owner's current one.
func Use(ctx context.Context, store Store, owner uuid.UUID, ref string) (*types.Preset, error) {
	preset, err := Find(ctx, store, owner, ref)
	if err != nil {
		return nil, err
	}
	if err := store.SaveCurrent(ctx, owner, preset.Config()); err != nil {
		return nil, fmt.Errorf("failed to save current configuration: %w", err)
	}
	return preset, nil
}

// prepare fills a zero ID and CreatedAt and returns a copy safe to store.
func prepare(preset *types.Preset, now func() time.Time) *types.Preset {
	p := *preset
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now().UTC()
	}
	return &p
}
