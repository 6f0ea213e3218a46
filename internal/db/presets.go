package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/style-remixer/internal/presets"
	"github.com/jonathan/style-remixer/internal/types"
)

var _ presets.Store = (*DB)(nil)

// SaveCurrent replaces the owner's current configuration
func (db *DB) SaveCurrent(ctx context.Context, owner uuid.UUID, cfg types.StyleConfig) error {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal current config: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO current_configs (owner_id, config)
		 VALUES ($1, $2)
		 ON CONFLICT (owner_id) DO UPDATE SET config = $2, updated_at = NOW()`,
		owner, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save current config: %w", err)
	}
	return nil
}

// LoadCurrent returns the owner's current configuration, or the defaults
func (db *DB) LoadCurrent(ctx context.Context, owner uuid.UUID) (*types.StyleConfig, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT config FROM current_configs WHERE owner_id = $1`,
		owner,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			cfg := types.DefaultStyleConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to load current config: %w", err)
	}

	var cfg types.StyleConfig
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current config: %w", err)
	}
	return &cfg, nil
}

// SavePreset inserts or replaces a preset
func (db *DB) SavePreset(ctx context.Context, owner uuid.UUID, preset *types.Preset) (*types.Preset, error) {
	p := *preset
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	mix, skin, task, err := marshalSections(&p)
	if err != nil {
		return nil, err
	}

	upsert := func() (int64, error) {
		tag, err := db.pool.Exec(ctx,
			`INSERT INTO style_presets (id, owner_id, name, prompt, custom_prompt, mix, skin, task, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO UPDATE SET
			   name = $3, prompt = $4, custom_prompt = $5, mix = $6, skin = $7, task = $8
			 WHERE style_presets.owner_id = $2`,
			p.ID, owner, p.Name, p.Prompt, p.CustomPrompt, mix, skin, task, p.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save preset: %w", err)
		}
		return tag.RowsAffected(), nil
	}

	n, err := upsert()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// The ID is held by another owner; store this copy under a new one.
		p.ID = uuid.New()
		if n, err = upsert(); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("failed to save preset %s: no row written", p.ID)
		}
	}
	return &p, nil
}

// GetPreset retrieves a preset by ID
func (db *DB) GetPreset(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*types.Preset, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, prompt, custom_prompt, mix, skin, task, created_at
		 FROM style_presets WHERE owner_id = $1 AND id = $2`,
		owner, id,
	)
	p, err := scanPreset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &presets.NotFoundError{Ref: id.String()}
		}
		return nil, err
	}
	return p, nil
}

// ListPresets returns the owner's presets, newest first
func (db *DB) ListPresets(ctx context.Context, owner uuid.UUID) ([]types.Preset, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, prompt, custom_prompt, mix, skin, task, created_at
		 FROM style_presets WHERE owner_id = $1
		 ORDER BY created_at DESC, seq DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	list := make([]types.Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate presets: %w", err)
	}
	return list, nil
}

// DeletePreset removes a preset
func (db *DB) DeletePreset(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM style_presets WHERE owner_id = $1 AND id = $2`,
		owner, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &presets.NotFoundError{Ref: id.String()}
	}
	return nil
}

func scanPreset(row pgx.Row) (*types.Preset, error) {
	var (
		p               types.Preset
		mix, skin, task []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.Prompt, &p.CustomPrompt, &mix, &skin, &task, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan preset: %w", err)
	}

	if err := json.Unmarshal(mix, &p.Mix); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset mix: %w", err)
	}
	if err := json.Unmarshal(skin, &p.Skin); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset skin: %w", err)
	}
	if err := json.Unmarshal(task, &p.Task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset task: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func marshalSections(p *types.Preset) (mix, skin, task []byte, err error) {
	if mix, err = json.Marshal(p.Mix); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal preset mix: %w", err)
	}
	if skin, err = json.Marshal(p.Skin); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal preset skin: %w", err)
	}
	if task, err = json.Marshal(p.Task); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal preset task: %w", err)
	}
	return mix, skin, task, nil
}
