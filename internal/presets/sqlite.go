package presets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/types"

	_ "modernc.org/sqlite"
)

// SchemaSQL creates the preset tables. It is applied on every Open.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS presets (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    prompt TEXT NOT NULL DEFAULT '',
    custom_prompt TEXT NOT NULL DEFAULT '',
    mix TEXT NOT NULL,
    skin TEXT NOT NULL,
    task TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_presets_owner_created ON presets(owner_id, created_at);

CREATE TABLE IF NOT EXISTS current_config (
    owner_id TEXT PRIMARY KEY,
    config TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore is a Store backed by a local SQLite file.
type SQLiteStore struct {
	db    *sql.DB
	clock func() time.Time
}

// Open opens (creating if needed) the SQLite file at path and applies the schema.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db, clock: time.Now}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveCurrent(ctx context.Context, owner uuid.UUID, cfg types.StyleConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode current config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO current_config(owner_id, config, updated_at) VALUES(?,?,?)
		 ON CONFLICT(owner_id) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at`,
		owner.String(), string(data), s.clock().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save current config: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadCurrent(ctx context.Context, owner uuid.UUID) (*types.StyleConfig, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT config FROM current_config WHERE owner_id = ?`, owner.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		cfg := types.DefaultStyleConfig()
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load current config: %w", err)
	}

	var cfg types.StyleConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode current config: %w", err)
	}
	return &cfg, nil
}

func (s *SQLiteStore) SavePreset(ctx context.Context, owner uuid.UUID, preset *types.Preset) (*types.Preset, error) {
	p := prepare(preset, s.clock)

	mix, skin, task, err := encodeSections(p)
	if err != nil {
		return nil, err
	}

	upsert := func() (int64, error) {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO presets(id, owner_id, name, prompt, custom_prompt, mix, skin, task, created_at)
			 VALUES(?,?,?,?,?,?,?,?,?)
			 ON CONFLICT(id) DO UPDATE SET
			   name = excluded.name, prompt = excluded.prompt, custom_prompt = excluded.custom_prompt,
			   mix = excluded.mix, skin = excluded.skin, task = excluded.task
			 WHERE presets.owner_id = excluded.owner_id`,
			p.ID.String(), owner.String(), p.Name, p.Prompt, p.CustomPrompt, mix, skin, task,
			p.CreatedAt.UTC().Format(timeLayout))
		if err != nil {
			return 0, fmt.Errorf("save preset: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("save preset rows affected: %w", err)
		}
		return n, nil
	}

	n, err := upsert()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// The ID belongs to another owner.
		p.ID = uuid.New()
		if n, err = upsert(); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("save preset: no row written for %s", p.ID)
		}
	}
	return p, nil
}

func (s *SQLiteStore) GetPreset(ctx context.Context, owner uuid.UUID, id uuid.UUID) (*types.Preset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, prompt, custom_prompt, mix, skin, task, created_at
		 FROM presets WHERE owner_id = ? AND id = ?`, owner.String(), id.String())
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Ref: id.String()}
	}
	return p, err
}

func (s *SQLiteStore) ListPresets(ctx context.Context, owner uuid.UUID) ([]types.Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, prompt, custom_prompt, mix, skin, task, created_at
		 FROM presets WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC`, owner.String())
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
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
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return list, nil
}

func (s *SQLiteStore) DeletePreset(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE owner_id = ? AND id = ?`, owner.String(), id.String())
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete preset rows affected: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Ref: id.String()}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*types.Preset, error) {
	var (
		p                       types.Preset
		id, mix, skin, task, ts string
	)
	if err := row.Scan(&id, &p.Name, &p.Prompt, &p.CustomPrompt, &mix, &skin, &task, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan preset: %w", err)
	}

	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("decode preset id: %w", err)
	}
	if p.CreatedAt, err = time.Parse(timeLayout, ts); err != nil {
		return nil, fmt.Errorf("decode preset created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(mix), &p.Mix); err != nil {
		return nil, fmt.Errorf("decode preset mix: %w", err)
	}
	if err := json.Unmarshal([]byte(skin), &p.Skin); err != nil {
		return nil, fmt.Errorf("decode preset skin: %w", err)
	}
	if err := json.Unmarshal([]byte(task), &p.Task); err != nil {
		return nil, fmt.Errorf("decode preset task: %w", err)
	}
	return &p, nil
}

func encodeSections(p *types.Preset) (mix, skin, task string, err error) {
	m, err := json.Marshal(p.Mix)
	if err != nil {
		return "", "", "", fmt.Errorf("encode preset mix: %w", err)
	}
	sk, err := json.Marshal(p.Skin)
	if err != nil {
		return "", "", "", fmt.Errorf("encode preset skin: %w", err)
	}
	t, err := json.Marshal(p.Task)
	if err != nil {
		return "", "", "", fmt.Errorf("encode preset task: %w", err)
	}
	return string(m), string(sk), string(t), nil
}
