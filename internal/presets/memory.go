package presets

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/types"
)

// MemoryStore is an in-process Store, used by tests and by the server when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	current map[uuid.UUID]types.StyleConfig
	presets map[uuid.UUID]map[uuid.UUID]types.Preset
	// seq breaks CreatedAt ties so later saves list first.
	seq   map[uuid.UUID]int
	next  int
	clock func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		current: make(map[uuid.UUID]types.StyleConfig),
		presets: make(map[uuid.UUID]map[uuid.UUID]types.Preset),
		seq:     make(map[uuid.UUID]int),
		clock:   time.Now,
	}
}

func (s *MemoryStore) SaveCurrent(_ context.Context, owner uuid.UUID, cfg types.StyleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[owner] = cfg
	return nil
}

func (s *MemoryStore) LoadCurrent(_ context.Context, owner uuid.UUID) (*types.StyleConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.current[owner]
	if !ok {
		cfg = types.DefaultStyleConfig()
	}
	return &cfg, nil
}

func (s *MemoryStore) SavePreset(_ context.Context, owner uuid.UUID, preset *types.Preset) (*types.Preset, error) {
	p := prepare(preset, s.clock)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.heldByOther(owner, p.ID) {
		p.ID = uuid.New()
	}
	if s.presets[owner] == nil {
		s.presets[owner] = make(map[uuid.UUID]types.Preset)
	}
	s.presets[owner][p.ID] = *p
	s.next++
	s.seq[p.ID] = s.next
	return p, nil
}

// heldByOther reports whether a different owner already stores id. Callers hold s.mu.
func (s *MemoryStore) heldByOther(owner, id uuid.UUID) bool {
	for other, list := range s.presets {
		if other == owner {
			continue
		}
		if _, ok := list[id]; ok {
			return true
		}
	}
	return false
}

func (s *MemoryStore) GetPreset(_ context.Context, owner uuid.UUID, id uuid.UUID) (*types.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presets[owner][id]
	if !ok {
		return nil, &NotFoundError{Ref: id.String()}
	}
	return &p, nil
}

func (s *MemoryStore) ListPresets(_ context.Context, owner uuid.UUID) ([]types.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]types.Preset, 0, len(s.presets[owner]))
	for _, p := range s.presets[owner] {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return s.seq[list[i].ID] > s.seq[list[j].ID]
	})
	return list, nil
}

func (s *MemoryStore) DeletePreset(_ context.Context, owner uuid.UUID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[owner][id]; !ok {
		return &NotFoundError{Ref: id.String()}
	}
	delete(s.presets[owner], id)
	delete(s.seq, id)
	return nil
}
