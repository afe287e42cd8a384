package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"groundtruth/internal/debug"
)

// DuplicatePolicy controls what happens when a loader encounters a second
// entity with an already-registered unique id.
type DuplicatePolicy int

const (
	// DuplicatesReject aborts the load on the first duplicate id.
	DuplicatesReject DuplicatePolicy = iota
	// DuplicatesSkip keeps the first entity, drops the duplicate, and logs
	// loudly.
	DuplicatesSkip
)

// DefaultMatchThreshold is the minimum fuzzy score (0-100) ByName accepts.
const DefaultMatchThreshold = 75

// Store is the authoritative in-memory record of every entity. Entities are
// mutated in place for the lifetime of the process and never deleted.
type Store struct {
	mu             sync.RWMutex
	entities       map[string]*Entity
	matchThreshold int
	log            *debug.Logger
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithMatchThreshold overrides the fuzzy-match score threshold.
func WithMatchThreshold(threshold int) StoreOption {
	return func(s *Store) { s.matchThreshold = threshold }
}

// WithLogger routes load and lookup warnings through the given debug logger.
func WithLogger(log *debug.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entities:       make(map[string]*Entity),
		matchThreshold: DefaultMatchThreshold,
		log:            debug.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromData builds a store from a list of entity definition maps. This loader
// is strict: the first structurally invalid definition or duplicate id fails
// the whole batch.
func FromData(defs []map[string]any, policy DuplicatePolicy, opts ...StoreOption) (*Store, error) {
	s := NewStore(opts...)
	for i, def := range defs {
		entity, err := parseEntity(def)
		if err != nil {
			return nil, fmt.Errorf("entity at index %d: %w", i, err)
		}
		if err := s.add(entity, policy); err != nil {
			return nil, fmt.Errorf("entity at index %d: %w", i, err)
		}
	}
	return s, nil
}

// LoadDirectories builds a store from every .json file found directly in the
// given directories. Each file must hold a JSON list of entity definitions.
// This loader is lenient: a malformed file or definition is logged and
// skipped, never fatal. Duplicate ids follow the given policy; under
// DuplicatesReject a duplicate is the one load error that aborts.
func LoadDirectories(dirs []string, policy DuplicatePolicy, opts ...StoreOption) (*Store, error) {
	s := NewStore(opts...)

	loaded := 0
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			s.log.Printf("Entity directory not found, skipping: %s", dir)
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Printf("Failed to read entity directory %s: %v", dir, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			n, err := s.loadFile(path, policy)
			if err != nil {
				return nil, err
			}
			loaded += n
		}
	}

	s.log.Printf("Entity store loaded %d entities from %d directories", loaded, len(dirs))
	return s, nil
}

func (s *Store) loadFile(path string, policy DuplicatePolicy) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		s.log.Printf("Failed to read entity file %s: %v", path, err)
		return 0, nil
	}

	var defs []json.RawMessage
	if err := json.Unmarshal(raw, &defs); err != nil {
		s.log.Printf("Entity file %s is not a JSON list, skipping: %v", path, err)
		return 0, nil
	}

	loaded := 0
	for i, rawDef := range defs {
		var def map[string]any
		if err := json.Unmarshal(rawDef, &def); err != nil {
			s.log.Printf("Skipping non-object entry %d in %s: %v", i, path, err)
			continue
		}
		entity, err := parseEntity(def)
		if err != nil {
			s.log.Printf("Skipping invalid entity (entry %d) in %s: %v", i, path, err)
			continue
		}
		if err := s.add(entity, policy); err != nil {
			if policy == DuplicatesReject {
				return loaded, fmt.Errorf("loading %s: %w", path, err)
			}
			s.log.Printf("DUPLICATE ID in %s: %v", path, err)
			continue
		}
		loaded++
	}
	return loaded, nil
}

// parseEntity turns a raw definition map into an Entity. unique_id and
// entity_type are required; every remaining top-level key becomes part of the
// entity's data payload verbatim.
func parseEntity(def map[string]any) (*Entity, error) {
	id, _ := def["unique_id"].(string)
	entityType, _ := def["entity_type"].(string)
	if strings.TrimSpace(id) == "" || strings.TrimSpace(entityType) == "" {
		return nil, fmt.Errorf("'unique_id' and 'entity_type' are required")
	}

	data := make(map[string]any, len(def))
	for k, v := range def {
		if k == "unique_id" || k == "entity_type" {
			continue
		}
		data[k] = v
	}

	return &Entity{UniqueID: id, Type: entityType, Data: data}, nil
}

func (s *Store) add(e *Entity, policy DuplicatePolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[e.UniqueID]; exists {
		return fmt.Errorf("duplicate unique_id: %s", e.UniqueID)
	}
	s.entities[e.UniqueID] = e
	return nil
}

// Add registers a single entity, rejecting duplicates. Used for entities
// synthesized at startup (the player), not for bulk loads.
func (s *Store) Add(e *Entity) error {
	return s.add(e, DuplicatesReject)
}

// Get returns the entity with the exact unique id, or nil. No fuzzy behavior.
func (s *Store) Get(id string) *Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities[id]
}

// All returns every entity in the store.
func (s *Store) All() []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	return out
}

// ByType returns all entities whose type matches, case-insensitively.
func (s *Store) ByType(entityType string) []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Entity
	for _, e := range s.entities {
		if strings.EqualFold(e.Type, entityType) {
			out = append(out, e)
		}
	}
	return out
}

// ByDataProperty returns all entities whose data payload has the given value
// under the given key. Used to find everything "in" a location.
func (s *Store) ByDataProperty(key string, value any) []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Entity
	for _, e := range s.entities {
		if v, ok := e.Data[key]; ok && v == value {
			out = append(out, e)
		}
	}
	return out
}

// ByName resolves a name to an entity via the alias index. An unambiguous
// exact case-insensitive match wins outright; otherwise the best fuzzy match
// across all aliases is returned if its score clears the threshold. An alias
// shared by several entities still resolves (lowest id wins, deterministic)
// but the ambiguity is logged.
func (s *Store) ByName(name string) *Entity {
	lookup := strings.ToLower(strings.TrimSpace(name))
	if lookup == "" {
		return nil
	}

	aliasToID, ambiguous := s.aliasIndex()
	if len(aliasToID) == 0 {
		return nil
	}

	if id, ok := aliasToID[lookup]; ok {
		if _, amb := ambiguous[lookup]; !amb {
			return s.Get(id)
		}
	}

	// Deterministic iteration so equal scores always break the same way.
	aliases := make([]string, 0, len(aliasToID))
	for alias := range aliasToID {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	bestScore := 0
	bestAlias := ""
	for _, alias := range aliases {
		score := fuzzy.WRatio(lookup, alias)
		if score > bestScore {
			bestScore = score
			bestAlias = alias
		}
	}

	if bestScore < s.matchThreshold {
		return nil
	}
	if _, amb := ambiguous[bestAlias]; amb {
		s.log.Printf("Ambiguous name match %q for lookup %q, returning %s", bestAlias, name, aliasToID[bestAlias])
	}
	return s.Get(aliasToID[bestAlias])
}

// aliasIndex builds lowercase alias -> entity id over all declared names.
// When two entities share an alias the lowest id is kept and the alias is
// flagged ambiguous.
func (s *Store) aliasIndex() (map[string]string, map[string]struct{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]string)
	ambiguous := make(map[string]struct{})
	for _, e := range s.entities {
		for _, alias := range e.Names() {
			key := strings.ToLower(strings.TrimSpace(alias))
			if key == "" {
				continue
			}
			existing, ok := index[key]
			if !ok {
				index[key] = e.UniqueID
				continue
			}
			if existing != e.UniqueID {
				ambiguous[key] = struct{}{}
				if e.UniqueID < existing {
					index[key] = e.UniqueID
				}
			}
		}
	}
	return index, ambiguous
}
