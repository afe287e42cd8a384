package world

import "sync"

// State tracks the player's dynamic position in the world. The location id
// always references an entity that exists in the store; relocations to
// unknown ids are rejected without mutation.
type State struct {
	store    *Store
	playerID string

	mu         sync.RWMutex
	locationID string
}

func NewState(store *Store, playerID, startLocationID string) *State {
	return &State{
		store:      store,
		playerID:   playerID,
		locationID: startLocationID,
	}
}

// PlayerID returns the fixed id of the player entity.
func (s *State) PlayerID() string {
	return s.playerID
}

// PlayerEntity returns the player's entity, or nil if it is missing from the
// store (a fatal misconfiguration the caller must surface).
func (s *State) PlayerEntity() *Entity {
	return s.store.Get(s.playerID)
}

// Location returns the player's current location id.
func (s *State) Location() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locationID
}

// SetLocation moves the player, verifying the destination exists first.
// Returns false and leaves state untouched for unknown ids.
func (s *State) SetLocation(newLocationID string) bool {
	if s.store.Get(newLocationID) == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locationID = newLocationID
	return true
}
