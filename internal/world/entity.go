package world

import "strings"

// Entity is the ground-truth record for a single thing in the game world:
// an object, a character, a location, or the player. Everything stored here
// is objective reality. What anyone *knows* about an entity lives in the
// Ledger, never here.
type Entity struct {
	UniqueID     string
	Type         string
	Data         map[string]any
	PortraitPath string
}

// Common entity types. Type is open-ended; these are the ones the engine
// gives meaning to.
const (
	TypeCharacter = "character"
	TypeItem      = "item"
	TypeLocation  = "location"
	TypePlayer    = "player"
)

// Names returns every declared alias for the entity: the "names" list plus a
// singular "name" key if present. Order follows the declaration order.
func (e *Entity) Names() []string {
	var names []string
	if raw, ok := e.Data["names"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				names = append(names, s)
			}
		}
	}
	if s, ok := e.Data["name"].(string); ok && strings.TrimSpace(s) != "" {
		names = append(names, s)
	}
	return names
}

// DisplayName is the first declared alias, falling back to the unique id.
func (e *Entity) DisplayName() string {
	if names := e.Names(); len(names) > 0 {
		return names[0]
	}
	return e.UniqueID
}

// Description returns the entity's base description, or the fallback when
// none is declared.
func (e *Entity) Description(fallback string) string {
	if s, ok := e.Data["description"].(string); ok && s != "" {
		return s
	}
	return fallback
}

// LocationID returns the id of the entity this entity is located in, if any.
func (e *Entity) LocationID() string {
	s, _ := e.Data["location_id"].(string)
	return s
}

// inventory returns the entity's inventory map, creating the money/items
// substructure lazily. Callers must hold the store's write lock when the
// returned map will be mutated.
func (e *Entity) inventory() map[string]any {
	inv, ok := e.Data["inventory"].(map[string]any)
	if !ok {
		inv = map[string]any{"money": 0, "items": map[string]any{}}
		e.Data["inventory"] = inv
	}
	if _, ok := inv["items"].(map[string]any); !ok {
		inv["items"] = map[string]any{}
	}
	return inv
}

// Money reports the entity's current money. Missing inventory reads as zero.
func (e *Entity) Money() int {
	inv, ok := e.Data["inventory"].(map[string]any)
	if !ok {
		return 0
	}
	return asInt(inv["money"])
}

// ItemCount reports how many of the given item the entity holds.
func (e *Entity) ItemCount(itemID string) int {
	inv, ok := e.Data["inventory"].(map[string]any)
	if !ok {
		return 0
	}
	items, ok := inv["items"].(map[string]any)
	if !ok {
		return 0
	}
	return asInt(items[itemID])
}

func (e *Entity) setMoney(amount int) {
	e.inventory()["money"] = amount
}

// addItem adjusts the count for an item by delta, deleting the key when the
// count reaches zero. A zero entry must never persist.
func (e *Entity) addItem(itemID string, delta int) {
	items := e.inventory()["items"].(map[string]any)
	next := asInt(items[itemID]) + delta
	if next <= 0 {
		delete(items, itemID)
		return
	}
	items[itemID] = next
}

// asInt coerces the numeric shapes JSON decoding produces into an int.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
