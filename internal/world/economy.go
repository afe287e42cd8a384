package world

import (
	"fmt"
	"strings"
	"sync"

	"groundtruth/internal/debug"
)

// Exchange performs validated transfers of money and items between entities.
// The sender debit and recipient credit are applied inside one critical
// section so no reader can ever observe value existing in neither inventory.
//
// Every outcome is a human-readable, in-fiction string; ok reports whether
// any mutation actually happened.
type Exchange struct {
	store    *Store
	playerID string
	log      *debug.Logger

	// mu serializes all inventory mutations across the store.
	mu sync.Mutex
}

func NewExchange(store *Store, playerID string, log *debug.Logger) *Exchange {
	if log == nil {
		log = debug.NewNopLogger()
	}
	return &Exchange{store: store, playerID: playerID, log: log}
}

// resolveRecipient maps a recipient name to its entity. The literal "player"
// always routes to the fixed player id; anything else goes through the alias
// index and must resolve to a character or the player.
func (x *Exchange) resolveRecipient(name string) *Entity {
	if strings.EqualFold(strings.TrimSpace(name), "player") {
		return x.store.Get(x.playerID)
	}
	e := x.store.ByName(name)
	if e == nil {
		return nil
	}
	if !strings.EqualFold(e.Type, TypeCharacter) && !strings.EqualFold(e.Type, TypePlayer) {
		return nil
	}
	return e
}

// TransferMoney moves amount from the sender to the named recipient.
// Non-positive amounts, unknown parties, and insufficient funds are refused
// without mutating anyone.
func (x *Exchange) TransferMoney(senderID, recipientName string, amount int) (string, bool) {
	if amount <= 0 {
		return "(Cannot transfer zero or negative amount)", false
	}

	sender := x.store.Get(senderID)
	if sender == nil {
		x.log.Printf("Transfer money: sender %s not found", senderID)
		return fmt.Sprintf("(Error: Sender %s not found)", senderID), false
	}
	recipient := x.resolveRecipient(recipientName)
	if recipient == nil {
		x.log.Printf("Transfer money: recipient %q not found", recipientName)
		return fmt.Sprintf("(Cannot give money: Recipient %s not found)", recipientName), false
	}
	if recipient.UniqueID == sender.UniqueID {
		return fmt.Sprintf("(%s can't give money to themselves)", sender.DisplayName()), false
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if sender.Money() < amount {
		x.log.Printf("Transfer money: %s has %d, needs %d", senderID, sender.Money(), amount)
		return fmt.Sprintf("(%s tries to give %d gold but doesn't have enough)", sender.DisplayName(), amount), false
	}

	sender.setMoney(sender.Money() - amount)
	recipient.setMoney(recipient.Money() + amount)

	x.log.Printf("Transfer money: %s -> %s, amount %d", senderID, recipient.UniqueID, amount)
	return fmt.Sprintf("(%s gives %d gold to %s)", sender.DisplayName(), amount, recipient.DisplayName()), true
}

// TransferItem moves one unit of the referenced item from the sender to the
// named recipient. The sender's entry is deleted when its count reaches
// zero; the recipient's items map is created on first use.
func (x *Exchange) TransferItem(senderID, recipientName, itemRef string) (string, bool) {
	sender := x.store.Get(senderID)
	if sender == nil {
		x.log.Printf("Transfer item: sender %s not found", senderID)
		return fmt.Sprintf("(Error: Sender %s not found)", senderID), false
	}
	recipient := x.resolveRecipient(recipientName)
	if recipient == nil {
		x.log.Printf("Transfer item: recipient %q not found", recipientName)
		return fmt.Sprintf("(Cannot give item: Recipient %s not found)", recipientName), false
	}
	if recipient.UniqueID == sender.UniqueID {
		return fmt.Sprintf("(%s can't give an item to themselves)", sender.DisplayName()), false
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if sender.ItemCount(itemRef) < 1 {
		x.log.Printf("Transfer item: %s doesn't hold %q", senderID, itemRef)
		return fmt.Sprintf("(%s tries to give %s but doesn't have it)", sender.DisplayName(), itemRef), false
	}

	sender.addItem(itemRef, -1)
	recipient.addItem(itemRef, 1)

	x.log.Printf("Transfer item: %s -> %s, item %q", senderID, recipient.UniqueID, itemRef)
	return fmt.Sprintf("(%s gives %s to %s)", sender.DisplayName(), itemRef, recipient.DisplayName()), true
}
