package world

import "sync"

type factKey struct {
	knower  string
	subject string
}

// Ledger tracks what each observer has learned about each subject: an
// append-only list of fact strings per (knower, subject) pair, in discovery
// order. Facts are annotations about entities, never part of ground truth,
// and are never edited or removed within a process lifetime.
type Ledger struct {
	mu    sync.RWMutex
	facts map[factKey][]string
	seen  map[factKey]map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{
		facts: make(map[factKey][]string),
		seen:  make(map[factKey]map[string]struct{}),
	}
}

// AddFact records a fact the knower has learned about the subject. Adding a
// fact already present for the pair is a no-op.
func (l *Ledger) AddFact(knowerID, subjectID, fact string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := factKey{knower: knowerID, subject: subjectID}
	if _, dup := l.seen[key][fact]; dup {
		return
	}
	if l.seen[key] == nil {
		l.seen[key] = make(map[string]struct{})
	}
	l.seen[key][fact] = struct{}{}
	l.facts[key] = append(l.facts[key], fact)
}

// Facts returns everything the knower knows about the subject, in the order
// it was learned. Unknown pairs yield an empty slice, never an error.
func (l *Ledger) Facts(knowerID, subjectID string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stored := l.facts[factKey{knower: knowerID, subject: subjectID}]
	out := make([]string, len(stored))
	copy(out, stored)
	return out
}

// Knows reports whether the knower has learned anything at all about the
// subject.
func (l *Ledger) Knows(knowerID, subjectID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.facts[factKey{knower: knowerID, subject: subjectID}]) > 0
}
