// Package conversation manages bounded, role-tagged dialogue logs.
//
// Each chat session owns one History. A History keeps at most MaxTurns
// entries (5 user/assistant exchanges); older turns are dropped from the
// front. Histories are safe for concurrent use, and the session Store hands
// out one History per caller-supplied session ID.
package conversation

import "sync"

// Role tags a turn's author.
type Role string

// Turn authors.
const (
	RoleUser      Role = "User"
	RoleAssistant Role = "Assistant"
)

// MaxTurns is the history window: 10 turns, i.e. 5 full exchanges.
const MaxTurns = 10

// Turn is one role-tagged message in a dialogue log.
type Turn struct {
	Role Role
	Text string
}

// String renders the turn the way it appears in a generation request.
func (t Turn) String() string {
	return string(t.Role) + ": " + t.Text
}

// History is an ordered, bounded log of turns.
// The zero value is ready to use.
type History struct {
	mu    sync.Mutex
	turns []Turn
}

// Append adds a turn and enforces the window, dropping the oldest turns
// when the log exceeds MaxTurns.
func (h *History) Append(turn Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, turn)
	h.trimLocked()
}

// AppendExchange adds a user turn followed by an assistant turn as one
// operation, so concurrent sessions cannot interleave inside an exchange.
func (h *History) AppendExchange(user, assistant Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, user, assistant)
	h.trimLocked()
}

// trimLocked keeps only the most recent MaxTurns entries.
// Callers must hold h.mu.
func (h *History) trimLocked() {
	if len(h.turns) > MaxTurns {
		h.turns = h.turns[len(h.turns)-MaxTurns:]
	}
}

// Snapshot returns a copy of the current turns, oldest first.
func (h *History) Snapshot() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns currently held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Clear removes all turns.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
