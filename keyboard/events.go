package keyboard

// EventKind names an engine event on the wire.
type EventKind string

const (
	EventConnected         EventKind = "connected"
	EventDisconnected      EventKind = "disconnected"
	EventKeyHeld           EventKind = "keyHeld"
	EventKeyReleased       EventKind = "keyReleased"
	EventKeyPressed        EventKind = "keyPressed"
	EventReportSent        EventKind = "reportSent"
	EventCharacterSkipped  EventKind = "characterSkipped"
	EventSequenceError     EventKind = "sequenceError"
	EventSequenceCompleted EventKind = "sequenceCompleted"
	EventError             EventKind = "error"
)

// Event is one engine notification. Only the fields relevant to the kind are
// set; the rest stay empty on the wire.
type Event struct {
	Kind   EventKind `json:"event"`
	Device string    `json:"device,omitempty"`
	Key    string    `json:"key,omitempty"`
	Char   string    `json:"char,omitempty"`
	Mask   uint8     `json:"mask,omitempty"`
	Keys   []int     `json:"keys,omitempty"`
	Report string    `json:"report,omitempty"`
	Action *int      `json:"action,omitempty"`
	Count  int       `json:"count,omitempty"`
	Err    string    `json:"error,omitempty"`
}
