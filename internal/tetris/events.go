package tetris

// EventType identifies a state change reported to the listener.
type EventType int

// Event types, one per mutating operation outcome.
const (
	EventNewGame EventType = iota
	EventSpawn
	EventMove
	EventRotate
	EventSoftDrop
	EventHardDrop
	EventLock
	EventClear
	EventHold
	EventPause
	EventResume
	EventResize
	EventGameOver
)

var eventNames = [...]string{
	EventNewGame:  "new_game",
	EventSpawn:    "spawn",
	EventMove:     "move",
	EventRotate:   "rotate",
	EventSoftDrop: "soft_drop",
	EventHardDrop: "hard_drop",
	EventLock:     "lock",
	EventClear:    "clear",
	EventHold:     "hold",
	EventPause:    "pause",
	EventResume:   "resume",
	EventResize:   "resize",
	EventGameOver: "game_over",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Event is delivered synchronously after the engine state has changed.
// Rows carries the drop distance for EventHardDrop, the cleared row count
// for EventClear and the new height for EventResize.
type Event struct {
	Type     EventType
	Rows     int
	Kind     Kind
	Feedback *Feedback
}

// Listener receives engine events. It must not call back into the engine.
type Listener func(Event)
