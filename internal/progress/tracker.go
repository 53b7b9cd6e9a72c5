// Package progress reports the state of long-running batches to a front end.
//
// A batch marks itself busy, updates a one-line comment as it goes and
// emits leveled events. Front ends either poll Busy and Comment or
// subscribe to events.
package progress

import "sync"

// Level indicates the severity/type of a progress message.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// Event represents a progress update.
type Event struct {
	Message string
	Level   Level
}

// Tracker holds the busy flag and comment of the running batch.
//
// The zero value is ready to use. All methods are safe for concurrent use,
// and a nil *Tracker discards everything.
type Tracker struct {
	mu      sync.RWMutex
	busy    bool
	comment string

	onEvent func(Event)
}

// NewTracker creates a Tracker that forwards every event to onEvent.
// onEvent may be nil.
func NewTracker(onEvent func(Event)) *Tracker {
	return &Tracker{onEvent: onEvent}
}

// Begin marks the tracker busy with an initial comment.
func (t *Tracker) Begin(comment string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.busy = true
	t.comment = comment
	t.mu.Unlock()
	t.emit(Event{Message: comment, Level: LevelInfo})
}

// End clears the busy flag, leaving the final comment.
func (t *Tracker) End(comment string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.busy = false
	t.comment = comment
	t.mu.Unlock()
	t.emit(Event{Message: comment, Level: LevelSuccess})
}

// SetComment replaces the comment without emitting an event.
func (t *Tracker) SetComment(comment string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.comment = comment
	t.mu.Unlock()
}

// Report updates the comment and emits the event.
func (t *Tracker) Report(message string, level Level) {
	if t == nil {
		return
	}
	if level != LevelVerbose {
		t.SetComment(message)
	}
	t.emit(Event{Message: message, Level: level})
}

// Busy reports whether a batch is running.
func (t *Tracker) Busy() bool {
	if t == nil {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.busy
}

// Comment returns the latest comment.
func (t *Tracker) Comment() string {
	if t == nil {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.comment
}

func (t *Tracker) emit(e Event) {
	if t.onEvent != nil {
		t.onEvent(e)
	}
}
