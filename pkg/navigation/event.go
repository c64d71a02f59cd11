package navigation

import "fmt"

// Event identifies a notification channel.
type Event int

const (
	// EventNavigate fires after every successful Next, Prev or GoTo.
	EventNavigate Event = iota
)

var eventNames = map[Event]string{
	EventNavigate: "navigate",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ParseEvent maps an event name to its Event value.
func ParseEvent(name string) (Event, bool) {
	for e, n := range eventNames {
		if n == name {
			return e, true
		}
	}
	return 0, false
}
