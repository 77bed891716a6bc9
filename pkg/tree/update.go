package tree

import "fmt"

// Msg is the closed set of intents a render layer can dispatch against a
// forest snapshot. The set is fixed by design: implementations of the
// unexported marker live only in this package, so Update can match
// exhaustively and treat anything else as a defect.
type Msg interface {
	isTreeMsg()
}

// ToggleMsg expands or collapses the subtree under Key.
type ToggleMsg struct {
	Key string
}

// SelectMsg reports that the node under Key was activated as a navigation
// target. The core holds no selection-as-navigation state, so dispatching it
// is the identity; render layers use it to raise their own notification.
type SelectMsg struct {
	Key string
}

// SearchMsg recomputes visibility from a search pattern.
type SearchMsg struct {
	Text string
}

// SetCheckedMsg applies a checkbox transition. Previous is the checked value
// the caller last rendered for the target node; the node's new value is its
// negation.
type SetCheckedMsg struct {
	Multiple bool
	Cascade  bool
	Key      string
	Previous bool
}

func (ToggleMsg) isTreeMsg()     {}
func (SelectMsg) isTreeMsg()     {}
func (SearchMsg) isTreeMsg()     {}
func (SetCheckedMsg) isTreeMsg() {}

// Update maps an intent to the corresponding operation and returns the next
// forest snapshot. It is a convenience wrapper over the operations in this
// package, not the only entry point; callers may invoke them directly.
func Update(msg Msg, f Forest) Forest {
	switch m := msg.(type) {
	case ToggleMsg:
		return Toggle(m.Key, f)
	case SelectMsg:
		return f
	case SearchMsg:
		return Search(m.Text, f)
	case SetCheckedMsg:
		return SetChecked(m.Multiple, m.Cascade, m.Key, m.Previous, f)
	default:
		// The Msg union is closed; reaching this is a programming error.
		panic(fmt.Sprintf("tree: unknown message type %T", msg))
	}
}
