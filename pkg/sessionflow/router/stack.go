package router

import "github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"

// StackEntry represents a single entry in the navigation stack.
// It stores the route and any parameters the screen was opened with.
type StackEntry struct {
	Route  constants.Route
	Params any
}

// Stack holds the navigation history. The top entry is the visible screen;
// everything beneath it is reachable by back gestures.
type Stack struct {
	entries []StackEntry
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
	}
}

// Push adds a new entry to the stack.
// Called when navigating forward to a new screen.
func (s *Stack) Push(route constants.Route, params any) {
	s.entries = append(s.entries, StackEntry{
		Route:  route,
		Params: params,
	})
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}

// Routes returns the routes on the stack, bottom first.
func (s *Stack) Routes() []constants.Route {
	routes := make([]constants.Route, len(s.entries))
	for i, e := range s.entries {
		routes[i] = e.Route
	}
	return routes
}
