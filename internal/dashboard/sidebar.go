package dashboard

import (
	"fmt"
	"net/url"
)

// Sidebar events accepted by Apply.
const (
	EventOpen   = "open"
	EventClose  = "close"
	EventToggle = "toggle"
)

// Query parameters carrying the sidebar through page links: QueryState is
// the state the page was rendered with, QueryEvent the event to apply.
const (
	QueryState = "menu"
	QueryEvent = "sidebar"
)

// Sidebar is the navigation drawer state of one page.
type Sidebar struct {
	open bool
}

// Open shows the sidebar. Opening an open sidebar is a no-op.
func (s *Sidebar) Open() { s.open = true }

// Close hides the sidebar. Closing a closed sidebar is a no-op.
func (s *Sidebar) Close() { s.open = false }

// Toggle flips the sidebar.
func (s *Sidebar) Toggle() { s.open = !s.open }

// IsOpen reports the current state.
func (s *Sidebar) IsOpen() bool { return s.open }

// State is the value carried in QueryState: "open" or "closed".
func (s *Sidebar) State() string {
	if s.IsOpen() {
		return EventOpen
	}
	return "closed"
}

// Class is the CSS class of the sidebar element.
func (s *Sidebar) Class() string {
	if s.open {
		return "sidebar-responsive"
	}
	return ""
}

// Apply handles a named event. An empty event leaves the state unchanged.
func (s *Sidebar) Apply(event string) error {
	switch event {
	case "":
	case EventOpen:
		s.Open()
	case EventClose:
		s.Close()
	case EventToggle:
		s.Toggle()
	default:
		return fmt.Errorf("unknown sidebar event %q", event)
	}
	return nil
}

// SidebarFromQuery rebuilds the sidebar of one page view from its link:
// the rendered state in QueryState, then the event in QueryEvent. Each
// request gets its own state.
func SidebarFromQuery(q url.Values) (Sidebar, error) {
	var s Sidebar
	if q.Get(QueryState) == EventOpen {
		s.Open()
	}
	if err := s.Apply(q.Get(QueryEvent)); err != nil {
		return Sidebar{}, err
	}
	return s, nil
}
