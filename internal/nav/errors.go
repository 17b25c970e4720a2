package nav

import "fmt"

// UnknownPageError is returned when a page identifier has no registered
// factory.
type UnknownPageError struct {
	Page string
}

func (e *UnknownPageError) Error() string {
	return fmt.Sprintf("no page registered for %q", e.Page)
}

// ConstructionError wraps a factory failure for a specific page. The
// underlying cause (missing or mistyped property, usually) is available
// through Unwrap.
type ConstructionError struct {
	Page string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct page %q: %v", e.Page, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// OutOfRangeError is returned by History.EntryAt when the requested
// distance reaches past the oldest recorded entry. Callers that go through
// Controller.ShowPrevious never see it; the distance is clamped first.
type OutOfRangeError struct {
	Distance int
	Length   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("history entry %d out of range (length %d)", e.Distance, e.Length)
}
