package sport

import "fmt"

// Sport is one entry of the fixed catalog the search view filters by.
// The set is closed and known at build time; it is never mutated.
type Sport struct {
	ID    string
	Label string
}

func (s Sport) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sport id is required")
	}
	if s.Label == "" {
		return fmt.Errorf("sport label is required")
	}

	return nil
}
