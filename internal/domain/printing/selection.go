package printing

import "github.com/google/uuid"

// Selection is an ordered working set of labels picked for printing.
// Entries keep their insertion order, and adding the same label twice
// creates an independent entry rather than merging copy counts.
type Selection struct {
	items []QueueItem
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{}
}

// Add appends a label to the selection. Copy counts below one are
// stored as one.
func (s *Selection) Add(labelID uuid.UUID, copies int) {
	if copies < 1 {
		copies = 1
	}
	s.items = append(s.items, QueueItem{LabelID: labelID, Copies: copies})
}

// SetCopies updates the copy count of the entry at index. Out-of-range
// indexes are ignored.
func (s *Selection) SetCopies(index, copies int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	if copies < 1 {
		copies = 1
	}
	s.items[index].Copies = copies
}

// Remove drops every entry for the given label
func (s *Selection) Remove(labelID uuid.UUID) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.LabelID != labelID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Prune drops entries whose label no longer exists
func (s *Selection) Prune(exists func(uuid.UUID) bool) {
	kept := s.items[:0]
	for _, item := range s.items {
		if exists(item.LabelID) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Items returns a copy of the selection entries in order
func (s *Selection) Items() []QueueItem {
	items := make([]QueueItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of selection entries
func (s *Selection) Len() int {
	return len(s.items)
}

// TotalCells returns the number of cells the selection would occupy
func (s *Selection) TotalCells() int {
	total := 0
	for _, item := range s.items {
		copies := item.Copies
		if copies < 1 {
			copies = 1
		}
		total += copies
	}
	return total
}
