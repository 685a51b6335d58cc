package printing

import "github.com/google/uuid"

// QueueItem is one print request entry: a label and how many copies of it
// to place on the sheet.
type QueueItem struct {
	LabelID uuid.UUID
	Copies  int
}

// ExpandQueue flattens queue items into the cell-order label sequence.
// Each item contributes Copies consecutive entries; a copy count below
// one still yields a single entry. Input order is preserved, and the
// same label appearing in multiple items expands independently.
func ExpandQueue(items []QueueItem) []uuid.UUID {
	expanded := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		copies := item.Copies
		if copies < 1 {
			copies = 1
		}
		for i := 0; i < copies; i++ {
			expanded = append(expanded, item.LabelID)
		}
	}
	return expanded
}
