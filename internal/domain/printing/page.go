package printing

// Grid dimensions of a letter sheet.
const (
	GridColumns  = 2
	GridRows     = 5
	CellsPerPage = GridColumns * GridRows
)

// Page is one letter sheet holding up to CellsPerPage cells in a fixed
// 2x5 grid. The final page of a run may be partially filled; its
// remaining slots render blank.
type Page struct {
	Cells []Cell
}

// BlankSlots returns how many grid slots on the page are unused
func (p Page) BlankSlots() int {
	return CellsPerPage - len(p.Cells)
}

// Paginate chunks cells into pages of CellsPerPage, preserving order.
// An empty cell list yields no pages.
func Paginate(cells []Cell) []Page {
	if len(cells) == 0 {
		return nil
	}
	pages := make([]Page, 0, (len(cells)+CellsPerPage-1)/CellsPerPage)
	for start := 0; start < len(cells); start += CellsPerPage {
		end := start + CellsPerPage
		if end > len(cells) {
			end = len(cells)
		}
		pages = append(pages, Page{Cells: cells[start:end]})
	}
	return pages
}
