package deck

import (
	"slices"

	"github.com/humanbelnik/moviematch/internal/model"
)

// FirstPage is the page a Reset is considered to have applied.
const FirstPage = 1

// Deck is an append-only sequence of items with a cursor that only moves
// forward. Not safe for concurrent use.
type Deck struct {
	items   []model.ContentItem
	cursor  int
	maxPage int
}

func New() *Deck {
	return &Deck{}
}

func (d *Deck) Len() int {
	return len(d.items)
}

func (d *Deck) Cursor() int {
	return d.cursor
}

func (d *Deck) Remaining() int {
	return len(d.items) - d.cursor
}

// HighestPage is the highest page number applied since the last reset.
func (d *Deck) HighestPage() int {
	return d.maxPage
}

func (d *Deck) at(i int) (model.ContentItem, bool) {
	if i < 0 || i >= len(d.items) {
		return model.ContentItem{}, false
	}
	return d.items[i], true
}

func (d *Deck) Current() (model.ContentItem, bool) {
	return d.at(d.cursor)
}

// Lookahead is the card rendered beneath the current one.
func (d *Deck) Lookahead() (model.ContentItem, bool) {
	return d.at(d.cursor + 1)
}

// Advance consumes the current card. It refuses to move past the end.
func (d *Deck) Advance() bool {
	if d.cursor >= len(d.items) {
		return false
	}
	d.cursor++
	return true
}

// AppendPage appends a page unless one with the same or a higher number was
// already applied. Returns false for such stale pages.
func (d *Deck) AppendPage(items []model.ContentItem, page int) bool {
	if page <= d.maxPage {
		return false
	}
	d.items = append(d.items, items...)
	d.maxPage = page
	return true
}

// Reset replaces the whole sequence for a new query scope.
func (d *Deck) Reset(items []model.ContentItem) {
	d.items = slices.Clone(items)
	d.cursor = 0
	d.maxPage = FirstPage
}
