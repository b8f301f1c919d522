package deck

import (
	"testing"

	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type DeckUnitSuite struct {
	suite.Suite
}

func items(from, n int) []model.ContentItem {
	out := make([]model.ContentItem, n)
	for i := range n {
		out[i] = model.ContentItem{
			ID:           model.ContentID(from + i),
			Type:         model.ContentTypeMovie,
			DisplayTitle: "title",
		}
	}
	return out
}

func (s *DeckUnitSuite) TestCurrentAndLookahead(t provider.T) {
	t.Run("Should expose current and lookahead", func(t provider.T) {
		d := New()
		d.Reset(items(1, 3))

		cur, ok := d.Current()
		assert.True(t, ok)
		assert.Equal(t, model.ContentID(1), cur.ID)
		next, ok := d.Lookahead()
		assert.True(t, ok)
		assert.Equal(t, model.ContentID(2), next.ID)
	})

	t.Run("Should return empty sentinel past the end", func(t provider.T) {
		d := New()
		d.Reset(items(1, 1))

		_, ok := d.Lookahead()
		assert.False(t, ok)

		assert.True(t, d.Advance())
		_, ok = d.Current()
		assert.False(t, ok)
	})

	t.Run("Should be empty when new", func(t provider.T) {
		d := New()

		_, ok := d.Current()
		assert.False(t, ok)
		assert.Zero(t, d.Remaining())
	})
}

func (s *DeckUnitSuite) TestAdvance(t provider.T) {
	t.Run("Should move cursor by exactly one per advance", func(t provider.T) {
		d := New()
		d.Reset(items(1, 5))

		prev := d.Cursor()
		for range 5 {
			assert.True(t, d.Advance())
			assert.Equal(t, prev+1, d.Cursor())
			prev = d.Cursor()
		}
	})

	t.Run("Should never move cursor past length", func(t provider.T) {
		d := New()
		d.Reset(items(1, 2))

		d.Advance()
		d.Advance()
		assert.False(t, d.Advance())
		assert.Equal(t, 2, d.Cursor())
		assert.Equal(t, d.Len(), d.Cursor())
	})
}

func (s *DeckUnitSuite) TestAppendPage(t provider.T) {
	t.Run("Should append page keeping order", func(t provider.T) {
		d := New()
		d.Reset(items(1, 20))

		applied := d.AppendPage(items(21, 20), 2)

		assert.True(t, applied)
		assert.Equal(t, 40, d.Len())
		assert.Equal(t, 2, d.HighestPage())
		for range 20 {
			d.Advance()
		}
		cur, _ := d.Current()
		assert.Equal(t, model.ContentID(21), cur.ID)
	})

	t.Run("Should apply the same page at most once", func(t provider.T) {
		d := New()
		d.Reset(items(1, 20))

		assert.True(t, d.AppendPage(items(21, 20), 2))
		assert.False(t, d.AppendPage(items(21, 20), 2))
		assert.Equal(t, 40, d.Len())
	})

	t.Run("Should reject page older than highest applied", func(t provider.T) {
		d := New()
		d.Reset(items(1, 20))
		d.AppendPage(items(41, 20), 3)

		assert.False(t, d.AppendPage(items(21, 20), 2))
		assert.False(t, d.AppendPage(items(100, 20), 1))
		assert.Equal(t, 40, d.Len())
	})

	t.Run("Should count an empty page as applied", func(t provider.T) {
		d := New()
		d.Reset(items(1, 20))

		assert.True(t, d.AppendPage(nil, 2))
		assert.False(t, d.AppendPage(items(21, 20), 2))
		assert.Equal(t, 20, d.Len())
	})
}

func (s *DeckUnitSuite) TestReset(t provider.T) {
	t.Run("Should replace items and rewind cursor", func(t provider.T) {
		d := New()
		d.Reset(items(1, 20))
		d.AppendPage(items(21, 20), 2)
		for range 25 {
			d.Advance()
		}

		d.Reset(items(500, 3))

		assert.Equal(t, 0, d.Cursor())
		assert.Equal(t, 3, d.Len())
		assert.Equal(t, FirstPage, d.HighestPage())
		cur, _ := d.Current()
		assert.Equal(t, model.ContentID(500), cur.ID)
	})

	t.Run("Should not alias caller slice", func(t provider.T) {
		d := New()
		src := items(1, 2)
		d.Reset(src)

		src[0].DisplayTitle = "mutated"

		cur, _ := d.Current()
		assert.Equal(t, "title", cur.DisplayTitle)
	})
}

func TestDeckUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(DeckUnitSuite))
}
