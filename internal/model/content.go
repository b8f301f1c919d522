package model

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"
)

var ErrUnknownContentType = errors.New("unknown content type")

type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// ParseContentType accepts "tv" as an alias of series.
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return ContentTypeMovie, nil
	case "series", "tv":
		return ContentTypeSeries, nil
	}
	return "", ErrUnknownContentType
}

func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeSeries
}

// GenrePath is the path segment of the genres endpoint for this type.
func (t ContentType) GenrePath() string {
	if t == ContentTypeSeries {
		return "series"
	}
	return "movies"
}

type ContentID = int64

type ContentItem struct {
	ID           ContentID
	Type         ContentType
	DisplayTitle string
	ReleaseYear  int
	PosterURL    string
	BackdropURL  string
	VoteAverage  float64
	Overview     string
}

// ReleaseYearOf extracts the year out of a YYYY-MM-DD date. Missing or
// malformed dates yield 0.
func ReleaseYearOf(date string) int {
	if date == "" {
		return 0
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0
	}
	return t.Year()
}

type Genre struct {
	ID   int
	Name string
}

// GenreFilter is a sorted set of genre ids. Empty means unfiltered.
type GenreFilter []int

func NewGenreFilter(ids ...int) GenreFilter {
	f := slices.Clone(ids)
	slices.Sort(f)
	return slices.Compact(f)
}

func (f GenreFilter) Empty() bool {
	return len(f) == 0
}

func (f GenreFilter) Contains(id int) bool {
	_, ok := slices.BinarySearch(f, id)
	return ok
}

// Toggle returns a new filter with id added or removed.
func (f GenreFilter) Toggle(id int) GenreFilter {
	if f.Contains(id) {
		return slices.DeleteFunc(slices.Clone(f), func(v int) bool { return v == id })
	}
	return NewGenreFilter(append(slices.Clone(f), id)...)
}

// Key renders the filter canonically, e.g. "12,28". Empty filter renders as "".
func (f GenreFilter) Key() string {
	parts := make([]string, len(f))
	for i, id := range f {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Scope identifies one query: a content type narrowed by a genre filter.
type Scope struct {
	Type   ContentType
	Genres string
}

func NewScope(t ContentType, f GenreFilter) Scope {
	return Scope{Type: t, Genres: f.Key()}
}

// PageKey identifies a page fetch. It is comparable and used as a map key.
type PageKey struct {
	Scope
	Page int
}

type DiscoverQuery struct {
	Type   ContentType
	Genres GenreFilter
	Page   int
	SortBy string
}

const DefaultSortBy = "popularity.desc"

type DiscoverPage struct {
	Page         int
	Results      []ContentItem
	TotalPages   int
	TotalResults int
}

type Point struct {
	X float64
	Y float64
}

// DragState exists only while a gesture is in progress.
type DragState struct {
	Active  bool
	Origin  Point
	Current Point
}
