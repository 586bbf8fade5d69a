// Package report models the daily game-news report document: the AI-written
// items that carry thumbnails and the per-outlet news lists they borrow from.
package report

import "errors"

// ErrMalformed marks a document whose structure cannot be bound to a Report.
var ErrMalformed = errors.New("malformed report document")

// Section names an item list under the document's "ai" key.
type Section string

const (
	Issues         Section = "issues"
	IndustryIssues Section = "industryIssues"
	Metrics        Section = "metrics"
)

// Sections lists the item sections in processing order.
var Sections = []Section{Issues, IndustryIssues, Metrics}

// Source names a news outlet under the document's "news" key.
type Source string

const (
	Inven      Source = "inven"
	Ruliweb    Source = "ruliweb"
	Gamemeca   Source = "gamemeca"
	Thisisgame Source = "thisisgame"
)

// Sources lists the known outlets in candidate scan order.
var Sources = []Source{Inven, Ruliweb, Gamemeca, Thisisgame}

// Item is a report entry that may need a thumbnail.
// A nil Thumbnail stands for null or a missing field.
type Item struct {
	Title     string
	Thumbnail *string
}

// Article is a news entry used only as a thumbnail donor.
type Article struct {
	Source    Source
	Title     string
	Thumbnail string
	Link      string
}

// Report is the typed view of one document.
type Report struct {
	Sections map[Section][]*Item
	News     map[Source][]Article
}

// New returns an empty report.
func New() *Report {
	return &Report{
		Sections: make(map[Section][]*Item),
		News:     make(map[Source][]Article),
	}
}

// Items returns the items of a section; a missing section has none.
func (r *Report) Items(s Section) []*Item {
	if r == nil {
		return nil
	}
	return r.Sections[s]
}

// Articles returns the news of one outlet.
func (r *Report) Articles(s Source) []Article {
	if r == nil {
		return nil
	}
	return r.News[s]
}

// ItemCount is the number of items across all sections.
func (r *Report) ItemCount() int {
	n := 0
	for _, s := range Sections {
		n += len(r.Items(s))
	}
	return n
}
