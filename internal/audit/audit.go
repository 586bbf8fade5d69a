// Package audit checks thumbnails already present in a report against the
// news article they were copied from.
package audit

import (
	"github.com/deusflow/thumbfill/internal/index"
	"github.com/deusflow/thumbfill/internal/report"
	"github.com/deusflow/thumbfill/internal/thumbnail"
)

// Status grades how well an item's thumbnail fits its title.
type Status string

const (
	Good     Status = "good"
	Weak     Status = "weak"
	Mismatch Status = "mismatch"
	External Status = "external"
	Missing  Status = "missing"
)

// Statuses lists every status in report order.
var Statuses = []Status{Mismatch, Weak, External, Missing, Good}

// Finding is the audit verdict for one item.
type Finding struct {
	Section   report.Section `json:"section"`
	Index     int            `json:"index"`
	Title     string         `json:"title"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Status    Status         `json:"status"`
	Score     int            `json:"score"`
	NewsTitle string         `json:"news_title,omitempty"`
	Source    report.Source  `json:"source,omitempty"`
}

// Check grades every item of rep. Nothing is modified.
func Check(rep *report.Report, pool *index.Pool) []Finding {
	var findings []Finding
	for _, sec := range report.Sections {
		for i, item := range rep.Items(sec) {
			findings = append(findings, checkItem(sec, i, item, pool))
		}
	}
	return findings
}

func checkItem(sec report.Section, i int, item *report.Item, pool *index.Pool) Finding {
	f := Finding{Section: sec, Index: i, Title: item.Title}
	if item.Thumbnail == nil || !thumbnail.IsValid(*item.Thumbnail) {
		f.Status = Missing
		return f
	}
	f.Thumbnail = *item.Thumbnail

	donor, ok := pool.ByThumbnail(f.Thumbnail)
	if !ok {
		f.Status = External
		return f
	}
	f.NewsTitle = donor.Title
	f.Source = donor.Source
	f.Score = thumbnail.Score(thumbnail.Keywords(item.Title), donor.Title)

	switch {
	case f.Score >= thumbnail.MinScore:
		f.Status = Good
	case f.Score > 0:
		f.Status = Weak
	default:
		f.Status = Mismatch
	}
	return f
}

// Count tallies findings by status.
func Count(findings []Finding) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, f := range findings {
		counts[f.Status]++
	}
	return counts
}
