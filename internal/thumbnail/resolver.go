package thumbnail

import (
	"github.com/deusflow/thumbfill/internal/report"
)

// Match is the donor article chosen for an item.
type Match struct {
	Article report.Article
	Score   int
}

// BestMatch scans the pool in order and returns the highest scoring article
// with a valid thumbnail. A later article only wins with a strictly higher
// score, so ties go to the first one seen.
func BestMatch(title string, pool []report.Article) (Match, bool) {
	keywords := Keywords(title)
	if len(keywords) == 0 {
		return Match{}, false
	}

	var best Match
	found := false
	for _, a := range pool {
		if !IsValid(a.Thumbnail) {
			continue
		}
		score := Score(keywords, a.Title)
		if score > best.Score && score >= MinScore {
			best = Match{Article: a, Score: score}
			found = true
		}
	}
	return best, found
}

// Resolve normalizes and backfills thumbnails of every item in rep, using
// pool as the candidate list. Items are mutated in place; the returned
// Result describes what happened. A failed match is not an error.
func Resolve(rep *report.Report, pool []report.Article) Result {
	res := newResult()

	for _, sec := range report.Sections {
		tally := res.Tallies[sec]
		for i, item := range rep.Items(sec) {
			tally.Checked++

			if item.Thumbnail != nil && *item.Thumbnail == "" {
				item.Thumbnail = nil
				res.EmptyToNull++
				res.Decisions = append(res.Decisions, Decision{
					Section: sec, Index: i, Kind: EmptyToNull, Title: item.Title,
				})
			}

			if isValidPtr(item.Thumbnail) {
				continue
			}

			m, ok := BestMatch(item.Title, pool)
			if !ok {
				res.Decisions = append(res.Decisions, Decision{
					Section: sec, Index: i, Kind: NoMatch, Title: item.Title,
				})
				continue
			}

			thumb := m.Article.Thumbnail
			item.Thumbnail = &thumb
			tally.Fixed++
			res.Decisions = append(res.Decisions, Decision{
				Section:   sec,
				Index:     i,
				Kind:      Backfilled,
				Title:     item.Title,
				Thumbnail: thumb,
				Source:    m.Article.Source,
				Score:     m.Score,
			})
		}
		res.Tallies[sec] = tally
	}
	return res
}
