// Package index builds the ordered list of donor articles the thumbnail
// resolver scans: the report's own news first, then optional extras from
// other report files and saved RSS snapshots.
package index

import (
	"fmt"

	"github.com/deusflow/thumbfill/internal/report"
)

// Pool is an ordered, read-only list of candidate articles.
type Pool struct {
	articles []report.Article
}

// FromReport collects the report's news in fixed outlet order.
func FromReport(rep *report.Report) *Pool {
	p := &Pool{}
	for _, src := range report.Sources {
		p.articles = append(p.articles, rep.Articles(src)...)
	}
	return p
}

// With returns a new pool with extra articles after the current ones.
func (p *Pool) With(extra []report.Article) *Pool {
	out := &Pool{articles: make([]report.Article, 0, len(p.articles)+len(extra))}
	out.articles = append(out.articles, p.articles...)
	out.articles = append(out.articles, extra...)
	return out
}

// Articles returns the candidates in scan order.
func (p *Pool) Articles() []report.Article {
	if p == nil {
		return nil
	}
	return p.articles
}

func (p *Pool) Len() int {
	return len(p.Articles())
}

// ByThumbnail finds the first article using url as its thumbnail.
func (p *Pool) ByThumbnail(url string) (report.Article, bool) {
	for _, a := range p.Articles() {
		if a.Thumbnail != "" && a.Thumbnail == url {
			return a, true
		}
	}
	return report.Article{}, false
}

// LoadDocumentNews reads other report files and returns their news, file by
// file, each in fixed outlet order.
func LoadDocumentNews(paths []string) ([]report.Article, error) {
	var out []report.Article
	for _, path := range paths {
		doc, err := report.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load news from %s: %w", path, err)
		}
		out = append(out, FromReport(doc.Report()).Articles()...)
	}
	return out, nil
}
