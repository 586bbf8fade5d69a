package index

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/thumbfill/internal/logger"
	"github.com/deusflow/thumbfill/internal/report"
)

// FeedsConfig is YAML config structure
// sources:
//   - name: ruliweb
//     files:
//       - snapshots/ruliweb.xml
type FeedsConfig struct {
	Sources []FeedSource `yaml:"sources"`
}

// FeedSource maps saved feed files to one outlet name.
type FeedSource struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
}

// LoadFeeds reads the snapshot list from a YAML file. Relative file paths are
// taken relative to the config file.
func LoadFeeds(path string) (*FeedsConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse feeds config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range cfg.Sources {
		if cfg.Sources[i].Name == "" {
			return nil, fmt.Errorf("feeds config %s: source #%d has no name", path, i+1)
		}
		for j, file := range cfg.Sources[i].Files {
			if !filepath.IsAbs(file) {
				cfg.Sources[i].Files[j] = filepath.Join(base, file)
			}
		}
	}
	return &cfg, nil
}

// ParseFeedFile turns one saved RSS/Atom file into articles.
func ParseFeedFile(source report.Source, path string) ([]report.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	feed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing feed %s: %w", path, err)
	}

	articles := make([]report.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := cleanTitle(item.Title)
		if title == "" {
			continue
		}
		articles = append(articles, report.Article{
			Source:    source,
			Title:     title,
			Thumbnail: imageURL(item),
			Link:      item.Link,
		})
	}
	return articles, nil
}

// FeedArticles parses every configured snapshot. A broken file is logged and
// skipped so one bad snapshot does not drop the rest.
func FeedArticles(cfg *FeedsConfig) []report.Article {
	if cfg == nil {
		return nil
	}

	var all []report.Article
	total, ok := 0, 0
	for _, src := range cfg.Sources {
		for _, path := range src.Files {
			total++
			articles, err := ParseFeedFile(report.Source(src.Name), path)
			if err != nil {
				logger.Warn("skipping feed snapshot", "source", src.Name, "path", path, "error", err)
				continue
			}
			ok++
			all = append(all, articles...)
			logger.Debug("loaded feed snapshot", "source", src.Name, "path", path, "articles", len(articles))
		}
	}
	logger.Info("feed snapshots processed", "ok", ok, "total", total, "articles", len(all))
	return all
}

var bracketTag = regexp.MustCompile(`\[.*?\]`)

// cleanTitle drops "[game]" style tags the outlets prefix to headlines.
func cleanTitle(title string) string {
	return strings.TrimSpace(bracketTag.ReplaceAllString(title, ""))
}
