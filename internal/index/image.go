package index

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/deusflow/thumbfill/internal/thumbnail"
)

// imageURL picks the best thumbnail of a feed item.
// Priority: Item.Image > media:thumbnail > media:content (medium=image) >
// image enclosure > first <img> in description, then content.
func imageURL(item *gofeed.Item) string {
	if item.Image != nil && thumbnail.IsValid(item.Image.URL) {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, thumb := range media["thumbnail"] {
			if u := thumb.Attrs["url"]; thumbnail.IsValid(u) {
				return u
			}
		}
		for _, content := range media["content"] {
			if content.Attrs["medium"] != "image" {
				continue
			}
			if u := content.Attrs["url"]; thumbnail.IsValid(u) {
				return u
			}
		}
	}

	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && thumbnail.IsValid(enc.URL) {
			return enc.URL
		}
	}

	for _, html := range []string{item.Description, item.Content} {
		if u := firstImage(html, item.Link); u != "" {
			return u
		}
	}
	return ""
}

// firstImage returns the src of the first <img> in an HTML fragment. Relative
// sources are resolved against the article link.
func firstImage(html, link string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	src, ok := doc.Find("img[src]").First().Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return ""
	}
	if thumbnail.IsValid(src) {
		return src
	}

	base, err := url.Parse(link)
	if err != nil || base.Host == "" {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
