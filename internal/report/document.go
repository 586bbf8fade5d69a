package report

import (
	"fmt"
	"os"
)

// Document is a decoded report file. It keeps the original JSON tree so that
// writing it back only touches thumbnail fields that actually changed.
type Document struct {
	root     *node
	report   *Report
	bindings []binding
}

type binding struct {
	item *Item
	node *node
	was  thumbState
}

type thumbState struct {
	present bool
	null    bool
	value   string
}

func (s thumbState) same(t *string) bool {
	if t == nil {
		return !s.present || s.null
	}
	return s.present && !s.null && s.value == *t
}

// Decode parses report JSON and binds the typed Report to it.
func Decode(data []byte) (*Document, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if root.kind != objectNode {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformed)
	}

	doc := &Document{root: root, report: New()}
	if err := doc.bindItems(root.field("ai")); err != nil {
		return nil, err
	}
	if err := doc.bindNews(root.field("news")); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads and decodes a report file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Report returns the typed view. Mutating its items' thumbnails is reflected
// by the next Encode.
func (d *Document) Report() *Report {
	return d.report
}

// Encode renders the document with two-space indentation, original key order
// and non-ASCII text written verbatim.
func (d *Document) Encode() ([]byte, error) {
	for i := range d.bindings {
		b := &d.bindings[i]
		if b.was.same(b.item.Thumbnail) {
			continue
		}
		if b.item.Thumbnail == nil {
			b.node.set("thumbnail", nullNode())
			b.was = thumbState{present: true, null: true}
			continue
		}
		b.node.set("thumbnail", stringNode(*b.item.Thumbnail))
		b.was = thumbState{present: true, value: *b.item.Thumbnail}
	}
	return d.root.marshalIndent()
}

func (d *Document) bindItems(ai *node) error {
	if ai == nil {
		return nil
	}
	if ai.kind != objectNode {
		return fmt.Errorf("%w: \"ai\" is not an object", ErrMalformed)
	}

	for _, sec := range Sections {
		list := ai.field(string(sec))
		if list == nil {
			continue
		}
		if list.kind != arrayNode {
			return fmt.Errorf("%w: ai.%s is not an array", ErrMalformed, sec)
		}

		items := make([]*Item, 0, len(list.elems))
		for i, el := range list.elems {
			item, state, err := bindItem(el)
			if err != nil {
				return fmt.Errorf("%w: ai.%s[%d]: %v", ErrMalformed, sec, i, err)
			}
			items = append(items, item)
			d.bindings = append(d.bindings, binding{item: item, node: el, was: state})
		}
		d.report.Sections[sec] = items
	}
	return nil
}

func bindItem(el *node) (*Item, thumbState, error) {
	if el.kind != objectNode {
		return nil, thumbState{}, fmt.Errorf("item is not an object")
	}

	item := &Item{}
	if t := el.field("title"); t != nil {
		title, ok := t.stringValue()
		if !ok {
			return nil, thumbState{}, fmt.Errorf("title is not a string")
		}
		item.Title = title
	}

	var state thumbState
	th := el.field("thumbnail")
	switch {
	case th == nil:
	case th.isNull():
		state = thumbState{present: true, null: true}
	default:
		v, ok := th.stringValue()
		if !ok {
			return nil, thumbState{}, fmt.Errorf("thumbnail is neither a string nor null")
		}
		state = thumbState{present: true, value: v}
		item.Thumbnail = &v
	}
	return item, state, nil
}

func (d *Document) bindNews(news *node) error {
	if news == nil {
		return nil
	}
	if news.kind != objectNode {
		return fmt.Errorf("%w: \"news\" is not an object", ErrMalformed)
	}

	for _, src := range Sources {
		list := news.field(string(src))
		if list == nil {
			continue
		}
		if list.kind != arrayNode {
			return fmt.Errorf("%w: news.%s is not an array", ErrMalformed, src)
		}

		articles := make([]Article, 0, len(list.elems))
		for _, el := range list.elems {
			if el.kind != objectNode {
				continue
			}
			a := Article{Source: src}
			a.Title, _ = el.field("title").stringValue()
			a.Thumbnail, _ = el.field("thumbnail").stringValue()
			a.Link, _ = el.field("link").stringValue()
			articles = append(articles, a)
		}
		d.report.News[src] = articles
	}
	return nil
}
