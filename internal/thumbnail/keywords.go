// Package thumbnail backfills missing report thumbnails from news articles
// whose titles share enough keywords with the report item.
package thumbnail

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinScore is the least number of keyword hits a donor article needs.
const MinScore = 2

// minKeywordRunes drops one-rune tokens such as particles and stray digits.
const minKeywordRunes = 2

// IsValid reports whether a thumbnail is an absolute or protocol-relative URL.
func IsValid(url string) bool {
	return strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "//")
}

func isValidPtr(url *string) bool {
	return url != nil && IsValid(*url)
}

// Keywords splits a title into match keywords in order of appearance.
// Punctuation becomes a separator; repeated words are kept.
func Keywords(title string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, title)

	var keywords []string
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) >= minKeywordRunes {
			keywords = append(keywords, w)
		}
	}
	return keywords
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || isHangulSyllable(r)
}

func isHangulSyllable(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}

// Score counts keywords that occur inside the title. Matching is plain
// case-sensitive substring containment, so "스팀" hits "스팀덱".
func Score(keywords []string, title string) int {
	score := 0
	for _, k := range keywords {
		if strings.Contains(title, k) {
			score++
		}
	}
	return score
}
