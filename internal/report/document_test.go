package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "date": "2025-12-21",
  "ai": {
    "headline": "오늘의 게임 뉴스",
    "issues": [
      {"title": "스팀 겨울 할인 시작", "thumbnail": ""},
      {"title": "던전앤파이터 신규 업데이트", "thumbnail": "https://a.png", "score": 1.50}
    ],
    "metrics": [
      {"title": "동접 순위"}
    ]
  },
  "news": {
    "custom": [{"title": "ignored"}],
    "ruliweb": [{"title": "루리웹 기사", "thumbnail": "//img.ruliweb.com/x.jpg", "link": "https://bbs.ruliweb.com/news/read/1"}],
    "inven": [{"title": "인벤 기사", "thumbnail": "https://static.inven.co.kr/a.jpg"}, "junk"]
  }
}`

func TestDecode_BindsSectionsAndNews(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	require.NoError(t, err)

	rep := doc.Report()
	require.Len(t, rep.Items(Issues), 2)
	assert.Empty(t, rep.Items(IndustryIssues))
	require.Len(t, rep.Items(Metrics), 1)

	first := rep.Items(Issues)[0]
	assert.Equal(t, "스팀 겨울 할인 시작", first.Title)
	require.NotNil(t, first.Thumbnail)
	assert.Equal(t, "", *first.Thumbnail)
	assert.Nil(t, rep.Items(Metrics)[0].Thumbnail)

	require.Len(t, rep.Articles(Inven), 1)
	assert.Equal(t, Inven, rep.Articles(Inven)[0].Source)
	require.Len(t, rep.Articles(Ruliweb), 1)
	assert.Equal(t, "https://bbs.ruliweb.com/news/read/1", rep.Articles(Ruliweb)[0].Link)
	assert.Equal(t, 3, rep.ItemCount())
}

func TestEncode_UnchangedDocumentKeepsOrderAndText(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	require.NoError(t, err)

	out, err := doc.Encode()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "오늘의 게임 뉴스")
	assert.Contains(t, s, `"score": 1.50`)
	assert.Less(t, strings.Index(s, `"date"`), strings.Index(s, `"ai"`))
	assert.Less(t, strings.Index(s, `"custom"`), strings.Index(s, `"ruliweb"`))
	assert.Contains(t, s, "\n  \"ai\": {\n")
	assert.Contains(t, s, `"thumbnail": ""`)
}

func TestEncode_WritesOnlyChangedThumbnails(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	require.NoError(t, err)

	rep := doc.Report()
	rep.Items(Issues)[0].Thumbnail = nil
	url := "https://static.inven.co.kr/a.jpg"
	rep.Items(Metrics)[0].Thumbnail = &url

	out, err := doc.Encode()
	require.NoError(t, err)

	again, err := Decode(out)
	require.NoError(t, err)
	issues := again.Report().Items(Issues)
	assert.Nil(t, issues[0].Thumbnail)
	require.NotNil(t, issues[1].Thumbnail)
	assert.Equal(t, "https://a.png", *issues[1].Thumbnail)
	require.NotNil(t, again.Report().Items(Metrics)[0].Thumbnail)
	assert.Equal(t, url, *again.Report().Items(Metrics)[0].Thumbnail)

	s := string(out)
	assert.Contains(t, s, `"title": "스팀 겨울 할인 시작",`+"\n"+`        "thumbnail": null`)
	assert.Contains(t, s, `"title": "동접 순위",`+"\n"+`        "thumbnail": "https://static.inven.co.kr/a.jpg"`+"\n      }")
}

func TestEncode_MissingThumbnailStaysMissing(t *testing.T) {
	doc, err := Decode([]byte(`{"ai":{"metrics":[{"title":"x"}]}}`))
	require.NoError(t, err)

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "thumbnail")
}

func TestDecode_MissingSectionsAreEmpty(t *testing.T) {
	doc, err := Decode([]byte(`{"date":"2025-12-22"}`))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Report().ItemCount())
	assert.Empty(t, doc.Report().Articles(Inven))
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"ai":`,
		"array root":        `[1,2]`,
		"ai not object":     `{"ai": []}`,
		"section not array": `{"ai": {"issues": {}}}`,
		"item not object":   `{"ai": {"issues": ["x"]}}`,
		"title not string":  `{"ai": {"issues": [{"title": 3}]}}`,
		"thumbnail number":  `{"ai": {"issues": [{"title": "a", "thumbnail": 7}]}}`,
		"news not object":   `{"news": []}`,
		"source not array":  `{"news": {"inven": {}}}`,
		"trailing data":     `{} {}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
