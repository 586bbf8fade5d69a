package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/thumbfill/internal/index"
	"github.com/deusflow/thumbfill/internal/report"
)

func TestCheck_GradesEveryItem(t *testing.T) {
	doc, err := report.Decode([]byte(`{
  "ai": {
    "issues": [
      {"title": "스팀 겨울 할인 시작", "thumbnail": "https://a.png"},
      {"title": "스팀 서버 점검", "thumbnail": "https://a.png"},
      {"title": "전혀 다른 이야기", "thumbnail": "https://a.png"}
    ],
    "metrics": [
      {"title": "외부 이미지", "thumbnail": "https://elsewhere.png"},
      {"title": "없음", "thumbnail": null},
      {"title": "상대 경로", "thumbnail": "img/x.jpg"}
    ]
  },
  "news": {"inven": [{"title": "스팀 겨울 할인 개시", "thumbnail": "https://a.png"}]}
}`))
	require.NoError(t, err)
	rep := doc.Report()

	findings := Check(rep, index.FromReport(rep))
	require.Len(t, findings, 6)

	assert.Equal(t, Good, findings[0].Status)
	assert.Equal(t, 3, findings[0].Score)
	assert.Equal(t, "스팀 겨울 할인 개시", findings[0].NewsTitle)
	assert.Equal(t, report.Inven, findings[0].Source)
	assert.Equal(t, Weak, findings[1].Status)
	assert.Equal(t, Mismatch, findings[2].Status)
	assert.Equal(t, External, findings[3].Status)
	assert.Equal(t, Missing, findings[4].Status)
	assert.Equal(t, Missing, findings[5].Status)
	assert.Equal(t, report.Metrics, findings[5].Section)
	assert.Equal(t, 2, findings[5].Index)

	counts := Count(findings)
	assert.Equal(t, 1, counts[Good])
	assert.Equal(t, 2, counts[Missing])
}

func TestCheck_DoesNotModify(t *testing.T) {
	empty := ""
	rep := report.New()
	rep.Sections[report.Issues] = []*report.Item{{Title: "스팀 할인", Thumbnail: &empty}}

	findings := Check(rep, index.FromReport(rep))

	require.Len(t, findings, 1)
	assert.Equal(t, Missing, findings[0].Status)
	require.NotNil(t, rep.Items(report.Issues)[0].Thumbnail)
	assert.Equal(t, "", *rep.Items(report.Issues)[0].Thumbnail)
}
