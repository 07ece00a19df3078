package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/resumedesk/internal/types"
)

const listJSON = `[
  {"id": 1, "filename": "jane.pdf", "analysis": {"name": "Jane", "rating": "8/10"}},
  {"id": 2, "filename": "john.pdf", "analysis": {"name": "John", "rating": "6/10"}}
]`

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		query  string
		want   string
	}{
		{"no expressions", "", "", listJSON},
		{"query names", "", "[].analysis.name", "[\n  \"Jane\",\n  \"John\"\n]"},
		{"filter then query", "[?analysis.rating=='8/10']", "[].filename", "[\n  \"jane.pdf\"\n]"},
		{"null result", "", "missing", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(listJSON, tt.filter, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	_, err := Apply("not json", "", "a")
	assert.Error(t, err)

	_, err = Apply(listJSON, "", "[?")
	assert.Error(t, err)
}

func TestApplyValue(t *testing.T) {
	a := &types.AnalysisResult{Name: types.StringPtr("Jane Doe"), CoreSkills: []string{"Go", "SQL"}}

	got, err := ApplyValue(a, "core_skills[0]")
	require.NoError(t, err)
	assert.Equal(t, `"Go"`, got)

	raw, err := ApplyValue(a, "")
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"Jane Doe"`)
}

func TestIsValidJMESPath(t *testing.T) {
	assert.True(t, IsValidJMESPath("[].filename"))
	assert.False(t, IsValidJMESPath("[?"))
}

func TestMatchRecords(t *testing.T) {
	records := []types.ResumeRecord{
		{Filename: "alice_resume.pdf"},
		{Filename: "bob_cv.pdf"},
		{Filename: "alice_cover.pdf"},
	}

	assert.Equal(t, []int{0, 1, 2}, MatchRecords(records, ""))

	got := MatchRecords(records, "alice")
	assert.ElementsMatch(t, []int{0, 2}, got)

	assert.Empty(t, MatchRecords(records, "zzz"))
	assert.Empty(t, MatchRecords(nil, "a"))
}
