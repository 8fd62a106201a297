package careers_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/questly/internal/careers"
	"github.com/magabrotheeeer/questly/internal/models"
)

const validRecord = `{
  "id": "ux-1",
  "title": "UX Designer",
  "persona": {"title": "Meet Your Future Self", "description": "You are Lerato"},
  "dayInLife": {"title": "A Day in Your Life", "description": "9:00 AM: research"},
  "weekendQuest": {"title": "Your Weekend Quest", "description": "Redesign an app screen"},
  "realityCheck": {"title": "The Reality Check", "description": "Portfolios matter"},
  "skills": ["Figma", "Empathy", "Prototyping"],
  "timeToMastery": "2-3 years",
  "averageSalary": "$60,000 - $110,000"
}`

var wantUX = models.CareerPath{
	ID:            "ux-1",
	Title:         "UX Designer",
	Persona:       models.Section{Title: "Meet Your Future Self", Description: "You are Lerato"},
	DayInLife:     models.Section{Title: "A Day in Your Life", Description: "9:00 AM: research"},
	WeekendQuest:  models.Section{Title: "Your Weekend Quest", Description: "Redesign an app screen"},
	RealityCheck:  models.Section{Title: "The Reality Check", Description: "Portfolios matter"},
	Skills:        []string{"Figma", "Empathy", "Prototyping"},
	TimeToMastery: "2-3 years",
	AverageSalary: "$60,000 - $110,000",
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []models.CareerPath
	}{
		{
			name: "bare array",
			text: "[" + validRecord + "]",
			want: []models.CareerPath{wantUX},
		},
		{
			name: "surrounded by prose and code fence",
			text: "Sure! Here are your paths:\n```json\n[" + validRecord + "]\n```\nGood luck!",
			want: []models.CareerPath{wantUX},
		},
		{
			name: "two records keep order",
			text: "[" + validRecord + "," + validRecord + "]",
			want: []models.CareerPath{wantUX, wantUX},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := careers.Parse(tt.text)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_MissingFieldRejectsWholeResponse(t *testing.T) {
	for _, field := range careers.RequiredFields {
		t.Run(field, func(t *testing.T) {
			broken := withoutField(t, field)
			text := "[" + validRecord + "," + broken + "]"

			got, err := careers.Parse(text)
			require.ErrorIs(t, err, careers.ErrIncompleteRecord)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), fmt.Sprintf("%q", field))
		})
	}
}

func TestParse_NullFieldCountsAsMissing(t *testing.T) {
	text := `[{"id": "x", "title": null, "persona": {}, "dayInLife": {}, "weekendQuest": {},
		"realityCheck": {}, "skills": [], "timeToMastery": "1 year", "averageSalary": "$1"}]`

	_, err := careers.Parse(text)
	assert.ErrorIs(t, err, careers.ErrIncompleteRecord)
}

func TestParse_EmptyFieldRejectsWholeResponse(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		reason string
	}{
		{name: "empty id", from: `"id": "ux-1"`, to: `"id": ""`, reason: `"id"`},
		{name: "blank title", from: `"title": "UX Designer"`, to: `"title": "   "`, reason: `"title"`},
		{name: "empty persona", from: `"persona": {"title": "Meet Your Future Self", "description": "You are Lerato"}`, to: `"persona": {}`, reason: `"persona.description"`},
		{name: "empty reality check", from: `"realityCheck": {"title": "The Reality Check", "description": "Portfolios matter"}`, to: `"realityCheck": {"title": "The Reality Check", "description": ""}`, reason: `"realityCheck.description"`},
		{name: "no skills", from: `"skills": ["Figma", "Empathy", "Prototyping"]`, to: `"skills": []`, reason: "skills"},
		{name: "too few skills", from: `"skills": ["Figma", "Empathy", "Prototyping"]`, to: `"skills": ["Figma", "Empathy"]`, reason: "skills"},
		{name: "too many skills", from: `"skills": ["Figma", "Empathy", "Prototyping"]`, to: `"skills": ["a", "b", "c", "d", "e", "f", "g"]`, reason: "skills"},
		{name: "blank skill", from: `"skills": ["Figma", "Empathy", "Prototyping"]`, to: `"skills": ["Figma", "", "Prototyping"]`, reason: "skills[1]"},
		{name: "empty time to mastery", from: `"timeToMastery": "2-3 years"`, to: `"timeToMastery": ""`, reason: `"timeToMastery"`},
		{name: "empty salary", from: `"averageSalary": "$60,000 - $110,000"`, to: `"averageSalary": ""`, reason: `"averageSalary"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := strings.Replace(validRecord, tt.from, tt.to, 1)
			require.NotEqual(t, validRecord, broken)

			got, err := careers.Parse("[" + validRecord + "," + broken + "]")
			require.ErrorIs(t, err, careers.ErrIncompleteRecord)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParse_AllFieldsEmpty(t *testing.T) {
	text := `[{"id": "", "title": "", "persona": {}, "dayInLife": {}, "weekendQuest": {},
		"realityCheck": {}, "skills": [], "timeToMastery": "", "averageSalary": ""}]`

	got, err := careers.Parse(text)
	require.ErrorIs(t, err, careers.ErrIncompleteRecord)
	assert.Nil(t, got)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{name: "no brackets", text: "I cannot help with that."},
		{name: "closing before opening", text: "] oops ["},
		{name: "broken json", text: `[{"id": "a",}]`},
		{name: "empty array", text: "[]"},
		{name: "array of strings", text: `["a", "b"]`},
		{name: "null element", text: `[null]`},
		{name: "wrong field type", text: `[{"id": 1, "title": "t", "persona": {}, "dayInLife": {},
			"weekendQuest": {}, "realityCheck": {}, "skills": [], "timeToMastery": "", "averageSalary": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := careers.Parse(tt.text)
			require.ErrorIs(t, err, careers.ErrMalformedOutput)
			assert.Nil(t, got)
		})
	}
}

// withoutField возвращает validRecord без указанного поля верхнего уровня.
func withoutField(t *testing.T, field string) string {
	t.Helper()

	paths, err := careers.Parse("[" + validRecord + "]")
	require.NoError(t, err)
	require.Len(t, paths, 1)

	fields := map[string]string{
		"id":            `"id": "ux-1"`,
		"title":         `"title": "UX Designer"`,
		"persona":       `"persona": {"title": "a", "description": "b"}`,
		"dayInLife":     `"dayInLife": {"title": "a", "description": "b"}`,
		"weekendQuest":  `"weekendQuest": {"title": "a", "description": "b"}`,
		"realityCheck":  `"realityCheck": {"title": "a", "description": "b"}`,
		"skills":        `"skills": ["a", "b", "c"]`,
		"timeToMastery": `"timeToMastery": "1 year"`,
		"averageSalary": `"averageSalary": "$1"`,
	}
	out := "{"
	first := true
	for _, name := range careers.RequiredFields {
		if name == field {
			continue
		}
		if !first {
			out += ","
		}
		out += fields[name]
		first = false
	}
	return out + "}"
}
