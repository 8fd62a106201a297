package careers_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/questly/internal/careers"
	"github.com/magabrotheeeer/questly/internal/models"
)

func TestRuleSet_Match(t *testing.T) {
	rs := careers.RuleSet[string]{
		Rules: []careers.Rule[string]{
			{Keywords: []string{"engineer", "developer"}, Value: "tech"},
			{Keywords: []string{"engineer"}, Value: "never"},
			{Keywords: []string{"doctor"}, Value: "medicine"},
		},
		Default: "general",
	}

	tests := []struct {
		title string
		want  string
	}{
		{title: "Software ENGINEER", want: "tech"},
		{title: "Game Developer", want: "tech"},
		{title: "Doctor of Animals", want: "medicine"},
		{title: "Chef", want: "general"},
		{title: "", want: "general"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.Match(tt.title))
		})
	}
}

func TestCatalog_InstitutionRules(t *testing.T) {
	catalog := careers.DefaultCatalog()

	tests := []struct {
		title     string
		wantFirst string
		wantLen   int
	}{
		{title: "Mechanical Engineer", wantFirst: "University of the Witwatersrand (Wits)", wantLen: 3},
		{title: "Senior Data Scientist", wantFirst: "University of the Witwatersrand (Wits)", wantLen: 3},
		{title: "School Counselor", wantFirst: "University of Cape Town (UCT)", wantLen: 2},
		{title: "Medical Doctor", wantFirst: "University of Cape Town (UCT)", wantLen: 2},
		{title: "Pastry Chef", wantFirst: "University of Pretoria (UP)", wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := catalog.Institutions.Match(tt.title)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0].Name)
		})
	}
}

func TestCatalog_SubjectRules(t *testing.T) {
	catalog := careers.DefaultCatalog()

	assert.Equal(t, 50, catalog.Subjects.Match("Medical Doctor").MinAPS)
	assert.Equal(t, 45, catalog.Subjects.Match("Child Psychologist").MinAPS)
	// "data" из Data Scientist совпадает раньше, чем Business Analyst.
	assert.Equal(t, 40, catalog.Subjects.Match("Data Analyst").MinAPS)
	assert.Equal(t, []string{"Mathematics", "English Home Language", "Physical Sciences"},
		catalog.Subjects.Match("Florist").Essential)
}

func TestCatalog_Enrich(t *testing.T) {
	catalog := careers.DefaultCatalog()
	in := []models.CareerPath{
		{ID: "1", Title: "Software Developer", Skills: []string{"Go"}},
		{ID: "2", Title: "Florist", ImageURL: "https://old.example/img.png"},
	}

	out := catalog.Enrich(in)
	require.Len(t, out, 2)

	assert.Equal(t, "1", out[0].ID)
	assert.NotEmpty(t, out[0].Institutions)
	require.NotNil(t, out[0].Subjects)
	assert.Equal(t, 35, out[0].Subjects.MinAPS)
	assert.Equal(t, "https://www.youtube.com/embed/watch?v=placeholder_software_developer", out[0].VideoURL)
	assert.Equal(t, careers.ImageURL("Software Developer"), out[0].ImageURL)

	assert.Equal(t, "https://www.youtube.com/embed/watch?v=placeholder_career", out[1].VideoURL)
	assert.Equal(t, careers.ImageURL("Florist"), out[1].ImageURL)

	// Исходные записи не изменены.
	assert.Empty(t, in[0].Institutions)
	assert.Nil(t, in[0].Subjects)
	assert.Equal(t, "https://old.example/img.png", in[1].ImageURL)
}

func TestCatalog_EnrichDoesNotShareTables(t *testing.T) {
	catalog := careers.DefaultCatalog()

	out := catalog.Enrich([]models.CareerPath{{Title: "Medical Doctor"}})
	out[0].Institutions[0].Name = "changed"
	out[0].Subjects.Essential[0] = "changed"

	again := catalog.Enrich([]models.CareerPath{{Title: "Medical Doctor"}})
	assert.Equal(t, "University of Cape Town (UCT)", again[0].Institutions[0].Name)
	assert.Equal(t, "Mathematics", again[0].Subjects.Essential[0])
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Software Developer", want: "https://picsum.photos/seed/software-developer/800/450"},
		{title: "  UX / UI Designer!! ", want: "https://picsum.photos/seed/ux-ui-designer/800/450"},
		{title: "C++ Engineer", want: "https://picsum.photos/seed/c-engineer/800/450"},
		{title: "???", want: "https://picsum.photos/seed/career/800/450"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := careers.ImageURL(tt.title)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, careers.ImageURL(tt.title))

			_, err := url.Parse(got)
			assert.NoError(t, err)
		})
	}
}
