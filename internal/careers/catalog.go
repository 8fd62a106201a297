package careers

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/magabrotheeeer/questly/internal/models"
)

// Rule связывает набор ключевых слов с данными справочника.
type Rule[T any] struct {
	Keywords []string
	Value    T
}

// RuleSet — упорядоченная таблица правил: побеждает первое совпадение,
// при отсутствии совпадений возвращается Default.
type RuleSet[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Match ищет первое правило, ключевое слово которого входит в название
// профессии без учёта регистра.
func (s RuleSet[T]) Match(title string) T {
	lower := strings.ToLower(title)
	for _, r := range s.Rules {
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return r.Value
			}
		}
	}
	return s.Default
}

// Catalog — статический справочник для обогащения траекторий.
type Catalog struct {
	Institutions RuleSet[[]models.Institution]
	Subjects     RuleSet[models.SubjectRequirement]
	Videos       RuleSet[string]
}

// Enrich возвращает копии траекторий с учебными заведениями, школьными
// предметами, картинкой и видео. Исходный срез не изменяется.
func (c *Catalog) Enrich(paths []models.CareerPath) []models.CareerPath {
	out := make([]models.CareerPath, len(paths))
	for i, p := range paths {
		p.Institutions = slices.Clone(c.Institutions.Match(p.Title))

		subjects := c.Subjects.Match(p.Title)
		subjects.Essential = slices.Clone(subjects.Essential)
		subjects.Recommended = slices.Clone(subjects.Recommended)
		p.Subjects = &subjects

		p.ImageURL = ImageURL(p.Title)
		p.VideoURL = c.Videos.Match(p.Title)
		out[i] = p
	}
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// ImageURL строит стабильную ссылку на картинку‑заглушку по названию профессии.
func ImageURL(title string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "career"
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/450", slug)
}

// keywordsFor возвращает название профессии и каждое его слово в нижнем регистре.
func keywordsFor(career string) []string {
	lower := strings.ToLower(career)
	return append([]string{lower}, strings.Fields(lower)...)
}
