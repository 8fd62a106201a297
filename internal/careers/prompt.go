// Package careers реализует конвейер анализа интересов: построение запроса
// к языковой модели, разбор и проверку её ответа, резервный набор
// траекторий и обогащение траекторий справочными данными.
package careers

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/career_analysis.tmpl
var careerAnalysisPromptRaw string

// careerAnalysisTemplate разбирается один раз при инициализации пакета.
var careerAnalysisTemplate = template.Must(template.New("career_analysis").Parse(careerAnalysisPromptRaw))

// Количество траекторий и навыков, которое запрашивается у модели.
const (
	MinPaths  = 2
	MaxPaths  = 3
	MinSkills = 3
	MaxSkills = 6
)

type promptData struct {
	UserInput string
	MinPaths  int
	MaxPaths  int
	MinSkills int
	MaxSkills int
}

// BuildPrompt детерминированно строит запрос к модели по тексту пользователя.
//
// Текст вставляется дословно; в запрос не попадают случайные значения и время,
// поэтому одинаковый ввод всегда даёт одинаковый запрос.
func BuildPrompt(userInput string) (string, error) {
	const op = "careers.BuildPrompt"

	var sb strings.Builder
	err := careerAnalysisTemplate.Execute(&sb, promptData{
		UserInput: userInput,
		MinPaths:  MinPaths,
		MaxPaths:  MaxPaths,
		MinSkills: MinSkills,
		MaxSkills: MaxSkills,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sb.String(), nil
}
