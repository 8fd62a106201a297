package careers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/questly/internal/models"
)

// Ошибки разбора ответа модели. Наружу из сервиса анализа не выходят:
// вместо них возвращается резервный набор траекторий.
var (
	ErrMalformedOutput  = errors.New("malformed model output")
	ErrIncompleteRecord = errors.New("incomplete career record")
)

// RequiredFields — поля, обязательные для каждой траектории в ответе модели.
var RequiredFields = []string{
	"id",
	"title",
	"persona",
	"dayInLife",
	"weekendQuest",
	"realityCheck",
	"skills",
	"timeToMastery",
	"averageSalary",
}

// Parse извлекает из произвольного текста JSON‑массив траекторий и проверяет его.
//
// Массив ищется между первой '[' и последней ']', текст вокруг игнорируется.
// Проверка атомарна: если хотя бы в одной записи нет обязательного поля
// или оно пустое, отклоняется весь ответ. Число навыков должно быть
// в пределах [MinSkills, MaxSkills].
func Parse(text string) ([]models.CareerPath, error) {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array found", ErrMalformedOutput)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: empty career list", ErrMalformedOutput)
	}

	for i, el := range elements {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(el, &fields); err != nil {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrMalformedOutput, i)
		}
		if fields == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrMalformedOutput, i)
		}
		for _, name := range RequiredFields {
			value, ok := fields[name]
			if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
				return nil, fmt.Errorf("%w: record %d: missing required field %q", ErrIncompleteRecord, i, name)
			}
		}
	}

	paths := make([]models.CareerPath, len(elements))
	for i, el := range elements {
		if err := json.Unmarshal(el, &paths[i]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedOutput, i, err)
		}
		if err := checkComplete(paths[i]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrIncompleteRecord, i, err)
		}
	}
	return paths, nil
}

func checkComplete(p models.CareerPath) error {
	scalars := []struct {
		name  string
		value string
	}{
		{"id", p.ID},
		{"title", p.Title},
		{"timeToMastery", p.TimeToMastery},
		{"averageSalary", p.AverageSalary},
		{"persona.description", p.Persona.Description},
		{"dayInLife.description", p.DayInLife.Description},
		{"weekendQuest.description", p.WeekendQuest.Description},
		{"realityCheck.description", p.RealityCheck.Description},
	}
	for _, f := range scalars {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("empty field %q", f.name)
		}
	}

	if n := len(p.Skills); n < MinSkills || n > MaxSkills {
		return fmt.Errorf("skills: got %d, want %d-%d", n, MinSkills, MaxSkills)
	}
	for j, skill := range p.Skills {
		if strings.TrimSpace(skill) == "" {
			return fmt.Errorf("skills[%d] is empty", j)
		}
	}
	return nil
}
