package models

import "time"

// AnalysisSource показывает, откуда взяты траектории анализа.
type AnalysisSource string

const (
	// SourceGenerated — траектории разобраны из ответа модели.
	SourceGenerated AnalysisSource = "generated"
	// SourceFallback — ответ модели непригоден, использован резервный набор.
	SourceFallback AnalysisSource = "fallback"
)

// AnalysisRecord — неизменяемая запись истории анализа пользователя.
type AnalysisRecord struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Input       string         `json:"input"`
	CareerPaths []CareerPath   `json:"careerPaths"`
	Source      AnalysisSource `json:"source"`
	CreatedAt   time.Time      `json:"createdAt"`
}
