package models

// Section — повествовательный раздел карьерной траектории.
type Section struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CareerPath — карьерная траектория, сгенерированная моделью или взятая из резервного набора.
//
// Девять базовых полей обязательны; Institutions, Subjects, ImageURL и VideoURL
// добавляются на этапе обогащения.
type CareerPath struct {
	ID            string   `json:"id" bson:"id"`
	Title         string   `json:"title" bson:"title"`
	Persona       Section  `json:"persona" bson:"persona"`
	DayInLife     Section  `json:"dayInLife" bson:"day_in_life"`
	WeekendQuest  Section  `json:"weekendQuest" bson:"weekend_quest"`
	RealityCheck  Section  `json:"realityCheck" bson:"reality_check"`
	Skills        []string `json:"skills" bson:"skills"`
	TimeToMastery string   `json:"timeToMastery" bson:"time_to_mastery"`
	AverageSalary string   `json:"averageSalary" bson:"average_salary"`

	Institutions []Institution       `json:"institutions,omitempty" bson:"institutions,omitempty"`
	Subjects     *SubjectRequirement `json:"subjects,omitempty" bson:"subjects,omitempty"`
	ImageURL     string              `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	VideoURL     string              `json:"videoUrl,omitempty" bson:"video_url,omitempty"`
}

// Institution — учебное заведение и программа, ведущие к профессии.
type Institution struct {
	Name        string `json:"institution" bson:"institution"`
	Programme   string `json:"programme" bson:"programme"`
	Duration    string `json:"duration" bson:"duration"`
	APSRequired string `json:"aps_required" bson:"aps_required"`
	Location    string `json:"location" bson:"location"`
}

// SubjectRequirement — школьные предметы и проходной балл APS для профессии.
type SubjectRequirement struct {
	Essential   []string `json:"essential" bson:"essential"`
	Recommended []string `json:"recommended" bson:"recommended"`
	APSRange    string   `json:"aps_range" bson:"aps_range"`
	MinAPS      int      `json:"min_aps" bson:"min_aps"`
}
