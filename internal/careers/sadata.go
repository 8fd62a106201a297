package careers

import "github.com/magabrotheeeer/questly/internal/models"

const videoPlaceholder = "https://www.youtube.com/embed/watch?v=placeholder_"

// DefaultCatalog возвращает справочник южноафриканских учебных заведений,
// требований к предметам (APS) и видео по профессиям.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Institutions: RuleSet[[]models.Institution]{
			Rules: []Rule[[]models.Institution]{
				{
					Keywords: []string{"engineer", "developer", "data scientist"},
					Value: []models.Institution{
						{
							Name:        "University of the Witwatersrand (Wits)",
							Programme:   "Bachelor of Science in Engineering/Computer Science",
							Duration:    "4 years",
							APSRequired: "42+",
							Location:    "Johannesburg, Gauteng",
						},
						{
							Name:        "University of Cape Town (UCT)",
							Programme:   "Bachelor of Science in Computer Science/Engineering",
							Duration:    "4 years",
							APSRequired: "45+",
							Location:    "Cape Town, Western Cape",
						},
						{
							Name:        "Central Johannesburg TVET College",
							Programme:   "National Diploma in Information Technology",
							Duration:    "3 years",
							APSRequired: "30+",
							Location:    "Johannesburg, Gauteng",
						},
					},
				},
				{
					Keywords: []string{"psychologist", "counselor"},
					Value: []models.Institution{
						{
							Name:        "University of Cape Town (UCT)",
							Programme:   "Bachelor of Social Science in Psychology",
							Duration:    "3 years + Honours + Masters + Internship (7-8 years total)",
							APSRequired: "40+",
							Location:    "Cape Town, Western Cape",
						},
						{
							Name:        "University of the Witwatersrand (Wits)",
							Programme:   "Bachelor of Arts in Psychology",
							Duration:    "3 years + Honours + Masters + Internship (7-8 years total)",
							APSRequired: "38+",
							Location:    "Johannesburg, Gauteng",
						},
					},
				},
				{
					Keywords: []string{"medical", "doctor"},
					Value: []models.Institution{
						{
							Name:        "University of Cape Town (UCT)",
							Programme:   "Bachelor of Medicine and Bachelor of Surgery (MBChB)",
							Duration:    "6 years",
							APSRequired: "50+",
							Location:    "Cape Town, Western Cape",
						},
						{
							Name:        "University of the Witwatersrand (Wits)",
							Programme:   "Bachelor of Medicine and Bachelor of Surgery (MBChB)",
							Duration:    "6 years",
							APSRequired: "52+",
							Location:    "Johannesburg, Gauteng",
						},
					},
				},
			},
			Default: []models.Institution{
				{
					Name:        "University of Pretoria (UP)",
					Programme:   "Relevant Bachelor's Degree",
					Duration:    "3-4 years",
					APSRequired: "35+",
					Location:    "Pretoria, Gauteng",
				},
				{
					Name:        "Stellenbosch University",
					Programme:   "Relevant Bachelor's Degree",
					Duration:    "3-4 years",
					APSRequired: "38+",
					Location:    "Stellenbosch, Western Cape",
				},
			},
		},
		Subjects: RuleSet[models.SubjectRequirement]{
			Rules: []Rule[models.SubjectRequirement]{
				{
					Keywords: keywordsFor("Software Developer"),
					Value: models.SubjectRequirement{
						Essential:   []string{"Mathematics", "Information Technology", "Physical Sciences"},
						Recommended: []string{"English Home Language", "Life Sciences", "Technical Mathematics"},
						APSRange:    "35-45",
						MinAPS:      35,
					},
				},
				{
					Keywords: keywordsFor("Data Scientist"),
					Value: models.SubjectRequirement{
						Essential:   []string{"Mathematics", "Physical Sciences", "Information Technology"},
						Recommended: []string{"English Home Language", "Mathematical Literacy", "Life Sciences"},
						APSRange:    "40-50",
						MinAPS:      40,
					},
				},
				{
					Keywords: keywordsFor("Clinical Psychologist"),
					Value: models.SubjectRequirement{
						Essential:   []string{"English Home Language", "Life Sciences", "Mathematics"},
						Recommended: []string{"History", "Geography", "Life Orientation"},
						APSRange:    "45-55",
						MinAPS:      45,
					},
				},
				{
					Keywords: keywordsFor("Mechanical Engineer"),
					Value: models.SubjectRequirement{
						Essential:   []string{"Mathematics", "Physical Sciences", "Engineering Graphics & Design"},
						Recommended: []string{"English Home Language", "Technical Mathematics", "Information Technology"},
						APSRange:    "40-50",
						MinAPS:      40,
					},
				},
				{
					Keywords: keywordsFor("Medical Doctor"),
					Value: models.SubjectRequirement{
						Essential:   []string{"Mathematics", "Physical Sciences", "Life Sciences"},
						Recommended: []string{"English Home Language", "Afrikaans/Other Language"},
						APSRange:    "50-60",
						MinAPS:      50,
					},
				},
				{
					Keywords: keywordsFor("Business Analyst"),
					Value: models.SubjectRequirement{
						Essential:   []string{"Mathematics", "English Home Language", "Information Technology"},
						Recommended: []string{"Accounting", "Business Studies", "Economics"},
						APSRange:    "35-45",
						MinAPS:      35,
					},
				},
			},
			Default: models.SubjectRequirement{
				Essential:   []string{"Mathematics", "English Home Language", "Physical Sciences"},
				Recommended: []string{"Information Technology", "Life Sciences", "Accounting"},
				APSRange:    "35-45",
				MinAPS:      35,
			},
		},
		Videos: RuleSet[string]{
			Rules: []Rule[string]{
				{Keywords: []string{"software developer"}, Value: videoPlaceholder + "software_developer"},
				{Keywords: []string{"data scientist"}, Value: videoPlaceholder + "data_scientist"},
				{Keywords: []string{"psychologist"}, Value: videoPlaceholder + "psychologist"},
				{Keywords: []string{"engineer"}, Value: videoPlaceholder + "engineer"},
			},
			Default: videoPlaceholder + "career",
		},
	}
}
