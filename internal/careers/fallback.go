package careers

import (
	"slices"

	"github.com/magabrotheeeer/questly/internal/models"
)

// fallbackPaths — резервный набор траекторий общего характера.
// Подставляется, когда ответ модели нельзя разобрать или проверить.
var fallbackPaths = []models.CareerPath{
	{
		ID:    "fallback-1",
		Title: "Technology Consultant",
		Persona: models.Section{
			Title:       "Meet Your Future Self",
			Description: "You're Jordan Kim, a 29-year-old Senior Technology Consultant at Deloitte. You help large companies modernize their technology infrastructure and digital processes. Your recent project saved a retail client $2M annually through automation.",
		},
		DayInLife: models.Section{
			Title:       "A Day in Your Life",
			Description: "8:00 AM: Review client requirements and project updates. 9:30 AM: Client video call discussing system architecture. 11:00 AM: Collaborate with the development team on solutions. 1:00 PM: Lunch and networking. 2:30 PM: Technical documentation and analysis. 4:00 PM: Stakeholder presentation on recommendations. 6:00 PM: Research emerging technologies and trends.",
		},
		WeekendQuest: models.Section{
			Title:       "Your Weekend Quest",
			Description: "Automate a simple repetitive task, like sorting emails or scheduling social media posts, with a free tool such as Zapier or Microsoft Power Automate. Document each step and share it online to start your consulting portfolio.",
		},
		RealityCheck: models.Section{
			Title:       "The Reality Check",
			Description: "Technology consulting requires strong analytical and communication skills, plus continuous learning as technologies evolve. Entry-level roles often involve travel and long hours during project implementations, but growth is rapid for those who deliver.",
		},
		Skills:        []string{"Problem Solving", "Communication", "Technical Analysis", "Project Management"},
		TimeToMastery: "3-4 years",
		AverageSalary: "$85,000 - $150,000",
	},
	{
		ID:    "fallback-2",
		Title: "Digital Marketing Specialist",
		Persona: models.Section{
			Title:       "Meet Your Future Self",
			Description: "You're Naledi Dlamini, a 27-year-old Digital Marketing Lead at a fast-growing e-commerce startup. Your campaign for a local fashion brand tripled its online sales in six months and was featured at a national marketing awards evening.",
		},
		DayInLife: models.Section{
			Title:       "A Day in Your Life",
			Description: "8:30 AM: Check overnight campaign performance dashboards. 10:00 AM: Brainstorm content ideas with designers and copywriters. 12:00 PM: Adjust ad budgets based on results. 2:00 PM: Meet a client to present a new social media strategy. 4:00 PM: Analyse audience data and plan A/B tests. 5:30 PM: Read up on platform algorithm changes.",
		},
		WeekendQuest: models.Section{
			Title:       "Your Weekend Quest",
			Description: "Pick a small local business or school club and create a one-week social media content plan for it. Design three posts with a free tool like Canva, publish them, and track likes, shares, and comments to learn what works.",
		},
		RealityCheck: models.Section{
			Title:       "The Reality Check",
			Description: "Marketing moves fast: platforms and algorithms change constantly, and results are measured every day. A diploma or degree in marketing or communications helps, but a portfolio of real campaigns often matters more when you apply.",
		},
		Skills:        []string{"Content Creation", "Data Analysis", "Copywriting", "Social Media Strategy"},
		TimeToMastery: "2-3 years",
		AverageSalary: "$45,000 - $95,000",
	},
}

// Fallback возвращает копию резервного набора траекторий.
func Fallback() []models.CareerPath {
	out := make([]models.CareerPath, len(fallbackPaths))
	for i, p := range fallbackPaths {
		p.Skills = slices.Clone(p.Skills)
		out[i] = p
	}
	return out
}
