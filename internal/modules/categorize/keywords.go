package categorize

import "github.com/smartnotes/core/internal/models"

// DefaultCategories returns the seed rows installed at startup. Keyword
// lists drive the rule scorer; the uncategorized row intentionally has
// none so it can never win on hits.
func DefaultCategories() []models.CategoryModel {
	return []models.CategoryModel{
		{
			Slug:     "grocery",
			Name:     "Grocery",
			Label:    "Grocery",
			Color:    "#22c55e",
			Keywords: models.StringArray{"grocery", "milk", "eggs", "bread", "buy", "store", "supermarket"},
		},
		{
			Slug:     "tasks",
			Name:     "Tasks",
			Label:    "Tasks",
			Color:    "#3b82f6",
			Keywords: models.StringArray{"todo", "to-do", "finish", "complete", "send", "call", "submit"},
		},
		{
			Slug:     "reminders",
			Name:     "Reminders",
			Label:    "Reminders",
			Color:    "#f59e0b",
			Keywords: models.StringArray{"remember", "remind", "dont forget", "don't forget", "later", "tomorrow"},
		},
		{
			Slug:     "ideas",
			Name:     "Ideas",
			Label:    "Ideas",
			Color:    "#a855f7",
			Keywords: models.StringArray{"idea", "brainstorm", "what if", "startup", "project idea"},
		},
		{
			Slug:     "work",
			Name:     "Work",
			Label:    "Work",
			Color:    "#6366f1",
			Keywords: models.StringArray{"meeting", "client", "roadmap", "deadline", "sprint", "jira"},
		},
		{
			Slug:     "health",
			Name:     "Health",
			Label:    "Health",
			Color:    "#ef4444",
			Keywords: models.StringArray{"doctor", "workout", "exercise", "sleep", "medicine", "vitamin"},
		},
		{
			Slug:     "finance",
			Name:     "Finance",
			Label:    "Finance",
			Color:    "#10b981",
			Keywords: models.StringArray{"budget", "invoice", "pay", "expense", "rent", "subscription"},
		},
		{
			Slug:  models.UncategorizedSlug,
			Name:  "Uncategorized",
			Label: "Uncategorized",
			Color: "#475569",
		},
	}
}
