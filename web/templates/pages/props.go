package pages

import (
	"strconv"

	"quizmaster_app/internal/models"
	"quizmaster_app/web/templates/shared"
)

// CategoryLink is one entry of the category sidebar
type CategoryLink struct {
	Label  string
	Href   string
	Active bool
}

// BrowseProps is everything the browse page shows
type BrowseProps struct {
	Title      string
	Header     shared.HeaderProps
	Categories []CategoryLink
	Search     string
	Heading    string
	Cards      []shared.QuestionCardProps
	Total      int64
	PrevHref   string
	NextHref   string
	Empty      string
}

// CategoryLinks builds the sidebar entries. hrefFor returns the link for a
// category id, 0 meaning all categories.
func CategoryLinks(categories []models.Category, current uint, hrefFor func(id uint) string) []CategoryLink {
	links := []CategoryLink{{Label: "All", Href: hrefFor(0), Active: current == 0}}
	for _, c := range categories {
		links = append(links, CategoryLink{Label: c.Type, Href: hrefFor(c.ID), Active: c.ID == current})
	}
	return links
}

// ErrorPageProps describes a failed request
type ErrorPageProps struct {
	Title        string
	Header       shared.HeaderProps
	Code         int
	ErrorTitle   string
	ErrorMessage string
}

// QuestionFormValues are the raw form fields, kept as strings so a failed
// submission can be shown back unchanged
type QuestionFormValues struct {
	Question   string
	Answer     string
	Category   string
	Difficulty string
}

// QuestionFormProps configures the create-question page
type QuestionFormProps struct {
	Title      string
	Header     shared.HeaderProps
	Categories []models.Category
	Values     QuestionFormValues
	Errors     []string
}

var difficultyLevels = []string{"1", "2", "3", "4", "5"}

// PlayProps is the state of a quiz round as shown to the player
type PlayProps struct {
	Title      string
	Header     shared.HeaderProps
	Categories []models.Category

	Started    bool
	CategoryID uint
	Previous   string
	Score      int
	Asked      int
	Question   *models.Question
	Feedback   string
	Correct    bool
	Finished   bool
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
