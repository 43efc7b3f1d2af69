// Package shared holds the templ components used on every page.
package shared

import (
	"net/url"
	"strconv"

	"quizmaster_app/internal/ui"
)

// IconBase is where category icons are served from
const IconBase = "/static/icons/"

// IconURL is the served location of an icon image. The name is escaped as a
// single path segment.
func IconURL(src string) string {
	return IconBase + url.PathEscape(src)
}

// HeaderProps configures the page header
type HeaderProps struct {
	Header *ui.Header
	Active ui.NavigationTarget
}

// QuestionCardProps is a card plus the URLs its controls submit to
type QuestionCardProps struct {
	ID           uint
	Card         *ui.QuestionCard
	ToggleHref   string
	DeleteAction string
}

// LayoutProps configures the document shell. The page body is passed as
// children.
type LayoutProps struct {
	Title  string
	Header HeaderProps
}

func questionAnchor(id uint) string {
	return "question-" + strconv.FormatUint(uint64(id), 10)
}
