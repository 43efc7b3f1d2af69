package ui

import (
	"fmt"
	"strings"
)

// Visibility is the answer state of a single question card.
type Visibility int

const (
	AnswerHidden Visibility = iota
	AnswerVisible
)

// Toggle flips v.
func Toggle(v Visibility) Visibility {
	if v == AnswerVisible {
		return AnswerHidden
	}
	return AnswerVisible
}

// ToggleLabel is the text of the answer-toggle control for state v.
func ToggleLabel(v Visibility) string {
	if v == AnswerVisible {
		return "Hide Answer"
	}
	return "Show Answer"
}

// Action is the tag a card passes to its QuestionAction handler.
type Action string

const ActionDelete Action = "DELETE"

// ActionHandler receives card actions. The card does not recover from panics
// raised by the handler.
type ActionHandler func(action Action)

// QuestionProps is what a parent supplies to a question card.
// A nil or empty Category renders as "Unknown".
type QuestionProps struct {
	Question       string
	Answer         string
	Category       *string
	Difficulty     int
	QuestionAction ActionHandler
}

const (
	unknownCategoryLabel = "Unknown"
	unknownCategoryIcon  = "unknown"
)

// CategoryLabel is the text shown on the category badge.
func CategoryLabel(category *string) string {
	if category == nil || *category == "" {
		return unknownCategoryLabel
	}
	return *category
}

// CategoryIcon is the icon key for the category badge. The image resource is
// "<key>.svg".
func CategoryIcon(category *string) string {
	if category == nil || *category == "" {
		return unknownCategoryIcon
	}
	return strings.ToLower(*category)
}

// IconSrc returns the image source for an icon key.
func IconSrc(icon string) string {
	return icon + ".svg"
}

// DifficultyLabel renders a difficulty level verbatim.
func DifficultyLabel(difficulty int) string {
	return fmt.Sprintf("Level %d", difficulty)
}

// QuestionCard is one rendered quiz item plus its answer visibility.
type QuestionCard struct {
	props      QuestionProps
	visibility Visibility
}

// NewQuestionCard returns a card with the answer hidden.
func NewQuestionCard(props QuestionProps) *QuestionCard {
	return &QuestionCard{props: props, visibility: AnswerHidden}
}

// Props returns the props the card was created with.
func (q *QuestionCard) Props() QuestionProps {
	return q.props
}

// Visibility returns the current answer state.
func (q *QuestionCard) Visibility() Visibility {
	return q.visibility
}

// Toggle flips answer visibility.
func (q *QuestionCard) Toggle() {
	q.visibility = Toggle(q.visibility)
}

// Delete hands ActionDelete to the QuestionAction handler once. A card with
// no handler does nothing.
func (q *QuestionCard) Delete() {
	if q.props.QuestionAction == nil {
		return
	}
	q.props.QuestionAction(ActionDelete)
}

// QuestionView is the render-ready form of a card.
type QuestionView struct {
	Question        string
	CategoryLabel   string
	CategoryIcon    string
	IconSrc         string
	DifficultyLabel string
	ToggleLabel     string
	AnswerVisible   bool
	Answer          string
}

// View computes what the card displays in its current state. Answer is empty
// unless the answer is visible.
func (q *QuestionCard) View() QuestionView {
	icon := CategoryIcon(q.props.Category)
	v := QuestionView{
		Question:        q.props.Question,
		CategoryLabel:   CategoryLabel(q.props.Category),
		CategoryIcon:    icon,
		IconSrc:         IconSrc(icon),
		DifficultyLabel: DifficultyLabel(q.props.Difficulty),
		ToggleLabel:     ToggleLabel(q.visibility),
		AnswerVisible:   q.visibility == AnswerVisible,
	}
	if v.AnswerVisible {
		v.Answer = q.props.Answer
	}
	return v
}
