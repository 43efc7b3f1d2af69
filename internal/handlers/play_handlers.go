package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"quizmaster_app/internal/services"
	"quizmaster_app/internal/ui"
	"quizmaster_app/web/templates/pages"
)

// QuestionsPerPlay is how many questions one quiz round asks
const QuestionsPerPlay = 5

// PlayHandler runs quiz rounds. The round state travels in the form, so the
// server keeps nothing between requests.
type PlayHandler struct {
	quiz   *services.QuizService
	appURL string
}

// NewPlayHandler creates a PlayHandler
func NewPlayHandler(quiz *services.QuizService, appURL string) *PlayHandler {
	return &PlayHandler{quiz: quiz, appURL: appURL}
}

// PlayPage renders category selection
func (h *PlayHandler) PlayPage(c echo.Context) error {
	categories, err := h.quiz.Categories(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return render(c, http.StatusOK, pages.Play(pages.PlayProps{
		Title:      "Play",
		Header:     headerProps(c, h.appURL, ui.NavPlay),
		Categories: categories,
	}))
}

// Answer grades the submitted guess, if any, and serves the next question
func (h *PlayHandler) Answer(c echo.Context) error {
	ctx := c.Request().Context()

	props := pages.PlayProps{
		Title:   "Play",
		Header:  headerProps(c, h.appURL, ui.NavPlay),
		Started: true,
		Score:   atoiOrZero(c.FormValue("score")),
		Asked:   atoiOrZero(c.FormValue("asked")),
	}
	if id, err := strconv.ParseUint(c.FormValue("category"), 10, 32); err == nil {
		props.CategoryID = uint(id)
	}
	previous := parseIDList(c.FormValue("previous"))

	if raw := c.FormValue("question_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest)
		}
		asked, err := h.quiz.GetQuestion(ctx, id)
		if err != nil {
			return serviceError(err)
		}

		props.Asked++
		previous = append(previous, asked.ID)
		if CheckAnswer(asked.Answer, c.FormValue("guess")) {
			props.Score++
			props.Correct = true
			props.Feedback = "You were correct!"
		} else {
			props.Feedback = "You were incorrect. The correct answer was " + asked.Answer + "."
		}
	}
	props.Previous = formatIDList(previous)

	if props.Asked >= QuestionsPerPlay {
		props.Finished = true
		return render(c, http.StatusOK, pages.Play(props))
	}

	next, err := h.quiz.NextQuizQuestion(ctx, previous, props.CategoryID)
	if err != nil {
		return serviceError(err)
	}
	if next == nil {
		props.Finished = true
	}
	props.Question = next

	return render(c, http.StatusOK, pages.Play(props))
}

// CheckAnswer compares a guess to the answer ignoring case and surrounding space
func CheckAnswer(answer, guess string) bool {
	guess = strings.TrimSpace(guess)
	return guess != "" && strings.EqualFold(strings.TrimSpace(answer), guess)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseIDList(s string) []uint {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32); err == nil && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

func formatIDList(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
