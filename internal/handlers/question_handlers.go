package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"quizmaster_app/internal/models"
	"quizmaster_app/internal/services"
	"quizmaster_app/internal/ui"
	"quizmaster_app/web/templates/pages"
	"quizmaster_app/web/templates/shared"
)

// QuestionHandler serves the browse and create pages
type QuestionHandler struct {
	quiz   *services.QuizService
	appURL string
}

// NewQuestionHandler creates a QuestionHandler
func NewQuestionHandler(quiz *services.QuizService, appURL string) *QuestionHandler {
	return &QuestionHandler{quiz: quiz, appURL: appURL}
}

// browseQuery is the state of the browse page carried in its URL
type browseQuery struct {
	Page     int
	Category uint
	Search   string
	Shown    map[uint]bool
}

func parseBrowseQuery(c echo.Context) browseQuery {
	q := browseQuery{Page: 1, Shown: map[uint]bool{}}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		q.Page = p
	}
	if id, err := strconv.ParseUint(c.QueryParam("category"), 10, 32); err == nil {
		q.Category = uint(id)
	}
	q.Search = strings.TrimSpace(c.QueryParam("q"))
	for _, raw := range c.QueryParams()["show"] {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			q.Shown[uint(id)] = true
		}
	}
	return q
}

// URL encodes the query. Shown ids are sorted so links are stable.
func (q browseQuery) URL() string {
	v := url.Values{}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Category != 0 {
		v.Set("category", strconv.FormatUint(uint64(q.Category), 10))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	for _, id := range sortedIDs(q.Shown) {
		v.Add("show", strconv.FormatUint(uint64(id), 10))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// with returns a copy of q with the given changes applied to a fresh Shown set
func (q browseQuery) with(change func(*browseQuery)) browseQuery {
	out := q
	out.Shown = make(map[uint]bool, len(q.Shown))
	for id := range q.Shown {
		out.Shown[id] = true
	}
	change(&out)
	return out
}

// toggled returns q with id's answer visibility flipped
func (q browseQuery) toggled(id uint) browseQuery {
	return q.with(func(n *browseQuery) {
		if n.Shown[id] {
			delete(n.Shown, id)
		} else {
			n.Shown[id] = true
		}
	})
}

// Browse renders the question list. Search wins over category filtering,
// which wins over plain pagination.
func (h *QuestionHandler) Browse(c echo.Context) error {
	ctx := c.Request().Context()
	query := parseBrowseQuery(c)

	categories, err := h.quiz.Categories(ctx)
	if err != nil {
		return serviceError(err)
	}

	props := pages.BrowseProps{
		Title:  "Browse",
		Header: headerProps(c, h.appURL, ui.NavBrowse),
		Search: query.Search,
		Empty:  "No questions yet.",
		Categories: pages.CategoryLinks(categories, query.Category, func(id uint) string {
			return browseQuery{Category: id}.URL()
		}),
	}

	var questions []models.Question
	switch {
	case query.Search != "":
		questions, err = h.quiz.Search(ctx, query.Search)
		if err != nil {
			return serviceError(err)
		}
		props.Heading = fmt.Sprintf("Results for %q", query.Search)
		props.Empty = "No questions match your search."
		props.Total = int64(len(questions))
	case query.Category != 0:
		questions, err = h.quiz.QuestionsByCategory(ctx, query.Category)
		if err != nil {
			return serviceError(err)
		}
		props.Heading = categoryType(categories, query.Category)
		props.Empty = "No questions in this category."
		props.Total = int64(len(questions))
	default:
		page, err := h.quiz.ListQuestions(ctx, query.Page)
		switch {
		case errors.Is(err, services.ErrNotFound) && query.Page == 1:
			// empty database, nothing to page through
		case err != nil:
			return serviceError(err)
		default:
			questions = page.Questions
			props.Total = page.Total
			if query.Page > 1 {
				props.PrevHref = query.with(func(n *browseQuery) { n.Page-- }).URL()
			}
			if page.HasNext() {
				props.NextHref = query.with(func(n *browseQuery) { n.Page++ }).URL()
			}
		}
		props.Heading = "Questions"
	}

	for _, q := range questions {
		card := ui.NewQuestionCard(questionProps(q, nil))
		if query.Shown[q.ID] {
			card.Toggle()
		}
		props.Cards = append(props.Cards, shared.QuestionCardProps{
			ID:           q.ID,
			Card:         card,
			ToggleHref:   query.toggled(q.ID).URL(),
			DeleteAction: fmt.Sprintf("/questions/%d/delete", q.ID),
		})
	}

	return render(c, http.StatusOK, pages.Browse(props))
}

// DeleteQuestion deletes through the card's delete action and navigates home
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	q, err := h.quiz.GetQuestion(ctx, id)
	if err != nil {
		return serviceError(err)
	}

	var deleteErr error
	card := ui.NewQuestionCard(questionProps(*q, func(action ui.Action) {
		if action == ui.ActionDelete {
			deleteErr = h.quiz.DeleteQuestion(ctx, q.ID)
		}
	}))
	card.Delete()
	if deleteErr != nil {
		return serviceError(deleteErr)
	}

	hdr, nav := header(c, h.appURL)
	hdr.NavTo(ui.NavBrowse)
	return nav.err
}

// AddQuestionPage renders the empty create form
func (h *QuestionHandler) AddQuestionPage(c echo.Context) error {
	return h.renderForm(c, pages.QuestionFormValues{Difficulty: "1"}, nil)
}

// StoreQuestion creates a question from the form. Invalid input re-renders
// the form with the submitted values.
func (h *QuestionHandler) StoreQuestion(c echo.Context) error {
	values := pages.QuestionFormValues{
		Question:   c.FormValue("question"),
		Answer:     c.FormValue("answer"),
		Category:   c.FormValue("category"),
		Difficulty: c.FormValue("difficulty"),
	}

	in := services.NewQuestion{
		Question: strings.TrimSpace(values.Question),
		Answer:   strings.TrimSpace(values.Answer),
	}
	if id, err := strconv.ParseUint(values.Category, 10, 32); err == nil {
		in.CategoryID = uint(id)
	}
	if d, err := strconv.Atoi(values.Difficulty); err == nil {
		in.Difficulty = d
	}

	if err := c.Validate(&in); err != nil {
		return h.renderForm(c, values, validationMessages(err))
	}

	_, err := h.quiz.CreateQuestion(c.Request().Context(), in)
	if errors.Is(err, services.ErrInvalidInput) {
		return h.renderForm(c, values, []string{"Choose one of the listed categories."})
	}
	if err != nil {
		return serviceError(err)
	}

	hdr, nav := header(c, h.appURL)
	hdr.NavTo(ui.NavBrowse)
	return nav.err
}

func (h *QuestionHandler) renderForm(c echo.Context, values pages.QuestionFormValues, errs []string) error {
	ctx := c.Request().Context()
	categories, err := h.quiz.Categories(ctx)
	if err != nil {
		return serviceError(err)
	}

	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}
	return render(c, status, pages.QuestionForm(pages.QuestionFormProps{
		Title:      "Create",
		Header:     headerProps(c, h.appURL, ui.NavCreate),
		Categories: categories,
		Values:     values,
		Errors:     errs,
	}))
}

var fieldLabels = map[string]string{
	"Question":   "Question",
	"Answer":     "Answer",
	"CategoryID": "Category",
	"Difficulty": "Difficulty",
}

// validationMessages turns validator errors into form messages
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"The form could not be validated."}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.StructField()]
		if label == "" {
			label = fe.StructField()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, label+" is required.")
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between 1 and 5.", label))
		default:
			msgs = append(msgs, label+" is invalid.")
		}
	}
	return msgs
}

func categoryType(categories []models.Category, id uint) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Type
		}
	}
	return ""
}
