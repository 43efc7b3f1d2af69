package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizmaster_app/internal/config"
	"quizmaster_app/internal/middleware"
	"quizmaster_app/internal/models"
	"quizmaster_app/internal/services"
)

func newTestServer(t *testing.T) (*echo.Echo, *services.QuizService) {
	t.Helper()

	db, err := services.InitDB("sqlite::memory:", config.DB{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, services.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	quiz := services.NewQuizService(db, nil)
	_, err = quiz.Seed(context.Background())
	require.NoError(t, err)

	e := echo.New()
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = middleware.CustomErrorHandler(zap.NewNop(), "")
	RegisterRoutes(e, quiz, "")
	return e, quiz
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func firstQuestion(t *testing.T, quiz *services.QuizService) models.Question {
	t.Helper()

	page, err := quiz.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Questions)
	return page.Questions[0]
}

func TestBrowse_AnswersHiddenByDefault(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 6, strings.Count(body, `class="question-card"`))
	assert.Equal(t, 6, strings.Count(body, ">Show Answer</a>"))
	assert.NotContains(t, body, "<strong>Answer:</strong>")
	assert.Contains(t, body, `<a class="nav-button active" href="http://example.com">Browse</a>`)
	assert.Contains(t, body, `<img alt="science" src="/static/icons/science.svg"><span>Science</span>`)
}

func TestBrowse_ShowTogglesOneCard(t *testing.T) {
	e, quiz := newTestServer(t)
	first := firstQuestion(t, quiz)
	id := idString(first.ID)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/?show="+id, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, ">Hide Answer</a>"))
	assert.Equal(t, 5, strings.Count(body, ">Show Answer</a>"))
	assert.Contains(t, body, "<strong>Answer:</strong> "+first.Answer)
	assert.Contains(t, body, `<a class="answer-toggle" href="/">Hide Answer</a>`)
}

func TestBrowse_CategoryAndSearch(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/?q=capital", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `class="question-card"`))
	assert.Contains(t, rec.Body.String(), "capital of France")

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/?category=999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestBrowse_PageOutOfRange(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/?page=4", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteQuestion_Page(t *testing.T) {
	e, quiz := newTestServer(t)
	first := firstQuestion(t, quiz)

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/questions/"+idString(first.ID)+"/delete", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "http://example.com", rec.Header().Get(echo.HeaderLocation))
	_, err := quiz.GetQuestion(context.Background(), first.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/questions/"+idString(first.ID)+"/delete", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreQuestion(t *testing.T) {
	e, quiz := newTestServer(t)
	categories, err := quiz.Categories(context.Background())
	require.NoError(t, err)

	rec := serve(e, postForm("/add", url.Values{
		"question":   {"What is H2O?"},
		"answer":     {"Water"},
		"category":   {idString(categories[0].ID)},
		"difficulty": {"1"},
	}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	results, err := quiz.Search(context.Background(), "H2O")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStoreQuestion_InvalidRerendersForm(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, postForm("/add", url.Values{
		"question":   {"Half a question"},
		"category":   {"1"},
		"difficulty": {"9"},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Answer is required.")
	assert.Contains(t, body, "Difficulty must be between 1 and 5.")
	assert.Contains(t, body, `value="Half a question"`)
}

func TestPlay_Flow(t *testing.T) {
	e, quiz := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/play", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose Category")

	rec = serve(e, postForm("/play", url.Values{"started": {"1"}, "category": {"0"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Submit Answer")

	first := firstQuestion(t, quiz)
	rec = serve(e, postForm("/play", url.Values{
		"started":     {"1"},
		"category":    {"0"},
		"question_id": {idString(first.ID)},
		"guess":       {"  " + strings.ToUpper(first.Answer) + " "},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "You were correct!")
	assert.Contains(t, body, `name="previous" value="`+idString(first.ID)+`"`)
	assert.Contains(t, body, `name="score" value="1"`)
}

func TestPlay_FinishesAfterRoundLength(t *testing.T) {
	e, quiz := newTestServer(t)
	first := firstQuestion(t, quiz)

	rec := serve(e, postForm("/play", url.Values{
		"started":     {"1"},
		"category":    {"0"},
		"score":       {"2"},
		"asked":       {"4"},
		"question_id": {idString(first.ID)},
		"guess":       {"wrong"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "You were incorrect.")
	assert.Contains(t, body, "Your Final Score is 2 / 5")
}

func TestCheckAnswer(t *testing.T) {
	assert.True(t, CheckAnswer("Paris", "paris"))
	assert.True(t, CheckAnswer(" Leonardo da Vinci ", "leonardo DA vinci"))
	assert.False(t, CheckAnswer("Paris", ""))
	assert.False(t, CheckAnswer("Paris", "London"))
}

func TestBrowseQuery_URL(t *testing.T) {
	q := browseQuery{Page: 2, Category: 3, Shown: map[uint]bool{9: true, 4: true}}
	assert.Equal(t, "/?category=3&page=2&show=4&show=9", q.URL())
	assert.Equal(t, "/?category=3&page=2&show=9", q.toggled(4).URL())
	assert.Equal(t, "/?category=3&page=2&show=1&show=4&show=9", q.toggled(1).URL())
	assert.Len(t, q.Shown, 2)
	assert.Equal(t, "/", browseQuery{}.URL())
}

func idString(id uint) string {
	return formatIDList([]uint{id})
}
