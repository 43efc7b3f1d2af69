package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaster_app/internal/middleware"
	"quizmaster_app/internal/services"
)

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAPI_Categories(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	categories := body["categories"].(map[string]interface{})
	assert.Len(t, categories, 6)
	assert.Equal(t, "Science", categories["1"])
}

func TestAPI_Questions(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/questions?page=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["questions"], 6)
	assert.EqualValues(t, 6, body["total_questions"])
	assert.Nil(t, body["current_category"])
	assert.Contains(t, body, "categories")

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/questions?page=1000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, middleware.APIErrorBody(http.StatusNotFound), apiError(t, rec))
}

func TestAPI_DeleteQuestion(t *testing.T) {
	e, quiz := newTestServer(t)
	first := firstQuestion(t, quiz)
	path := "/api/questions/" + idString(first.ID)

	rec := serve(e, httptest.NewRequest(http.MethodDelete, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, first.ID, body["deleted"])
	assert.EqualValues(t, 5, body["total_questions"])

	rec = serve(e, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CreateQuestion(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, jsonRequest(http.MethodPost, "/api/questions",
		`{"question":"What is H2O?","answer":"Water","category":"1","difficulty":1}`))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotZero(t, body["created"])
	assert.EqualValues(t, 7, body["total_questions"])

	rec = serve(e, jsonRequest(http.MethodPost, "/api/questions", `{"question":"No answer"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, middleware.APIErrorBody(http.StatusBadRequest), apiError(t, rec))

	rec = serve(e, jsonRequest(http.MethodPost, "/api/questions",
		`{"question":"Q","answer":"A","category":404,"difficulty":1}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPI_SearchQuestions(t *testing.T) {
	e, quiz := newTestServer(t)
	_, err := quiz.CreateQuestion(context.Background(), services.NewQuestion{
		Question: "What is H2O?", Answer: "Water", CategoryID: 1, Difficulty: 1,
	})
	require.NoError(t, err)

	rec := serve(e, jsonRequest(http.MethodPost, "/api/questions", `{"searchTerm":"h2o"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	questions := body["questions"].([]interface{})
	require.Len(t, questions, 1)
	assert.Contains(t, questions[0].(map[string]interface{})["question"], "H2O")
}

func TestAPI_CategoryQuestions(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/categories/1/questions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["current_category"])
	assert.NotEmpty(t, body["questions"])

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/categories/1000/questions", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Quiz(t *testing.T) {
	e, _ := newTestServer(t)

	tests := []struct {
		name         string
		body         string
		expectedCode int
		expectNull   bool
	}{
		{name: "category object", body: `{"previous_questions":[],"quiz_category":{"id":1,"type":"Science"}}`, expectedCode: 200},
		{name: "category string", body: `{"previous_questions":[],"quiz_category":"2"}`, expectedCode: 200},
		{name: "all categories", body: `{"previous_questions":[],"quiz_category":null}`, expectedCode: 200},
		{name: "exhausted", body: `{"previous_questions":[1,2,3,4,5,6],"quiz_category":0}`, expectedCode: 200, expectNull: true},
		{name: "missing previous", body: `{"quiz_category":{"id":1}}`, expectedCode: 400},
		{name: "bad category", body: `{"previous_questions":[],"quiz_category":"science"}`, expectedCode: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, jsonRequest(http.MethodPost, "/api/quizzes", tt.body))

			require.Equal(t, tt.expectedCode, rec.Code, rec.Body.String())
			if tt.expectedCode != http.StatusOK {
				return
			}
			body := decode(t, rec)
			assert.Equal(t, true, body["success"])
			if tt.expectNull {
				assert.Nil(t, body["question"])
			} else {
				assert.NotNil(t, body["question"])
			}
		})
	}
}

func TestAPI_QuizRespectsCategory(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, jsonRequest(http.MethodPost, "/api/quizzes", `{"previous_questions":[],"quiz_category":{"id":4}}`))

	require.Equal(t, http.StatusOK, rec.Code)
	question := decode(t, rec)["question"].(map[string]interface{})
	assert.Equal(t, "4", question["category"])
	assert.Equal(t, "1945", question["answer"])
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodPut, "/api/questions", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, middleware.APIErrorBody(http.StatusMethodNotAllowed), apiError(t, rec))
}

func TestLooseInt(t *testing.T) {
	tests := []struct {
		in       string
		expected looseInt
		wantErr  bool
	}{
		{in: `3`, expected: 3},
		{in: `"7"`, expected: 7},
		{in: `""`, expected: 0},
		{in: `null`, expected: 0},
		{in: `"abc"`, wantErr: true},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n looseInt
			err := json.Unmarshal([]byte(tt.in), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func apiError(t *testing.T, rec *httptest.ResponseRecorder) middleware.APIError {
	t.Helper()

	var out middleware.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
