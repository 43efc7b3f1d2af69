package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"quizmaster_app/internal/models"
)

var errNotANumber = errors.New("not a number")

// looseInt accepts a JSON number, a numeric string, or null (zero)
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return errNotANumber
		}
		*n = looseInt(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errNotANumber
	}
	*n = looseInt(f)
	return nil
}

// createQuestionRequest is the POST /api/questions body. A non-empty
// SearchTerm turns the request into a search.
type createQuestionRequest struct {
	SearchTerm string   `json:"searchTerm"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   looseInt `json:"category"`
	Difficulty looseInt `json:"difficulty"`
}

// quizRequest is the POST /api/quizzes body
type quizRequest struct {
	PreviousQuestions *[]uint      `json:"previous_questions"`
	QuizCategory      quizCategory `json:"quiz_category"`
}

// quizCategory accepts {"id": 1, "type": "Science"}, "1", 1, or null.
// Zero means all categories.
type quizCategory struct {
	ID uint
}

func (qc *quizCategory) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID looseInt `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		return qc.set(int(obj.ID))
	}

	var n looseInt
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	return qc.set(int(n))
}

func (qc *quizCategory) set(v int) error {
	if v < 0 {
		return errNotANumber
	}
	qc.ID = uint(v)
	return nil
}

type categoriesResponse struct {
	Success    bool            `json:"success"`
	Categories map[uint]string `json:"categories"`
}

type questionsResponse struct {
	Success         bool                       `json:"success"`
	Questions       []models.FormattedQuestion `json:"questions"`
	TotalQuestions  int64                      `json:"total_questions"`
	CurrentCategory *uint                      `json:"current_category"`
	Categories      map[uint]string            `json:"categories"`
}

type searchResponse struct {
	Success         bool                       `json:"success"`
	Questions       []models.FormattedQuestion `json:"questions"`
	TotalQuestions  int64                      `json:"total_questions"`
	CurrentCategory *uint                      `json:"current_category"`
}

type categoryQuestionsResponse struct {
	Questions       []models.FormattedQuestion `json:"questions"`
	TotalQuestions  int64                      `json:"total_questions"`
	CurrentCategory uint                       `json:"current_category"`
}

type mutationResponse struct {
	Success        bool                       `json:"success"`
	Created        uint                       `json:"created,omitempty"`
	Deleted        uint                       `json:"deleted,omitempty"`
	Questions      []models.FormattedQuestion `json:"questions"`
	TotalQuestions int64                      `json:"total_questions"`
}

type quizResponse struct {
	Success  bool                      `json:"success"`
	Question *models.FormattedQuestion `json:"question"`
}
