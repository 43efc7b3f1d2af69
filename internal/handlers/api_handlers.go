package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"quizmaster_app/internal/models"
	"quizmaster_app/internal/services"
)

// APIHandler serves the JSON API under /api
type APIHandler struct {
	quiz *services.QuizService
}

// NewAPIHandler creates an APIHandler
func NewAPIHandler(quiz *services.QuizService) *APIHandler {
	return &APIHandler{quiz: quiz}
}

// Categories lists every category as {id: type}
func (h *APIHandler) Categories(c echo.Context) error {
	categories, err := h.quiz.CategoryMap(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// Questions returns one page of questions. An empty page is a 404.
func (h *APIHandler) Questions(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := h.quiz.ListQuestions(ctx, pageParam(c))
	if err != nil {
		return serviceError(err)
	}
	categories, err := h.quiz.CategoryMap(ctx)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      models.FormatQuestions(page.Questions),
		TotalQuestions: page.Total,
		Categories:     categories,
	})
}

// DeleteQuestion deletes by id and returns the requested page of what remains
func (h *APIHandler) DeleteQuestion(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.quiz.DeleteQuestion(ctx, id); err != nil {
		return serviceError(err)
	}

	resp, err := h.remaining(c)
	if err != nil {
		return err
	}
	resp.Deleted = id
	return c.JSON(http.StatusOK, resp)
}

// CreateOrSearch searches when searchTerm is present, otherwise creates a
// question. All four question fields are required to create.
func (h *APIHandler) CreateOrSearch(c echo.Context) error {
	ctx := c.Request().Context()

	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if req.SearchTerm != "" {
		questions, err := h.quiz.Search(ctx, req.SearchTerm)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(http.StatusOK, searchResponse{
			Success:        true,
			Questions:      models.FormatQuestions(questions),
			TotalQuestions: int64(len(questions)),
		})
	}

	in := services.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: int(req.Difficulty),
	}
	if req.Category > 0 {
		in.CategoryID = uint(req.Category)
	}
	if err := c.Validate(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	q, err := h.quiz.CreateQuestion(ctx, in)
	if err != nil {
		return serviceError(err)
	}

	resp, err := h.remaining(c)
	if err != nil {
		return err
	}
	resp.Created = q.ID
	return c.JSON(http.StatusOK, resp)
}

// CategoryQuestions lists the questions of one category
func (h *APIHandler) CategoryQuestions(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	questions, err := h.quiz.QuestionsByCategory(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, categoryQuestionsResponse{
		Questions:       models.FormatQuestions(questions),
		TotalQuestions:  int64(len(questions)),
		CurrentCategory: id,
	})
}

// Quiz returns a random question outside previous_questions, within
// quiz_category when one is given. question is null once none remain.
func (h *APIHandler) Quiz(c echo.Context) error {
	var req quizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	if req.PreviousQuestions == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "previous_questions is required")
	}

	q, err := h.quiz.NextQuizQuestion(c.Request().Context(), *req.PreviousQuestions, req.QuizCategory.ID)
	if err != nil {
		return serviceError(err)
	}

	resp := quizResponse{Success: true}
	if q != nil {
		formatted := q.Format()
		resp.Question = &formatted
	}
	return c.JSON(http.StatusOK, resp)
}

// remaining builds the page of questions returned after a mutation. A page
// past the end is reported as empty.
func (h *APIHandler) remaining(c echo.Context) (mutationResponse, error) {
	page, err := h.quiz.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return mutationResponse{}, serviceError(err)
	}

	return mutationResponse{
		Success:        true,
		Questions:      models.FormatQuestions(page.Questions),
		TotalQuestions: page.Total,
	}, nil
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
