package handlers

import (
	"github.com/labstack/echo/v4"

	"quizmaster_app/internal/services"
)

// RegisterRoutes wires the HTML pages and the JSON API onto e
func RegisterRoutes(e *echo.Echo, quiz *services.QuizService, appURL string) {
	questionHandler := NewQuestionHandler(quiz, appURL)
	playHandler := NewPlayHandler(quiz, appURL)
	apiHandler := NewAPIHandler(quiz)

	// Pages
	e.GET("/", questionHandler.Browse)
	e.POST("/questions/:id/delete", questionHandler.DeleteQuestion)
	e.GET("/add", questionHandler.AddQuestionPage)
	e.POST("/add", questionHandler.StoreQuestion)
	e.GET("/play", playHandler.PlayPage)
	e.POST("/play", playHandler.Answer)

	// JSON API
	api := e.Group("/api")
	api.GET("/categories", apiHandler.Categories)
	api.GET("/categories/:id/questions", apiHandler.CategoryQuestions)
	api.GET("/questions", apiHandler.Questions)
	api.POST("/questions", apiHandler.CreateOrSearch)
	api.DELETE("/questions/:id", apiHandler.DeleteQuestion)
	api.POST("/quizzes", apiHandler.Quiz)
}
