package tasks

import (
	"context"

	"quizmaster_app/internal/models"
	"quizmaster_app/internal/services"
)

const (
	TaskSeedSampleData       = "seed_sample_data"
	TaskRefreshCategoryCache = "refresh_category_cache"
)

// RegisterQuizTasks registers the quiz maintenance tasks
func RegisterQuizTasks(r *Registry, quiz *services.QuizService) {
	r.Register(TaskSeedSampleData, func(ctx context.Context, _ models.TaskArgs) (models.TaskArgs, error) {
		res, err := quiz.Seed(ctx)
		if err != nil {
			return nil, err
		}
		return models.TaskArgs{"categories": res.Categories, "questions": res.Questions}, nil
	})

	r.Register(TaskRefreshCategoryCache, func(ctx context.Context, _ models.TaskArgs) (models.TaskArgs, error) {
		n, err := quiz.RefreshCategoryCache(ctx)
		if err != nil {
			return nil, err
		}
		return models.TaskArgs{"categories": n}, nil
	})
}
