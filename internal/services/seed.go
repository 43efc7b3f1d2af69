package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"quizmaster_app/internal/models"
)

type sampleQuestion struct {
	question   string
	answer     string
	category   string
	difficulty int
}

var sampleCategories = []string{
	"Science",
	"Art",
	"Geography",
	"History",
	"Entertainment",
	"Sports",
}

var sampleQuestions = []sampleQuestion{
	{"What is the largest planet in our solar system?", "Jupiter", "Science", 2},
	{"Who painted the Mona Lisa?", "Leonardo da Vinci", "Art", 1},
	{"What is the capital of France?", "Paris", "Geography", 1},
	{"In which year did World War II end?", "1945", "History", 2},
	{"Who directed the movie Titanic?", "James Cameron", "Entertainment", 2},
	{"Which country won the FIFA World Cup in 2018?", "France", "Sports", 2},
}

// SeedResult reports what Seed inserted
type SeedResult struct {
	Categories int
	Questions  int
}

// Seed inserts the sample categories and questions. It does nothing when
// any category already exists.
func (s *QuizService) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Category{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		ids := make(map[string]uint, len(sampleCategories))
		for _, name := range sampleCategories {
			c := models.Category{Type: name}
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("insert category %q: %w", name, err)
			}
			ids[name] = c.ID
			result.Categories++
		}

		for _, sq := range sampleQuestions {
			categoryID := ids[sq.category]
			q := models.Question{
				Question:   sq.question,
				Answer:     sq.answer,
				Difficulty: sq.difficulty,
				CategoryID: &categoryID,
			}
			if err := tx.Create(&q).Error; err != nil {
				return fmt.Errorf("insert question %q: %w", sq.question, err)
			}
			result.Questions++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed sample data: %w", err)
	}

	if result.Categories > 0 && s.cache != nil {
		_ = s.cache.Delete(ctx, categoriesCacheKey)
	}
	return result, nil
}
