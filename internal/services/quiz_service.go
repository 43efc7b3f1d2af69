package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"quizmaster_app/internal/models"
)

// QuestionsPerPage is the browse page size
const QuestionsPerPage = 10

const (
	categoriesCacheKey = "quiz:categories"
	categoriesCacheTTL = time.Hour
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// QuestionPage is one page of the ordered question list
type QuestionPage struct {
	Page      int
	Questions []models.Question
	Total     int64
}

// HasNext reports whether another page follows this one
func (p QuestionPage) HasNext() bool {
	return int64(p.Page*QuestionsPerPage) < p.Total
}

// NewQuestion is the input for CreateQuestion
type NewQuestion struct {
	Question   string `json:"question" form:"question" validate:"required"`
	Answer     string `json:"answer" form:"answer" validate:"required"`
	CategoryID uint   `json:"category" form:"category" validate:"required"`
	Difficulty int    `json:"difficulty" form:"difficulty" validate:"required,min=1,max=5"`
}

// QuizService owns questions and categories
type QuizService struct {
	db       *gorm.DB
	cache    *RedisCache
	validate *validator.Validate
	pick     func(n int) int
}

// NewQuizService creates a QuizService. cache may be nil.
func NewQuizService(db *gorm.DB, cache *RedisCache) *QuizService {
	return &QuizService{
		db:       db,
		cache:    cache,
		validate: validator.New(),
		pick:     rand.IntN,
	}
}

// Categories returns every category ordered by id. An empty list is not
// cached so categories added later show up without a refresh.
func (s *QuizService) Categories(ctx context.Context) ([]models.Category, error) {
	return GetOrSetWhen(s.cache, ctx, categoriesCacheKey, categoriesCacheTTL, func() ([]models.Category, error) {
		var categories []models.Category
		if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
			return nil, fmt.Errorf("fetch categories: %w", err)
		}
		return categories, nil
	}, nonEmpty[models.Category])
}

func nonEmpty[T any](s []T) bool { return len(s) > 0 }

// CategoryMap returns category types keyed by id
func (s *QuizService) CategoryMap(ctx context.Context) (map[uint]string, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out, nil
}

// RefreshCategoryCache drops the cached category list and loads it again
func (s *QuizService) RefreshCategoryCache(ctx context.Context) (int, error) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, categoriesCacheKey); err != nil {
			return 0, fmt.Errorf("drop category cache: %w", err)
		}
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return 0, err
	}
	return len(categories), nil
}

// GetQuestion loads a question with its category
func (s *QuizService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	err := s.db.WithContext(ctx).Preload("Category").First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch question %d: %w", id, err)
	}
	return &q, nil
}

// ListQuestions returns page (1-based) of all questions ordered by id. Pages
// below 1 are treated as 1. An empty page is ErrNotFound; the returned page
// still carries Total.
func (s *QuizService) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.CountQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	var questions []models.Question
	err = s.db.WithContext(ctx).Preload("Category").
		Order("id").
		Offset((page - 1) * QuestionsPerPage).
		Limit(QuestionsPerPage).
		Find(&questions).Error
	if err != nil {
		return QuestionPage{}, fmt.Errorf("fetch questions: %w", err)
	}
	if len(questions) == 0 {
		return QuestionPage{Page: page, Total: total}, fmt.Errorf("page %d: %w", page, ErrNotFound)
	}

	return QuestionPage{Page: page, Questions: questions, Total: total}, nil
}

// CountQuestions returns the number of stored questions
func (s *QuizService) CountQuestions(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Question{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return total, nil
}

// QuestionsByCategory returns every question in a category
func (s *QuizService) QuestionsByCategory(ctx context.Context, categoryID uint) ([]models.Question, error) {
	db := s.db.WithContext(ctx)

	var category models.Category
	err := db.First(&category, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch category %d: %w", categoryID, err)
	}

	var questions []models.Question
	if err := db.Preload("Category").Where("category_id = ?", categoryID).Order("id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("fetch questions for category %d: %w", categoryID, err)
	}
	return questions, nil
}

// Search returns questions whose text contains term, ignoring case
func (s *QuizService) Search(ctx context.Context, term string) ([]models.Question, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var questions []models.Question
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("LOWER(question) LIKE ?", pattern).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return questions, nil
}

// CreateQuestion validates and stores a new question
func (s *QuizService) CreateQuestion(ctx context.Context, in NewQuestion) (*models.Question, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	db := s.db.WithContext(ctx)

	var category models.Category
	err := db.First(&category, in.CategoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: category %d does not exist", ErrInvalidInput, in.CategoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch category %d: %w", in.CategoryID, err)
	}

	q := models.Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Difficulty: in.Difficulty,
		CategoryID: &category.ID,
		Category:   &category,
	}
	if err := db.Omit("Category").Create(&q).Error; err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &q, nil
}

// DeleteQuestion removes a question
func (s *QuizService) DeleteQuestion(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Question{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete question %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return nil
}

// NextQuizQuestion returns a random question not in previous, limited to
// categoryID unless it is 0. It returns nil when no question is left.
func (s *QuizService) NextQuizQuestion(ctx context.Context, previous []uint, categoryID uint) (*models.Question, error) {
	query := s.db.WithContext(ctx).Model(&models.Question{})
	if len(previous) > 0 {
		query = query.Where("id NOT IN ?", previous)
	}
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var ids []uint
	if err := query.Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("fetch quiz candidates: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return s.GetQuestion(ctx, ids[s.pick(len(ids))])
}
