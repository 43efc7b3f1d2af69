package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizmaster_app/internal/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := InitDB("sqlite::memory:", config.DB{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newSeededService(t *testing.T) *QuizService {
	t.Helper()

	svc := NewQuizService(newTestDB(t), nil)
	_, err := svc.Seed(context.Background())
	require.NoError(t, err)
	return svc
}

func categoryID(t *testing.T, svc *QuizService, name string) uint {
	t.Helper()

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	for _, c := range categories {
		if c.Type == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not seeded", name)
	return 0
}

func TestDialector(t *testing.T) {
	tests := []struct {
		dsn      string
		expected string
		wantErr  bool
	}{
		{dsn: "postgres://u:p@localhost/quiz", expected: "postgres"},
		{dsn: "postgresql://u:p@localhost/quiz", expected: "postgres"},
		{dsn: "sqlite:trivia.db", expected: "sqlite"},
		{dsn: "sqlite:///trivia.db", expected: "sqlite"},
		{dsn: "sqlite://trivia.db", wantErr: true},
		{dsn: "mysql://localhost/quiz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			d, err := Dialector(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Name())
		})
	}
}

func TestSqlitePath(t *testing.T) {
	tests := []struct {
		dsn      string
		expected string
		wantErr  bool
	}{
		{dsn: "sqlite:trivia.db", expected: "trivia.db"},
		{dsn: "sqlite::memory:", expected: ":memory:"},
		{dsn: "sqlite:/var/lib/quiz/trivia.db", expected: "/var/lib/quiz/trivia.db"},
		{dsn: "sqlite:///trivia.db", expected: "trivia.db"},
		{dsn: "sqlite:///data/trivia.db", expected: "data/trivia.db"},
		{dsn: "sqlite:////var/lib/quiz/trivia.db", expected: "/var/lib/quiz/trivia.db"},
		{dsn: "sqlite://", expected: ":memory:"},
		{dsn: "sqlite://trivia.db", wantErr: true},
		{dsn: "sqlite:///", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			path, err := sqlitePath(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestSeed_Idempotent(t *testing.T) {
	svc := NewQuizService(newTestDB(t), nil)
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Categories: 6, Questions: 6}, first)

	second, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, second)

	categories, err := svc.CategoryMap(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
}

func TestListQuestions_Pagination(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()
	science := categoryID(t, svc, "Science")

	for i := 0; i < 10; i++ {
		_, err := svc.CreateQuestion(ctx, NewQuestion{
			Question:   fmt.Sprintf("Extra question %d?", i),
			Answer:     "yes",
			CategoryID: science,
			Difficulty: 1,
		})
		require.NoError(t, err)
	}

	page1, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Questions, QuestionsPerPage)
	assert.EqualValues(t, 16, page1.Total)
	assert.True(t, page1.HasNext())
	require.NotNil(t, page1.Questions[0].Category)

	page2, err := svc.ListQuestions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Questions, 6)
	assert.False(t, page2.HasNext())

	_, err = svc.ListQuestions(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	page0, err := svc.ListQuestions(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page0.Page)
}

func TestQuestionsByCategory(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()

	questions, err := svc.QuestionsByCategory(ctx, categoryID(t, svc, "History"))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "1945", questions[0].Answer)

	_, err = svc.QuestionsByCategory(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch(t *testing.T) {
	svc := newSeededService(t)

	questions, err := svc.Search(context.Background(), "CAPITAL")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Paris", questions[0].Answer)

	questions, err = svc.Search(context.Background(), "no such phrase")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestCreateQuestion_Validation(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()
	art := categoryID(t, svc, "Art")

	tests := []struct {
		name string
		in   NewQuestion
	}{
		{name: "missing question", in: NewQuestion{Answer: "a", CategoryID: art, Difficulty: 1}},
		{name: "blank answer", in: NewQuestion{Question: "q", Answer: "   ", CategoryID: art, Difficulty: 1}},
		{name: "missing category", in: NewQuestion{Question: "q", Answer: "a", Difficulty: 1}},
		{name: "difficulty too high", in: NewQuestion{Question: "q", Answer: "a", CategoryID: art, Difficulty: 6}},
		{name: "unknown category", in: NewQuestion{Question: "q", Answer: "a", CategoryID: 999, Difficulty: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateQuestion(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateAndDeleteQuestion(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, NewQuestion{
		Question:   "  What is H2O?  ",
		Answer:     "Water",
		CategoryID: categoryID(t, svc, "Science"),
		Difficulty: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, q.ID)
	assert.Equal(t, "What is H2O?", q.Question)

	loaded, err := svc.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science", loaded.Category.Type)

	require.NoError(t, svc.DeleteQuestion(ctx, q.ID))
	assert.ErrorIs(t, svc.DeleteQuestion(ctx, q.ID), ErrNotFound)

	_, err = svc.GetQuestion(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextQuizQuestion(t *testing.T) {
	svc := newSeededService(t)
	svc.pick = func(int) int { return 0 }
	ctx := context.Background()

	var seen []uint
	for i := 0; i < 6; i++ {
		q, err := svc.NextQuizQuestion(ctx, seen, 0)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.NotContains(t, seen, q.ID)
		seen = append(seen, q.ID)
	}

	q, err := svc.NextQuizQuestion(ctx, seen, 0)
	require.NoError(t, err)
	assert.Nil(t, q)

	sports := categoryID(t, svc, "Sports")
	q, err = svc.NextQuizQuestion(ctx, nil, sports)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, sports, *q.CategoryID)

	q, err = svc.NextQuizQuestion(ctx, []uint{q.ID}, sports)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestRefreshCategoryCache_WithoutCache(t *testing.T) {
	svc := newSeededService(t)

	n, err := svc.RefreshCategoryCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestGetOrSet_NilCache(t *testing.T) {
	calls := 0
	v, err := GetOrSet[int](nil, context.Background(), "k", 0, func() (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}
