package models

import (
	"strconv"
	"time"
)

// Question is a single quiz item
type Question struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
	Difficulty int    `gorm:"not null;default:1" json:"difficulty"`

	// Relationships
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

// FormattedQuestion is the API representation of a question
type FormattedQuestion struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Format returns the API shape. Category is the category id as a string,
// empty when the question has none.
func (q Question) Format() FormattedQuestion {
	category := ""
	if q.CategoryID != nil {
		category = strconv.FormatUint(uint64(*q.CategoryID), 10)
	}
	return FormattedQuestion{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   category,
		Difficulty: q.Difficulty,
	}
}

// CategoryName returns the category type, or nil when the question has no
// loaded category
func (q Question) CategoryName() *string {
	if q.Category == nil {
		return nil
	}
	name := q.Category.Type
	return &name
}

// FormatQuestions maps Format over qs
func FormatQuestions(qs []Question) []FormattedQuestion {
	out := make([]FormattedQuestion, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Format())
	}
	return out
}
