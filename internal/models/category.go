package models

// Category groups questions, e.g. "Science" or "History"
type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Type string `gorm:"type:varchar(100);uniqueIndex" json:"type"`
}

// TableName pins the table name used by the sample data
func (Category) TableName() string {
	return "categories"
}
