package models

import "time"

type Question struct {
	Audit
	QuestionText string    `json:"question_text" gorm:"size:200;not null"`
	PubDate      time.Time `json:"pub_date"`

	// Relationships
	Choices []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
