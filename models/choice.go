package models

type Choice struct {
	Audit
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	ChoiceText string `json:"choice_text" gorm:"size:200;not null"`
	Votes      int    `json:"votes" gorm:"not null;default:0"`

	// Relationships
	Question Question `json:"question,omitempty"`
	Answers  []Answer `json:"answers,omitempty" gorm:"foreignKey:ChoiceID;constraint:OnDelete:CASCADE"`
}
