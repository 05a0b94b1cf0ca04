package models

type Answer struct {
	Audit
	ChoiceID uint    `json:"choice_id" gorm:"not null;index"`
	Answer   *string `json:"answer" gorm:"size:4096"`

	// Relationships
	Choice Choice `json:"choice,omitempty"`
}
