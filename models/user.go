package models

type User struct {
	Audit
	Username     string `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"size:254"`
	PasswordHash string `json:"-" gorm:"not null"`

	// Relationships
	Snippets []Snippet `json:"snippets,omitempty" gorm:"foreignKey:OwnerID"`
}
