package models

type Snippet struct {
	Audit
	OwnerID      uint            `json:"owner_id" gorm:"not null;index"`
	Title        string          `json:"title" gorm:"size:100;not null;default:''"`
	Code         string          `json:"code" gorm:"type:text;not null"`
	Linenos      bool            `json:"linenos" gorm:"not null;default:false"`
	Language     string          `json:"language" gorm:"size:100;not null;default:'python'"`
	Style        string          `json:"style" gorm:"size:100;not null;default:'friendly'"`
	Price        int             `json:"price" gorm:"not null;default:0"`
	Highlighted  string          `json:"highlighted" gorm:"type:text"`
	ContactEmail EncryptedString `json:"contact_email" gorm:"type:text"`
	Results      EncryptedString `json:"results" gorm:"type:text"`

	// Relationships
	Owner User `json:"owner,omitempty"`
}
