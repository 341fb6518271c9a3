// Package models contains the database models backing the corpus store:
// uploaded datasets and their question/response rows.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Dataset status values
const (
	DatasetStatusActive     = "active"
	DatasetStatusProcessing = "processing"
	DatasetStatusError      = "error"
	DatasetStatusDeleted    = "deleted"
)

// Dataset represents one uploaded question/response corpus
type Dataset struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`

	// Tenant identification, used by the engine to suppress
	// self-referential noise terms
	OrgName    string `gorm:"index" json:"org_name"`
	TenantName string `gorm:"index" json:"tenant_name"`

	RowCount  int64      `json:"row_count"`
	Status    string     `gorm:"not null;default:'active'" json:"status"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	Questions []Question `gorm:"foreignKey:DatasetID" json:"questions,omitempty"`
}

// Question represents one question/response row of a dataset
type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DatasetID uuid.UUID `gorm:"type:uuid;not null;index" json:"dataset_id"`

	QuestionText string `gorm:"type:text" json:"question_text"`
	ResponseText string `gorm:"type:text" json:"response_text"`

	OrgName string    `gorm:"index" json:"org_name"`
	UserID  string    `gorm:"index" json:"user_id"`
	AskedAt time.Time `gorm:"index" json:"asked_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Dataset *Dataset `gorm:"foreignKey:DatasetID" json:"dataset,omitempty"`
}

// AllModels returns every model registered for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&Dataset{},
		&Question{},
	}
}
