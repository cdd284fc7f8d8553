package model

import (
	"time"

	"github.com/google/uuid"
)

// Application document fields read by the server
const (
	FieldApplicantEmail = "applicantEmail"
	FieldJobID          = "jobId"
	FieldStatus         = "status"
)

// ApplicationRecord is gorm model for storing an application document in the applications table.
// The job reference lives in Doc under FieldJobID as a string.
type ApplicationRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Seq       int64     `gorm:"type:bigserial;not null;index;<-:false"`
	Doc       Document  `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
}

// TableName pin the applications collection name
func (ApplicationRecord) TableName() string {
	return "applications"
}

// Document returns the stored document with its id attached
func (r ApplicationRecord) Document() Document {
	return r.Doc.WithID(r.ID.String())
}

// StatusUpdate is the body accepted when changing an application status
type StatusUpdate struct {
	Status string `json:"status" binding:"required"`
}
