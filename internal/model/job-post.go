package model

import (
	"time"

	"github.com/google/uuid"
)

// Job document fields read by the server. Every other posted field is stored as-is.
const (
	FieldHREmail        = "hr_email"
	FieldCompany        = "company"
	FieldTitle          = "title"
	FieldCompanyLogo    = "company_logo"
	FieldReferralSource = "referralSource"

	// FieldApplicationCount is added to recruiter job listings
	FieldApplicationCount = "application_count"
)

// EnrichedJobFields are copied from a job onto each of its applications
var EnrichedJobFields = []string{
	FieldCompany,
	FieldTitle,
	FieldCompanyLogo,
	FieldReferralSource,
}

// JobRecord is gorm model for storing a job document in the jobs table
type JobRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Seq       int64     `gorm:"type:bigserial;not null;index;<-:false"`
	Doc       Document  `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
}

// TableName pin the jobs collection name
func (JobRecord) TableName() string {
	return "jobs"
}

// Document returns the stored document with its id attached
func (r JobRecord) Document() Document {
	return r.Doc.WithID(r.ID.String())
}
