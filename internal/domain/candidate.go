package domain

import (
	"regexp"
	"time"
)

// Candidate represents one applicant inside a hiring process. A candidate
// always sits at exactly one stage of its process pipeline.
type Candidate struct {
	ID        string `json:"id" db:"id"`
	ProcessID string `json:"process_id" db:"process_id"`
	StageID   string `json:"stage_id" db:"stage_id"`

	Name        string `json:"name" db:"name"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	Description string `json:"description" db:"description"`
	Source      string `json:"source" db:"source"`

	SalaryExpectation string  `json:"salary_expectation" db:"salary_expectation"`
	AgreedSalary      string  `json:"agreed_salary" db:"agreed_salary"`
	Age               *int    `json:"age" db:"age"`
	DNI               string  `json:"dni" db:"dni"`
	LinkedInURL       string  `json:"linkedin_url" db:"linkedin_url"`
	Address           string  `json:"address" db:"address"`
	Province          *string `json:"province" db:"province"`
	District          *string `json:"district" db:"district"`

	Attachments []string `json:"attachments" db:"attachments"`

	HiredAt   *time.Time `json:"hired_at" db:"hired_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the shape the product accepts for
// candidate email addresses. Shared by the import validator and the
// candidate service so both reject the same inputs.
func ValidEmail(s string) bool {
	return emailRx.MatchString(s)
}
