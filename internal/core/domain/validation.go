package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	MaxNameLength     = 100
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// NormalizeEmail lower-cases and trims an address so lookups and the unique
// index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the account rules for a new user. Company is
// required only for employers.
func ValidateRegistration(name, email, password, role, company string) error {
	ve := &ValidationError{}

	switch name = strings.TrimSpace(name); {
	case name == "":
		ve.Add("name", "Name is required")
	case utf8.RuneCountInString(name) > MaxNameLength:
		ve.Add("name", fmt.Sprintf("Name cannot be more than %d characters", MaxNameLength))
	}
	if !emailPattern.MatchString(email) {
		ve.Add("email", "Please add a valid email")
	}
	if len(password) < MinPasswordLength {
		ve.Add("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if !IsValidRole(role) {
		ve.Add("role", "Role must be one of: jobseeker, employer, admin")
	}
	if role == RoleEmployer && strings.TrimSpace(company) == "" {
		ve.Add("company", "Company name is required for employers")
	}

	return ve.Err()
}

// ValidatePassword checks a replacement password.
func ValidatePassword(password string) error {
	ve := &ValidationError{}
	if len(password) < MinPasswordLength {
		ve.Add("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	return ve.Err()
}

// Validate checks a job after defaults have been applied.
func (j *Job) Validate() error {
	ve := &ValidationError{}

	if j.Title == "" {
		ve.Add("title", "Job title is required")
	}
	if strings.TrimSpace(j.Description) == "" {
		ve.Add("description", "Job description is required")
	}
	if j.Company == "" {
		ve.Add("company", "Company name is required")
	}
	if j.Location == "" {
		ve.Add("location", "Job location is required")
	}
	if !j.JobType.IsValid() {
		ve.Add("jobType", fmt.Sprintf("`%s` is not a valid job type", j.JobType))
	}
	if j.Salary == "" {
		ve.Add("salary", "Salary range is required")
	}
	if !j.Status.IsValid() {
		ve.Add("status", fmt.Sprintf("`%s` is not a valid status", j.Status))
	}
	if j.PostedBy == "" {
		ve.Add("postedBy", "Job owner is required")
	}

	return ve.Err()
}
