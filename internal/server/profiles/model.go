// Package profiles stores the role-specific directory attributes shown in
// listings: engineer and organization profiles, keyed by username. A profile
// row is written during registration, before the account is approved, so
// rows may exist for usernames that are still pending.
package profiles

// MaxExperienceYears caps the engineer experience field at input time.
const MaxExperienceYears = 60

// Engineer is one row of engineers.txt:
// `username|specialization|experienceYears|educationYears|skills`.
type Engineer struct {
	Username       string
	Specialization string
	Experience     int
	Education      int
	Skills         string
}

// Organization is one row of organizations.txt:
// `username|orgName|industry|description`.
type Organization struct {
	Username    string
	Name        string
	Industry    string
	Description string
}
