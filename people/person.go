/*
person.go - Personnel record model

PURPOSE:
  Defines the Person record tracked by the system, its validation rules,
  and the partial-update merge used by the store Update operation.

FIELD SEMANTICS:
  ID        Assigned by the store on Add; immutable.
  Name      Required display name.
  Alias     Optional preferred name; when set it replaces Name in all
            generated text.
  Email     Required; unique across records (store-enforced); the
            notification destination.
  Birthday  Anchor whose year is the birth year, not a recurrence year.
  StartDate Anchor whose year IS significant: basis of years of service.
  Interests Ordered free-text tags. First tag is "primary" for card
            personalization. Duplicates allowed; order preserved.

SEE ALSO:
  - store.go: Persistence contract
  - errors.go: Validation and store error types
*/
package people

import (
	"time"

	"github.com/warp/office-cheer/calendar"
)

// =============================================================================
// PERSON
// =============================================================================

type Person struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Alias     string        `json:"alias,omitempty"`
	Email     string        `json:"email"`
	Birthday  calendar.Date `json:"birthday"`
	StartDate calendar.Date `json:"start_date"`
	Interests []string      `json:"interests,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// DisplayName returns the alias when set, otherwise the full name.
func (p Person) DisplayName() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// PrimaryInterest returns the first interest tag, or "" when none exist.
func (p Person) PrimaryInterest() string {
	if len(p.Interests) == 0 {
		return ""
	}
	return p.Interests[0]
}

// Validate checks required fields. Returns a *ValidationError naming the
// first offending field.
func (p Person) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if p.Birthday.IsZero() {
		return &ValidationError{Field: "birthday", Reason: "required, expected YYYY-MM-DD"}
	}
	if p.StartDate.IsZero() {
		return &ValidationError{Field: "start_date", Reason: "required, expected YYYY-MM-DD"}
	}
	return nil
}

// =============================================================================
// PARTIAL UPDATE
// =============================================================================

// Update carries a partial-field update. Nil fields are left untouched.
// A present-but-empty Alias or Interests explicitly clears the field.
type Update struct {
	Name      *string
	Alias     *string
	Email     *string
	Birthday  *calendar.Date
	StartDate *calendar.Date
	Interests *[]string
}

// Apply merges the update into a copy of p and validates the result.
// The record's ID and CreatedAt are never touched.
func (u Update) Apply(p Person) (Person, error) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Alias != nil {
		p.Alias = *u.Alias
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Birthday != nil {
		p.Birthday = *u.Birthday
	}
	if u.StartDate != nil {
		p.StartDate = *u.StartDate
	}
	if u.Interests != nil {
		p.Interests = append([]string(nil), (*u.Interests)...)
	}
	if err := p.Validate(); err != nil {
		return Person{}, err
	}
	return p, nil
}

// IsEmpty reports whether the update would change nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Alias == nil && u.Email == nil &&
		u.Birthday == nil && u.StartDate == nil && u.Interests == nil
}
