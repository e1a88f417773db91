/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain model.
  Dates travel as ISO-8601 strings and are validated in the handlers with
  errors naming the offending field.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/office-cheer/events"
	"github.com/warp/office-cheer/notify"
	"github.com/warp/office-cheer/people"
)

// =============================================================================
// PERSONNEL
// =============================================================================

// PersonDTO represents a personnel record in API responses.
type PersonDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Alias     string   `json:"alias,omitempty"`
	Email     string   `json:"email"`
	Birthday  string   `json:"birthday"`
	StartDate string   `json:"start_date"`
	Interests []string `json:"interests,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

func toPersonDTO(p people.Person) PersonDTO {
	return PersonDTO{
		ID:        p.ID,
		Name:      p.Name,
		Alias:     p.Alias,
		Email:     p.Email,
		Birthday:  p.Birthday.String(),
		StartDate: p.StartDate.String(),
		Interests: p.Interests,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// CreatePersonRequest is the request to create a record.
type CreatePersonRequest struct {
	Name      string   `json:"name"`
	Alias     string   `json:"alias,omitempty"`
	Email     string   `json:"email"`
	Birthday  string   `json:"birthday"`
	StartDate string   `json:"start_date"`
	Interests []string `json:"interests,omitempty"`
}

// UpdatePersonRequest is a partial update; absent fields are untouched,
// present-but-empty alias/interests clear the field.
type UpdatePersonRequest struct {
	Name      *string   `json:"name,omitempty"`
	Alias     *string   `json:"alias,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Birthday  *string   `json:"birthday,omitempty"`
	StartDate *string   `json:"start_date,omitempty"`
	Interests *[]string `json:"interests,omitempty"`
}

// =============================================================================
// EVENTS
// =============================================================================

// UpcomingBirthdayDTO pairs a record with its countdown.
type UpcomingBirthdayDTO struct {
	Person   PersonDTO `json:"person"`
	DaysAway int       `json:"days_away"`
}

// UpcomingAnniversaryDTO pairs a record with its countdown and milestone.
type UpcomingAnniversaryDTO struct {
	Person   PersonDTO `json:"person"`
	Years    int       `json:"years"`
	DaysAway int       `json:"days_away"`
}

// TodayDTO groups same-day events.
type TodayDTO struct {
	Birthdays     []PersonDTO              `json:"birthdays"`
	Anniversaries []UpcomingAnniversaryDTO `json:"anniversaries"`
}

func toAnniversaryDTO(a events.Anniversary, daysAway int) UpcomingAnniversaryDTO {
	return UpcomingAnniversaryDTO{
		Person:   toPersonDTO(a.Person),
		Years:    a.Years,
		DaysAway: daysAway,
	}
}

// =============================================================================
// PROCESSING
// =============================================================================

// OutcomeDTO reports one processed notification.
type OutcomeDTO struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Event    string `json:"event"`
	Years    int    `json:"years,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// CheckResponse summarizes a processing run.
type CheckResponse struct {
	DryRun   bool         `json:"dry_run"`
	Sent     int          `json:"sent"`
	Failed   int          `json:"failed"`
	Outcomes []OutcomeDTO `json:"outcomes"`
}

func toCheckResponse(outcomes []notify.Outcome, dryRun bool) CheckResponse {
	resp := CheckResponse{DryRun: dryRun, Outcomes: make([]OutcomeDTO, 0, len(outcomes))}
	for _, out := range outcomes {
		dto := OutcomeDTO{
			PersonID: out.Person.ID,
			Name:     out.Person.Name,
			Email:    out.Person.Email,
			Event:    out.Event,
			Years:    out.Years,
			Status:   string(out.Status),
		}
		if out.Err != nil {
			dto.Error = out.Err.Error()
		}
		if out.Status == notify.StatusSent {
			resp.Sent++
		} else {
			resp.Failed++
		}
		resp.Outcomes = append(resp.Outcomes, dto)
	}
	return resp
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
