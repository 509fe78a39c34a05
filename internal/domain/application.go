package domain

import "time"

// Application is one candidate's request to be considered for a posting.
// It is written once to the sink and never read back by this service.
type Application struct {
	ID        string    `json:"id,omitempty"`
	JobID     string    `json:"job_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
