package meals

import (
	"time"

	"github.com/google/uuid"
)

// LatestSubmission is the most recent selection set a student submitted.
// It lives in the keyed submission store, not in the database.
type LatestSubmission struct {
	StudentID   uuid.UUID           `json:"student_id"`
	Day         string              `json:"day"`
	Meals       map[string][]string `json:"meals"`
	SubmittedAt time.Time           `json:"submitted_at"`
}
