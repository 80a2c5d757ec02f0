package minutesdto

import (
	"time"

	"github.com/google/uuid"
)

type Payload struct {
	MeetingID  uuid.UUID  `json:"meetingId" validate:"required"`
	Body       string     `json:"body" validate:"required,max=50000"`
	ApprovedAt *time.Time `json:"approvedAt"`
}
