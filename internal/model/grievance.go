package model

import "time"

// Grievance status values.
const (
	GrievanceOpen     = "OPEN"
	GrievanceResolved = "RESOLVED"
)

// Grievance is a complaint filed by a member.  Managers resolve
// grievances and may attach a resolution note.
type Grievance struct {
	ID          uint64     `json:"id"`          // grievances.id
	MemberID    uint64     `json:"member_id"`   // grievances.member_id
	Subject     string     `json:"subject"`     // grievances.subject
	Description string     `json:"description"` // grievances.description
	Status      string     `json:"status"`      // grievances.status
	Resolution  *string    `json:"resolution"`  // grievances.resolution (nullable)
	ResolvedAt  *time.Time `json:"resolved_at"` // grievances.resolved_at (nullable)
	CreatedAt   time.Time  `json:"created_at"`  // grievances.created_at
}
