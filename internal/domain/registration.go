package domain

import (
	"sort"
	"strings"
	"time"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "PENDING"
	RegistrationApproved  RegistrationStatus = "APPROVED"
	RegistrationRejected  RegistrationStatus = "REJECTED"
	RegistrationCancelled RegistrationStatus = "CANCELLED"
)

// Active reports whether a registration still occupies the
// (visitor, exhibition) slot. Only one active registration per pair may
// exist at a time.
func (s RegistrationStatus) Active() bool {
	return s == RegistrationPending || s == RegistrationApproved
}

// Terminal registrations never change status again.
func (s RegistrationStatus) Terminal() bool {
	return s == RegistrationRejected || s == RegistrationCancelled
}

// Visitor is the profile a registration points at. It is created on
// demand from the authenticated user's account the first time they
// register, keyed by email.
type Visitor struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Registration struct {
	ID               uint               `json:"id"`
	VisitorID        uint               `json:"visitor"`
	VisitorName      string             `json:"visitor_name"`
	VisitorEmail     string             `json:"visitor_email"`
	ExhibitionID     uint               `json:"exhibition"`
	ExhibitionTitle  string             `json:"exhibition_title"`
	ExhibitionStatus ExhibitionStatus   `json:"exhibition_status"`
	AttendeesCount   int                `json:"attendees_count"`
	Status           RegistrationStatus `json:"status"`
	// Confirmed mirrors Status == APPROVED for older records that predate
	// the status column.
	Confirmed       bool       `json:"confirmed"`
	QueuePosition   *int       `json:"queue_position,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedByID    *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
}

// SortByQueuePosition orders registrations ascending by queue position,
// registrations without one after all that have one. The sort is stable.
func SortByQueuePosition(regs []Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		pi, pj := regs[i].QueuePosition, regs[j].QueuePosition
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})
}

// FilterByStatus returns the registrations whose status equals s,
// preserving order. It never mutates the input.
func FilterByStatus(regs []Registration, s RegistrationStatus) []Registration {
	var out []Registration
	for _, r := range regs {
		if r.Status == s {
			out = append(out, r)
		}
	}
	return out
}

// FilterByExhibition returns the registrations for an exhibition,
// preserving order.
func FilterByExhibition(regs []Registration, exhibitionID uint) []Registration {
	var out []Registration
	for _, r := range regs {
		if r.ExhibitionID == exhibitionID {
			out = append(out, r)
		}
	}
	return out
}

// SearchRegistrations returns the registrations matching the query on
// visitor name, visitor email or exhibition title, case-insensitively.
// An empty query matches everything.
func SearchRegistrations(regs []Registration, query string) []Registration {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return regs
	}
	var out []Registration
	for _, r := range regs {
		if strings.Contains(strings.ToLower(r.VisitorName), q) ||
			strings.Contains(strings.ToLower(r.VisitorEmail), q) ||
			strings.Contains(strings.ToLower(r.ExhibitionTitle), q) {
			out = append(out, r)
		}
	}
	return out
}

// QueueEntry is one pending registration in a visitor's queue summary.
type QueueEntry struct {
	RegistrationID  uint      `json:"registration_id"`
	ExhibitionTitle string    `json:"exhibition_title"`
	QueuePosition   *int      `json:"queue_position"`
	SubmittedAt     time.Time `json:"submitted_at"`
	EstimatedWait   string    `json:"estimated_wait"`
	AttendeesCount  int       `json:"attendees_count"`
}
