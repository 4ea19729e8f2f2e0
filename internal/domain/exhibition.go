package domain

import "time"

type ExhibitionStatus string

const (
	ExhibitionUpcoming  ExhibitionStatus = "UPCOMING"
	ExhibitionOngoing   ExhibitionStatus = "ONGOING"
	ExhibitionCompleted ExhibitionStatus = "COMPLETED"
)

type Exhibition struct {
	ID        uint             `json:"id"`
	Title     string           `json:"title"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Status    ExhibitionStatus `json:"status"`
	ArtPieces []ArtPiece       `json:"art_pieces,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ExhibitionDetail is the detail view with registration counters.
type ExhibitionDetail struct {
	Exhibition
	RegistrationsCount         int `json:"registrations_count"`
	PendingRegistrationsCount  int `json:"pending_registrations_count"`
	ApprovedRegistrationsCount int `json:"confirmed_registrations_count"`
}

// SetupStatus tracks the physical installation lifecycle of an exhibition.
// teardown_confirmed implies setup_confirmed; the transition functions in
// the service layer enforce this.
type SetupStatus struct {
	ID                uint      `json:"id"`
	ExhibitionID      uint      `json:"exhibition"`
	ClerkID           uint      `json:"clerk"`
	SetupConfirmed    bool      `json:"setup_confirmed"`
	TeardownConfirmed bool      `json:"teardown_confirmed"`
	Timestamp         time.Time `json:"timestamp"`
}
