package response

import "artgallery-api/internal/domain"

type QueueStatusResponse struct {
	PendingRegistrations []domain.QueueEntry `json:"pending_registrations"`
	TotalInQueue         int                 `json:"total_in_queue"`
}

type ReviewResponse struct {
	Message        string `json:"message"`
	RegistrationID uint   `json:"registration_id"`
	Visitor        string `json:"visitor"`
	Exhibition     string `json:"exhibition"`
	Reason         string `json:"reason,omitempty"`
}

type ArtistDetailResponse struct {
	domain.Artist
	ArtPieces []domain.ArtPiece `json:"art_pieces"`
}
