package domain

type ArtPieceStatus string

const (
	ArtPieceAvailable   ArtPieceStatus = "AVAILABLE"
	ArtPieceDisplayed   ArtPieceStatus = "DISPLAYED"
	ArtPieceUnavailable ArtPieceStatus = "UNAVAILABLE"
)

type ArtPiece struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	ArtistID       uint           `json:"artist"`
	ArtistName     string         `json:"artist_name,omitempty"`
	EstimatedValue float64        `json:"estimated_value"`
	Status         ArtPieceStatus `json:"status"`
}
