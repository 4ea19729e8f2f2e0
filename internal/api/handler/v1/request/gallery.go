package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"artgallery-api/internal/domain"
)

const dateLayout = "2006-01-02"

var errEndBeforeStart = errors.New("end_date must not be before start_date")

type ArtistRequest struct {
	Name        string `json:"name"`
	Bio         string `json:"bio,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
}

func (req *ArtistRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	)
}

type ArtPieceRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Artist         uint    `json:"artist"`
	EstimatedValue float64 `json:"estimated_value"`
	Status         string  `json:"status,omitempty"`
}

func (req *ArtPieceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Artist, validation.Required),
		validation.Field(&req.EstimatedValue, validation.Min(0.01)),
		validation.Field(&req.Status, validation.In(
			string(domain.ArtPieceAvailable),
			string(domain.ArtPieceDisplayed),
			string(domain.ArtPieceUnavailable),
		)),
	)
}

type ExhibitionRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status,omitempty"`
}

func (req *ExhibitionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.StartDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.EndDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.Status, validation.In(
			string(domain.ExhibitionUpcoming),
			string(domain.ExhibitionOngoing),
			string(domain.ExhibitionCompleted),
		)),
	)
	if err != nil {
		return err
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	if end.Before(start) {
		return errEndBeforeStart
	}

	return nil
}

// Dates returns the parsed start and end dates. Call only after Validate.
func (req *ExhibitionRequest) Dates() (time.Time, time.Time) {
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	return start, end
}

type AssignArtPieceRequest struct {
	ArtPiece uint `json:"artpiece"`
}

func (req *AssignArtPieceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ArtPiece, validation.Required),
	)
}
