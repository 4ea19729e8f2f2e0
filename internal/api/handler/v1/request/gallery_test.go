package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRegistrationRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateRegistrationRequest{Exhibition: 1, AttendeesCount: 1}).Validate())
	assert.NoError(t, (&CreateRegistrationRequest{Exhibition: 1, AttendeesCount: 10}).Validate())

	assert.Error(t, (&CreateRegistrationRequest{AttendeesCount: 1}).Validate())
	assert.Error(t, (&CreateRegistrationRequest{Exhibition: 1, AttendeesCount: 0}).Validate())
	assert.Error(t, (&CreateRegistrationRequest{Exhibition: 1, AttendeesCount: 11}).Validate())
}

func TestUpdateRegistrationRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateRegistrationRequest{Status: "APPROVED"}).Validate())
	assert.NoError(t, (&UpdateRegistrationRequest{AttendeesCount: 5}).Validate())
	assert.Error(t, (&UpdateRegistrationRequest{Status: "MAYBE"}).Validate())
	assert.Error(t, (&UpdateRegistrationRequest{AttendeesCount: 11}).Validate())
}

func TestArtistRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ArtistRequest{Name: "Frida Kahlo"}).Validate())
	assert.Error(t, (&ArtistRequest{}).Validate())
}

func TestArtPieceRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ArtPieceRequest{Title: "Roots", Artist: 1, EstimatedValue: 1200}).Validate())

	assert.Error(t, (&ArtPieceRequest{Artist: 1, EstimatedValue: 1200}).Validate())
	assert.Error(t, (&ArtPieceRequest{Title: "Roots", EstimatedValue: 1200}).Validate())
	assert.Error(t, (&ArtPieceRequest{Title: "Roots", Artist: 1, EstimatedValue: 0}).Validate())
	assert.Error(t, (&ArtPieceRequest{Title: "Roots", Artist: 1, EstimatedValue: 1200, Status: "LOST"}).Validate())
}

func TestExhibitionRequest_Validate(t *testing.T) {
	req := ExhibitionRequest{Title: "Surrealists", StartDate: "2026-10-01", EndDate: "2026-10-20"}
	require.NoError(t, req.Validate())

	start, end := req.Dates()
	assert.Equal(t, time.October, start.Month())
	assert.True(t, end.After(start))
}

func TestExhibitionRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  ExhibitionRequest
	}{
		{"missing title", ExhibitionRequest{StartDate: "2026-10-01", EndDate: "2026-10-20"}},
		{"bad start date", ExhibitionRequest{Title: "S", StartDate: "01/10/2026", EndDate: "2026-10-20"}},
		{"end before start", ExhibitionRequest{Title: "S", StartDate: "2026-10-20", EndDate: "2026-10-01"}},
		{"bad status", ExhibitionRequest{Title: "S", StartDate: "2026-10-01", EndDate: "2026-10-20", Status: "SOON"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}
