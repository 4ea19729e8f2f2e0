package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"artgallery-api/internal/domain"
)

type CreateRegistrationRequest struct {
	Exhibition     uint `json:"exhibition"`
	AttendeesCount int  `json:"attendees_count"`
}

func (req *CreateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Exhibition, validation.Required),
		validation.Field(&req.AttendeesCount, validation.Required, validation.Min(1), validation.Max(10)),
	)
}

type RejectRegistrationRequest struct {
	Reason string `json:"reason"`
}

func (req *RejectRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

type UpdateRegistrationRequest struct {
	Status          string `json:"status,omitempty"`
	AttendeesCount  int    `json:"attendees_count,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func (req *UpdateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In(
			string(domain.RegistrationPending),
			string(domain.RegistrationApproved),
			string(domain.RegistrationRejected),
			string(domain.RegistrationCancelled),
		)),
		validation.Field(&req.AttendeesCount, validation.Min(0), validation.Max(10)),
		validation.Field(&req.RejectionReason, validation.Length(0, 500)),
	)
}
