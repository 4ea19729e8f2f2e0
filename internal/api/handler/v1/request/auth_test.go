package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	req := validSignup()
	assert.NoError(t, req.Validate())
}

func TestSignupRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupRequest)
	}{
		{"missing username", func(r *SignupRequest) { r.Username = "" }},
		{"username too short", func(r *SignupRequest) { r.Username = "ab" }},
		{"invalid email", func(r *SignupRequest) { r.Email = "not-an-email" }},
		{"missing password", func(r *SignupRequest) { r.Password = ""; r.ConfirmPassword = "" }},
		{"password too short", func(r *SignupRequest) { r.Password = "pass1"; r.ConfirmPassword = "pass1" }},
		{"password without digit", func(r *SignupRequest) { r.Password = "passwords"; r.ConfirmPassword = "passwords" }},
		{"password without letter", func(r *SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }},
		{"confirm mismatch", func(r *SignupRequest) { r.ConfirmPassword = "password2" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "alice@example.com", Password: "password1"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "password1"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "alice@example.com", Password: ""}).Validate())
}

func TestRefreshRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RefreshRequest{Refresh: "token"}).Validate())
	assert.Error(t, (&RefreshRequest{}).Validate())
}
