package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleVisitor.Valid())
	assert.True(t, RoleClerk.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestRole_Can(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		capability Capability
		want       bool
	}{
		{"visitor cannot manage artists", RoleVisitor, CapManageArtists, false},
		{"visitor cannot review registrations", RoleVisitor, CapReviewRegistrations, false},
		{"clerk manages artists", RoleClerk, CapManageArtists, true},
		{"clerk manages art pieces", RoleClerk, CapManageArtPieces, true},
		{"clerk manages exhibitions", RoleClerk, CapManageExhibitions, true},
		{"clerk reviews registrations", RoleClerk, CapReviewRegistrations, true},
		{"clerk confirms setup", RoleClerk, CapConfirmSetup, true},
		{"clerk cannot list users", RoleClerk, CapListUsers, false},
		{"admin has every clerk capability", RoleAdmin, CapReviewRegistrations, true},
		{"admin lists users", RoleAdmin, CapListUsers, true},
		{"unknown role has nothing", Role("ghost"), CapManageArtists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Can(tt.capability))
		})
	}
}

func TestRole_IsStaff(t *testing.T) {
	assert.False(t, RoleVisitor.IsStaff())
	assert.True(t, RoleClerk.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{FirstName: "Alice", LastName: "Smith", Username: "asmith", Email: "a@b.c"}, "Alice Smith"},
		{"first name only", User{FirstName: "Alice", Username: "asmith"}, "Alice"},
		{"falls back to username", User{Username: "asmith", Email: "a@b.c"}, "asmith"},
		{"falls back to email", User{Email: "a@b.c"}, "a@b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
