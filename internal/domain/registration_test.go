package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestRegistrationStatus_Active(t *testing.T) {
	assert.True(t, RegistrationPending.Active())
	assert.True(t, RegistrationApproved.Active())
	assert.False(t, RegistrationRejected.Active())
	assert.False(t, RegistrationCancelled.Active())
}

func TestRegistrationStatus_Terminal(t *testing.T) {
	assert.False(t, RegistrationPending.Terminal())
	assert.False(t, RegistrationApproved.Terminal())
	assert.True(t, RegistrationRejected.Terminal())
	assert.True(t, RegistrationCancelled.Terminal())
}

func TestSortByQueuePosition(t *testing.T) {
	regs := []Registration{
		{ID: 1, QueuePosition: intPtr(3)},
		{ID: 2, QueuePosition: nil},
		{ID: 3, QueuePosition: intPtr(1)},
		{ID: 4, QueuePosition: intPtr(2)},
		{ID: 5, QueuePosition: nil},
	}

	SortByQueuePosition(regs)

	ids := make([]uint, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.ID)
	}

	// Positioned entries ascending, nil positions after them keeping
	// their relative order.
	assert.Equal(t, []uint{3, 4, 1, 2, 5}, ids)
}

func TestSortByQueuePosition_Idempotent(t *testing.T) {
	regs := []Registration{
		{ID: 1, QueuePosition: intPtr(2)},
		{ID: 2, QueuePosition: intPtr(1)},
		{ID: 3},
	}

	SortByQueuePosition(regs)
	first := make([]Registration, len(regs))
	copy(first, regs)

	SortByQueuePosition(regs)
	assert.Equal(t, first, regs)
}

func TestFilterByStatus(t *testing.T) {
	regs := []Registration{
		{ID: 1, Status: RegistrationPending},
		{ID: 2, Status: RegistrationApproved},
		{ID: 3, Status: RegistrationPending},
	}

	pending := FilterByStatus(regs, RegistrationPending)

	assert.Len(t, pending, 2)
	assert.Equal(t, uint(1), pending[0].ID)
	assert.Equal(t, uint(3), pending[1].ID)
	assert.Len(t, regs, 3)
}

func TestFilterByExhibition(t *testing.T) {
	regs := []Registration{
		{ID: 1, ExhibitionID: 10},
		{ID: 2, ExhibitionID: 20},
		{ID: 3, ExhibitionID: 10},
	}

	got := FilterByExhibition(regs, 10)

	assert.Len(t, got, 2)
	assert.Empty(t, FilterByExhibition(regs, 99))
}

func TestSearchRegistrations(t *testing.T) {
	regs := []Registration{
		{ID: 1, VisitorName: "Alice Smith", VisitorEmail: "alice@example.com", ExhibitionTitle: "Modern Art"},
		{ID: 2, VisitorName: "Bob Jones", VisitorEmail: "bob@example.com", ExhibitionTitle: "Impressionists"},
	}

	tests := []struct {
		name  string
		query string
		want  []uint
	}{
		{"empty query matches all", "", []uint{1, 2}},
		{"matches visitor name case-insensitively", "ALICE", []uint{1}},
		{"matches email", "bob@", []uint{2}},
		{"matches exhibition title", "modern", []uint{1}},
		{"no match", "van gogh", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchRegistrations(regs, tt.query)
			var ids []uint
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
