package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository"
)

type fakeRegistrationRepo struct {
	visitors      map[string]domain.Visitor
	registrations map[uint]domain.Registration
	nextVisitorID uint
	nextRegID     uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		visitors:      map[string]domain.Visitor{},
		registrations: map[uint]domain.Registration{},
		nextVisitorID: 1,
		nextRegID:     1,
	}
}

func (f *fakeRegistrationRepo) GetOrCreateVisitor(_ context.Context, visitor domain.Visitor) (domain.Visitor, error) {
	if v, ok := f.visitors[visitor.Email]; ok {
		return v, nil
	}
	visitor.ID = f.nextVisitorID
	f.nextVisitorID++
	f.visitors[visitor.Email] = visitor
	return visitor, nil
}

func (f *fakeRegistrationRepo) FindVisitorByEmail(_ context.Context, email string) (domain.Visitor, error) {
	if v, ok := f.visitors[email]; ok {
		return v, nil
	}
	return domain.Visitor{}, repository.ErrVisitorNotFound
}

func (f *fakeRegistrationRepo) ListVisitors(_ context.Context, search string) ([]domain.Visitor, error) {
	var out []domain.Visitor
	needle := strings.ToLower(search)
	for _, v := range f.visitors {
		if needle != "" && !strings.Contains(strings.ToLower(v.Name), needle) && !strings.Contains(strings.ToLower(v.Email), needle) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	position := 0
	for _, r := range f.registrations {
		if r.VisitorID == registration.VisitorID && r.ExhibitionID == registration.ExhibitionID && r.Status.Active() {
			return domain.Registration{}, repository.ErrDuplicateRegistration
		}
		if r.ExhibitionID == registration.ExhibitionID && r.Status == domain.RegistrationPending && r.QueuePosition != nil && *r.QueuePosition > position {
			position = *r.QueuePosition
		}
	}

	position++
	registration.ID = f.nextRegID
	f.nextRegID++
	// Mirror the real repository, which denormalizes the visitor's name
	// and email into the registration on every read.
	for _, v := range f.visitors {
		if v.ID == registration.VisitorID {
			registration.VisitorName = v.Name
			registration.VisitorEmail = v.Email
		}
	}
	registration.Status = domain.RegistrationPending
	registration.QueuePosition = &position
	registration.SubmittedAt = time.Now()
	f.registrations[registration.ID] = registration
	return registration, nil
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id uint) (domain.Registration, error) {
	if r, ok := f.registrations[id]; ok {
		return r, nil
	}
	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) List(_ context.Context, visitorID, exhibitionID uint, status domain.RegistrationStatus, search string) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, r := range f.registrations {
		if visitorID != 0 && r.VisitorID != visitorID {
			continue
		}
		if exhibitionID != 0 && r.ExhibitionID != exhibitionID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	// Newest first, matching the dao's default ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return domain.SearchRegistrations(out, search), nil
}

func (f *fakeRegistrationRepo) FindPendingByVisitor(_ context.Context, visitorID uint) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, r := range f.registrations {
		if r.VisitorID == visitorID && r.Status == domain.RegistrationPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) Approve(_ context.Context, id, reviewerID uint) (domain.Registration, error) {
	r, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if r.Status != domain.RegistrationPending {
		return domain.Registration{}, repository.ErrRegistrationNotPending
	}
	now := time.Now()
	r.Status = domain.RegistrationApproved
	r.Confirmed = true
	r.ReviewedByID = &reviewerID
	r.ReviewedAt = &now
	f.registrations[id] = r
	return r, nil
}

func (f *fakeRegistrationRepo) Reject(_ context.Context, id, reviewerID uint, reason string) (domain.Registration, error) {
	r, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if r.Status != domain.RegistrationPending {
		return domain.Registration{}, repository.ErrRegistrationNotPending
	}
	now := time.Now()
	r.Status = domain.RegistrationRejected
	r.RejectionReason = reason
	r.ReviewedByID = &reviewerID
	r.ReviewedAt = &now
	f.registrations[id] = r
	return r, nil
}

func (f *fakeRegistrationRepo) Cancel(_ context.Context, id uint) (domain.Registration, error) {
	r, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if r.Status == domain.RegistrationApproved {
		return domain.Registration{}, repository.ErrRegistrationFinalized
	}
	if r.Status != domain.RegistrationPending {
		return domain.Registration{}, repository.ErrRegistrationNotPending
	}
	r.Status = domain.RegistrationCancelled
	f.registrations[id] = r
	return r, nil
}

func (f *fakeRegistrationRepo) Update(_ context.Context, id uint, updates map[string]any) (domain.Registration, error) {
	r, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if status, ok := updates["status"].(string); ok {
		r.Status = domain.RegistrationStatus(status)
	}
	if confirmed, ok := updates["confirmed"].(bool); ok {
		r.Confirmed = confirmed
	}
	if attendees, ok := updates["attendees_count"].(int); ok {
		r.AttendeesCount = attendees
	}
	f.registrations[id] = r
	return r, nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.registrations[id]; !ok {
		return repository.ErrRegistrationNotFound
	}
	delete(f.registrations, id)
	return nil
}

type fakeExhibitionReader struct {
	exhibitions map[uint]domain.Exhibition
}

func (f *fakeExhibitionReader) GetExhibition(_ context.Context, id uint) (domain.Exhibition, error) {
	if e, ok := f.exhibitions[id]; ok {
		return e, nil
	}
	return domain.Exhibition{}, repository.ErrExhibitionNotFound
}

func newRegistrationFixture() (*RegistrationService, *fakeRegistrationRepo, *fakeExhibitionReader) {
	repo := newFakeRegistrationRepo()
	gallery := &fakeExhibitionReader{
		exhibitions: map[uint]domain.Exhibition{
			42: {ID: 42, Title: "Modern Masters", Status: domain.ExhibitionUpcoming},
			43: {ID: 43, Title: "Closing Retrospective", Status: domain.ExhibitionCompleted},
			44: {ID: 44, Title: "Live Show", Status: domain.ExhibitionOngoing},
		},
	}
	return NewRegistrationService(repo, gallery), repo, gallery
}

var (
	alice = domain.User{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice", Role: domain.RoleVisitor}
	bob   = domain.User{ID: 2, Username: "bob", Email: "bob@example.com", Role: domain.RoleVisitor}
	clerk = domain.User{ID: 3, Username: "clerk", Email: "clerk@example.com", Role: domain.RoleClerk}
)

func TestRegistrationService_Submit(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, reg.Status)
	assert.Equal(t, 3, reg.AttendeesCount)
	require.NotNil(t, reg.QueuePosition)
	assert.Equal(t, 1, *reg.QueuePosition)
}

func TestRegistrationService_Submit_QueuePositionsIncrease(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	first, err := svc.Submit(context.Background(), alice, 42, 1)
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), bob, 42, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, *first.QueuePosition)
	assert.Equal(t, 2, *second.QueuePosition)
}

func TestRegistrationService_Submit_InvalidAttendees(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Submit(context.Background(), alice, 42, 0)
	assert.ErrorIs(t, err, ErrInvalidAttendees)

	_, err = svc.Submit(context.Background(), alice, 42, 11)
	assert.ErrorIs(t, err, ErrInvalidAttendees)
}

func TestRegistrationService_Submit_ExhibitionNotFound(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Submit(context.Background(), alice, 999, 2)

	assert.ErrorIs(t, err, ErrExhibitionNotFound)
}

func TestRegistrationService_Submit_ExhibitionNotOpen(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Submit(context.Background(), alice, 43, 2)
	assert.ErrorIs(t, err, ErrExhibitionNotOpen)

	_, err = svc.Submit(context.Background(), alice, 44, 2)
	assert.ErrorIs(t, err, ErrExhibitionNotOpen)
}

func TestRegistrationService_Submit_Duplicate(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), alice, 42, 2)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
}

func TestRegistrationService_Submit_AfterCancelAllowed(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), reg.ID, alice)
	require.NoError(t, err)

	// A terminal registration no longer blocks the slot.
	_, err = svc.Submit(context.Background(), alice, 42, 2)
	assert.NoError(t, err)
}

func TestRegistrationService_Approve(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), reg.ID, clerk)

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationApproved, approved.Status)
	assert.True(t, approved.Confirmed)
	require.NotNil(t, approved.ReviewedByID)
	assert.Equal(t, clerk.ID, *approved.ReviewedByID)
	assert.NotNil(t, approved.ReviewedAt)
}

func TestRegistrationService_Approve_NotPending(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), reg.ID, clerk)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), reg.ID, clerk)
	assert.ErrorIs(t, err, ErrRegistrationNotPending)
}

func TestRegistrationService_Reject(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), reg.ID, clerk, "over capacity")

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationRejected, rejected.Status)
	assert.False(t, rejected.Confirmed)
	assert.Equal(t, "over capacity", rejected.RejectionReason)
}

func TestRegistrationService_Cancel_OwnPending(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), reg.ID, alice)

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationCancelled, cancelled.Status)
}

func TestRegistrationService_Cancel_SomeoneElses(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), reg.ID, bob)

	assert.ErrorIs(t, err, ErrCancelForbidden)
}

func TestRegistrationService_Cancel_ApprovedRefused(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), reg.ID, clerk)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), reg.ID, alice)

	assert.ErrorIs(t, err, ErrRegistrationFinalized)
}

func TestRegistrationService_Cancel_StaffOnAnyPending(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), reg.ID, clerk)

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationCancelled, cancelled.Status)
}

func TestRegistrationService_ListForUser(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), bob, 42, 1)
	require.NoError(t, err)

	own, err := svc.ListForUser(context.Background(), alice, 0, "", "")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListForUser(context.Background(), clerk, 0, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegistrationService_ListForUser_PendingOrderedByQueue(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	carol := domain.User{ID: 4, Username: "carol", Email: "carol@example.com", Role: domain.RoleVisitor}

	_, err := svc.Submit(context.Background(), alice, 42, 1)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), bob, 42, 1)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), carol, 42, 1)
	require.NoError(t, err)

	regs, err := svc.ListForUser(context.Background(), clerk, 0, domain.RegistrationPending, "")

	require.NoError(t, err)
	require.Len(t, regs, 3)
	for i, reg := range regs {
		require.NotNil(t, reg.QueuePosition)
		assert.Equal(t, i+1, *reg.QueuePosition)
	}
}

func TestRegistrationService_ListForUser_NoVisitorProfile(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	regs, err := svc.ListForUser(context.Background(), alice, 0, "", "")

	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestRegistrationService_UpdateRegistration_SyncsConfirmed(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateRegistration(context.Background(), reg.ID, domain.RegistrationApproved, 0)

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationApproved, updated.Status)
	assert.True(t, updated.Confirmed)

	updated, err = svc.UpdateRegistration(context.Background(), reg.ID, domain.RegistrationRejected, 0)
	require.NoError(t, err)
	assert.False(t, updated.Confirmed)
}

func TestRegistrationService_UpdateRegistration_InvalidAttendees(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	_, err = svc.UpdateRegistration(context.Background(), reg.ID, "", 11)

	assert.ErrorIs(t, err, ErrInvalidAttendees)
}

func TestRegistrationService_ListVisitors(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), bob, 42, 1)
	require.NoError(t, err)

	all, err := svc.ListVisitors(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.ListVisitors(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "alice@example.com", matched[0].Email)
}

func TestRegistrationService_QueueStatus(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Submit(context.Background(), bob, 42, 1)
	require.NoError(t, err)
	reg, err := svc.Submit(context.Background(), alice, 42, 2)
	require.NoError(t, err)

	entries, err := svc.QueueStatus(context.Background(), alice)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, reg.ID, entries[0].RegistrationID)
	require.NotNil(t, entries[0].QueuePosition)
	assert.Equal(t, 2, *entries[0].QueuePosition)
	assert.Equal(t, "2 day(s)", entries[0].EstimatedWait)
}

func TestRegistrationService_QueueStatus_NoProfile(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	entries, err := svc.QueueStatus(context.Background(), alice)

	require.NoError(t, err)
	assert.Empty(t, entries)
}
