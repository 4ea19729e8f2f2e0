package service

import (
	"context"
	"errors"
	"fmt"

	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository"
)

var (
	ErrRegistrationNotFound   = repository.ErrRegistrationNotFound
	ErrDuplicateRegistration  = repository.ErrDuplicateRegistration
	ErrExhibitionNotOpen      = repository.ErrExhibitionNotOpen
	ErrRegistrationNotPending = repository.ErrRegistrationNotPending
	ErrRegistrationFinalized  = repository.ErrRegistrationFinalized

	ErrInvalidAttendees = errors.New("attendees count must be between 1 and 10")
	ErrCancelForbidden  = errors.New("not allowed to cancel this registration")
)

const maxAttendees = 10

type RegistrationRepository interface {
	GetOrCreateVisitor(ctx context.Context, visitor domain.Visitor) (domain.Visitor, error)
	FindVisitorByEmail(ctx context.Context, email string) (domain.Visitor, error)
	ListVisitors(ctx context.Context, search string) ([]domain.Visitor, error)
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	GetByID(ctx context.Context, id uint) (domain.Registration, error)
	List(ctx context.Context, visitorID, exhibitionID uint, status domain.RegistrationStatus, search string) ([]domain.Registration, error)
	FindPendingByVisitor(ctx context.Context, visitorID uint) ([]domain.Registration, error)
	Approve(ctx context.Context, id, reviewerID uint) (domain.Registration, error)
	Reject(ctx context.Context, id, reviewerID uint, reason string) (domain.Registration, error)
	Cancel(ctx context.Context, id uint) (domain.Registration, error)
	Update(ctx context.Context, id uint, updates map[string]any) (domain.Registration, error)
	Delete(ctx context.Context, id uint) error
}

// ExhibitionReader is the slice of the gallery repository the
// registration workflow needs.
type ExhibitionReader interface {
	GetExhibition(ctx context.Context, id uint) (domain.Exhibition, error)
}

type RegistrationService struct {
	repo    RegistrationRepository
	gallery ExhibitionReader
}

func NewRegistrationService(repo RegistrationRepository, gallery ExhibitionReader) *RegistrationService {
	return &RegistrationService{
		repo:    repo,
		gallery: gallery,
	}
}

// Submit creates a PENDING registration for the user on an UPCOMING
// exhibition. The repository enforces the single-active-registration
// invariant and assigns the queue position transactionally; the checks
// here exist to fail fast with a precise error.
func (s *RegistrationService) Submit(ctx context.Context, user domain.User, exhibitionID uint, attendeesCount int) (domain.Registration, error) {
	if attendeesCount < 1 || attendeesCount > maxAttendees {
		return domain.Registration{}, ErrInvalidAttendees
	}

	exhibition, err := s.gallery.GetExhibition(ctx, exhibitionID)
	if err != nil {
		if errors.Is(err, repository.ErrExhibitionNotFound) {
			return domain.Registration{}, ErrExhibitionNotFound
		}

		return domain.Registration{}, fmt.Errorf("s.gallery.GetExhibition -> %w", err)
	}
	if exhibition.Status != domain.ExhibitionUpcoming {
		return domain.Registration{}, ErrExhibitionNotOpen
	}

	visitor, err := s.repo.GetOrCreateVisitor(ctx, domain.Visitor{
		Name:  user.DisplayName(),
		Email: user.Email,
		Phone: user.Phone,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.GetOrCreateVisitor -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Registration{
		VisitorID:      visitor.ID,
		ExhibitionID:   exhibitionID,
		AttendeesCount: attendeesCount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return domain.Registration{}, ErrDuplicateRegistration
		}
		if errors.Is(err, repository.ErrExhibitionNotOpen) {
			return domain.Registration{}, ErrExhibitionNotOpen
		}

		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListForUser returns all registrations for staff, and only the caller's
// own for visitors.
func (s *RegistrationService) ListForUser(ctx context.Context, user domain.User, exhibitionID uint, status domain.RegistrationStatus, search string) ([]domain.Registration, error) {
	visitorID := uint(0)
	if !user.Role.IsStaff() {
		visitor, err := s.repo.FindVisitorByEmail(ctx, user.Email)
		if err != nil {
			if errors.Is(err, repository.ErrVisitorNotFound) {
				return []domain.Registration{}, nil
			}

			return nil, fmt.Errorf("s.repo.FindVisitorByEmail -> %w", err)
		}
		visitorID = visitor.ID
	}

	registrations, err := s.repo.List(ctx, visitorID, exhibitionID, status, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	// Pending listings follow the waiting queue, not submission recency.
	if status == domain.RegistrationPending {
		domain.SortByQueuePosition(registrations)
	}

	return registrations, nil
}

// ListVisitors returns all visitor profiles, optionally filtered by a
// search on name and email.
func (s *RegistrationService) ListVisitors(ctx context.Context, search string) ([]domain.Visitor, error) {
	visitors, err := s.repo.ListVisitors(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListVisitors -> %w", err)
	}

	return visitors, nil
}

// MyRegistrations returns the caller's registrations regardless of role.
func (s *RegistrationService) MyRegistrations(ctx context.Context, user domain.User) ([]domain.Registration, error) {
	visitor, err := s.repo.FindVisitorByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, repository.ErrVisitorNotFound) {
			return []domain.Registration{}, nil
		}

		return nil, fmt.Errorf("s.repo.FindVisitorByEmail -> %w", err)
	}

	registrations, err := s.repo.List(ctx, visitor.ID, 0, "", "")
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) GetRegistration(ctx context.Context, id uint) (domain.Registration, error) {
	registration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return registration, nil
}

func (s *RegistrationService) Approve(ctx context.Context, id uint, reviewer domain.User) (domain.Registration, error) {
	registration, err := s.repo.Approve(ctx, id, reviewer.ID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return registration, nil
}

func (s *RegistrationService) Reject(ctx context.Context, id uint, reviewer domain.User, reason string) (domain.Registration, error) {
	registration, err := s.repo.Reject(ctx, id, reviewer.ID, reason)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Reject -> %w", err)
	}

	return registration, nil
}

// Cancel is allowed for staff on any registration not yet approved, and
// for the owning visitor while the registration is pending.
func (s *RegistrationService) Cancel(ctx context.Context, id uint, actor domain.User) (domain.Registration, error) {
	registration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if !actor.Role.IsStaff() && registration.VisitorEmail != actor.Email {
		return domain.Registration{}, ErrCancelForbidden
	}

	cancelled, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return cancelled, nil
}

// UpdateRegistration applies a staff partial update. Status changes keep
// the legacy confirmed flag in sync.
func (s *RegistrationService) UpdateRegistration(ctx context.Context, id uint, status domain.RegistrationStatus, attendeesCount int) (domain.Registration, error) {
	updates := map[string]any{}
	if status != "" {
		updates["status"] = string(status)
		updates["confirmed"] = status == domain.RegistrationApproved
	}
	if attendeesCount != 0 {
		if attendeesCount < 1 || attendeesCount > maxAttendees {
			return domain.Registration{}, ErrInvalidAttendees
		}
		updates["attendees_count"] = attendeesCount
	}

	registration, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return registration, nil
}

func (s *RegistrationService) DeleteRegistration(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// QueueStatus summarizes the caller's pending registrations in queue
// order.
func (s *RegistrationService) QueueStatus(ctx context.Context, user domain.User) ([]domain.QueueEntry, error) {
	visitor, err := s.repo.FindVisitorByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, repository.ErrVisitorNotFound) {
			return []domain.QueueEntry{}, nil
		}

		return nil, fmt.Errorf("s.repo.FindVisitorByEmail -> %w", err)
	}

	pending, err := s.repo.FindPendingByVisitor(ctx, visitor.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPendingByVisitor -> %w", err)
	}

	domain.SortByQueuePosition(pending)

	entries := make([]domain.QueueEntry, len(pending))
	for i, reg := range pending {
		wait := 1
		if reg.QueuePosition != nil && *reg.QueuePosition > 1 {
			wait = *reg.QueuePosition
		}
		entries[i] = domain.QueueEntry{
			RegistrationID:  reg.ID,
			ExhibitionTitle: reg.ExhibitionTitle,
			QueuePosition:   reg.QueuePosition,
			SubmittedAt:     reg.SubmittedAt,
			EstimatedWait:   fmt.Sprintf("%d day(s)", wait),
			AttendeesCount:  reg.AttendeesCount,
		}
	}

	return entries, nil
}
