package repository

import (
	"context"
	"fmt"

	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository/dao"
)

var (
	ErrVisitorNotFound        = dao.ErrVisitorNotFound
	ErrRegistrationNotFound   = dao.ErrRegistrationNotFound
	ErrDuplicateRegistration  = dao.ErrDuplicateRegistration
	ErrExhibitionNotOpen      = dao.ErrExhibitionNotOpen
	ErrRegistrationNotPending = dao.ErrRegistrationNotPending
	ErrRegistrationFinalized  = dao.ErrRegistrationFinalized
)

type RegistrationDAO interface {
	GetOrCreateVisitor(ctx context.Context, visitor dao.Visitor) (dao.Visitor, error)
	FindVisitorByEmail(ctx context.Context, email string) (dao.Visitor, error)
	ListVisitors(ctx context.Context, search string) ([]dao.Visitor, error)
	CountVisitors(ctx context.Context) (int64, error)
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	List(ctx context.Context, visitorID, exhibitionID uint, status, search string) ([]dao.Registration, error)
	FindPendingByVisitor(ctx context.Context, visitorID uint) ([]dao.Registration, error)
	Review(ctx context.Context, id uint, approve bool, reason string, reviewerID uint) (dao.Registration, error)
	Cancel(ctx context.Context, id uint) (dao.Registration, error)
	Update(ctx context.Context, id uint, updates map[string]any) (dao.Registration, error)
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByExhibition(ctx context.Context, exhibitionID uint, status string) (int64, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) GetOrCreateVisitor(ctx context.Context, visitor domain.Visitor) (domain.Visitor, error) {
	found, err := r.dao.GetOrCreateVisitor(ctx, dao.Visitor{
		Name:  visitor.Name,
		Email: visitor.Email,
		Phone: visitor.Phone,
	})
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("r.dao.GetOrCreateVisitor -> %w", err)
	}

	return r.visitorDaoToDomain(found), nil
}

func (r *RegistrationRepository) FindVisitorByEmail(ctx context.Context, email string) (domain.Visitor, error) {
	found, err := r.dao.FindVisitorByEmail(ctx, email)
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("r.dao.FindVisitorByEmail -> %w", err)
	}

	return r.visitorDaoToDomain(found), nil
}

func (r *RegistrationRepository) ListVisitors(ctx context.Context, search string) ([]domain.Visitor, error) {
	found, err := r.dao.ListVisitors(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListVisitors -> %w", err)
	}

	out := make([]domain.Visitor, len(found))
	for i, v := range found {
		out[i] = r.visitorDaoToDomain(v)
	}

	return out, nil
}

func (r *RegistrationRepository) CountVisitors(ctx context.Context) (int64, error) {
	count, err := r.dao.CountVisitors(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountVisitors -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		VisitorID:      registration.VisitorID,
		ExhibitionID:   registration.ExhibitionID,
		AttendeesCount: registration.AttendeesCount,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) List(ctx context.Context, visitorID, exhibitionID uint, status domain.RegistrationStatus, search string) ([]domain.Registration, error) {
	found, err := r.dao.List(ctx, visitorID, exhibitionID, string(status), search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RegistrationRepository) FindPendingByVisitor(ctx context.Context, visitorID uint) ([]domain.Registration, error) {
	found, err := r.dao.FindPendingByVisitor(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPendingByVisitor -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RegistrationRepository) Approve(ctx context.Context, id, reviewerID uint) (domain.Registration, error) {
	updated, err := r.dao.Review(ctx, id, true, "", reviewerID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Review -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) Reject(ctx context.Context, id, reviewerID uint, reason string) (domain.Registration, error) {
	updated, err := r.dao.Review(ctx, id, false, reason, reviewerID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Review -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) Cancel(ctx context.Context, id uint) (domain.Registration, error) {
	updated, err := r.dao.Cancel(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) Update(ctx context.Context, id uint, updates map[string]any) (domain.Registration, error) {
	updated, err := r.dao.Update(ctx, id, updates)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) CountByStatus(ctx context.Context, status domain.RegistrationStatus) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) CountByExhibition(ctx context.Context, exhibitionID uint, status domain.RegistrationStatus) (int64, error) {
	count, err := r.dao.CountByExhibition(ctx, exhibitionID, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByExhibition -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) visitorDaoToDomain(v dao.Visitor) domain.Visitor {
	return domain.Visitor{
		ID:    v.ID,
		Name:  v.Name,
		Email: v.Email,
		Phone: v.Phone,
	}
}

func (r *RegistrationRepository) daosToDomain(regs []dao.Registration) []domain.Registration {
	out := make([]domain.Registration, len(regs))
	for i, reg := range regs {
		out[i] = r.daoToDomain(reg)
	}
	return out
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:               reg.ID,
		VisitorID:        reg.VisitorID,
		VisitorName:      reg.Visitor.Name,
		VisitorEmail:     reg.Visitor.Email,
		ExhibitionID:     reg.ExhibitionID,
		ExhibitionTitle:  reg.Exhibition.Title,
		ExhibitionStatus: domain.ExhibitionStatus(reg.Exhibition.Status),
		AttendeesCount:   reg.AttendeesCount,
		Status:           domain.RegistrationStatus(reg.Status),
		Confirmed:        reg.Confirmed,
		QueuePosition:    reg.QueuePosition,
		RejectionReason:  reg.RejectionReason,
		ReviewedByID:     reg.ReviewedByID,
		ReviewedAt:       reg.ReviewedAt,
		SubmittedAt:      reg.SubmittedAt,
	}
}
