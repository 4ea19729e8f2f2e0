package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrVisitorNotFound        = errors.New("visitor not found")
	ErrRegistrationNotFound   = errors.New("registration not found")
	ErrDuplicateRegistration  = errors.New("already registered for this exhibition")
	ErrExhibitionNotOpen      = errors.New("exhibition is not open for registration")
	ErrRegistrationNotPending = errors.New("registration is not pending")
	ErrRegistrationFinalized  = errors.New("registration already approved")
)

type Visitor struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Email string `gorm:"unique;not null"`
	Phone string
}

type Registration struct {
	ID uint `gorm:"primaryKey"`

	VisitorID    uint       `gorm:"not null;index"`
	Visitor      Visitor    `gorm:"foreignKey:VisitorID"`
	ExhibitionID uint       `gorm:"not null;index"`
	Exhibition   Exhibition `gorm:"foreignKey:ExhibitionID"`

	AttendeesCount int    `gorm:"not null;default:1"`
	Status         string `gorm:"not null;default:PENDING"` // "PENDING", "APPROVED", "REJECTED" or "CANCELLED"
	// Confirmed predates the status column and is kept in sync for old
	// consumers.
	Confirmed bool `gorm:"not null;default:false"`

	QueuePosition   *int
	RejectionReason string
	ReviewedByID    *uint
	ReviewedAt      *time.Time

	SubmittedAt time.Time `gorm:"autoCreateTime"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// GetOrCreateVisitor returns the visitor profile for an email, creating
// it on first use.
func (d *RegistrationDAO) GetOrCreateVisitor(ctx context.Context, visitor Visitor) (Visitor, error) {
	var found Visitor

	err := d.db.WithContext(ctx).
		Where(Visitor{Email: visitor.Email}).
		Attrs(Visitor{Name: visitor.Name, Phone: visitor.Phone}).
		FirstOrCreate(&found).Error
	if err != nil {
		return Visitor{}, err
	}

	if found.Name == "" && visitor.Name != "" {
		found.Name = visitor.Name
		if err := d.db.WithContext(ctx).Save(&found).Error; err != nil {
			return Visitor{}, err
		}
	}

	return found, nil
}

func (d *RegistrationDAO) FindVisitorByEmail(ctx context.Context, email string) (Visitor, error) {
	var visitor Visitor
	result := d.db.WithContext(ctx).First(&visitor, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Visitor{}, ErrVisitorNotFound
		}
		return Visitor{}, result.Error
	}
	return visitor, nil
}

// ListVisitors returns visitor profiles ordered by name, optionally
// filtered by a free-text search on name and email.
func (d *RegistrationDAO) ListVisitors(ctx context.Context, search string) ([]Visitor, error) {
	var visitors []Visitor

	q := d.db.WithContext(ctx).Order("name ASC")
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if err := q.Find(&visitors).Error; err != nil {
		return nil, err
	}

	return visitors, nil
}

func (d *RegistrationDAO) CountVisitors(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&Visitor{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Insert creates a PENDING registration with the next queue position for
// the exhibition. The exhibition status check, the duplicate check and
// the position assignment all happen inside one transaction; the partial
// unique index backs the duplicate check against races.
func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exhibition Exhibition
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&exhibition, registration.ExhibitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExhibitionNotFound
			}
			return err
		}
		if exhibition.Status != "UPCOMING" {
			return ErrExhibitionNotOpen
		}

		var active int64
		if err := tx.Model(&Registration{}).
			Where("visitor_id = ? AND exhibition_id = ? AND status IN ?",
				registration.VisitorID, registration.ExhibitionID,
				[]string{"PENDING", "APPROVED"}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrDuplicateRegistration
		}

		var maxPosition int
		if err := tx.Model(&Registration{}).
			Where("exhibition_id = ? AND status = ?", registration.ExhibitionID, "PENDING").
			Select("COALESCE(MAX(queue_position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		next := maxPosition + 1
		registration.QueuePosition = &next
		registration.Status = "PENDING"
		registration.Confirmed = false

		if err := tx.Create(&registration).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrDuplicateRegistration
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Registration{}, err
	}

	return d.FindByID(ctx, registration.ID)
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Exhibition").
		First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}
		return Registration{}, result.Error
	}

	return registration, nil
}

// List returns registrations newest first, optionally filtered by
// visitor, exhibition, status and a free-text search on visitor
// name/email and exhibition title.
func (d *RegistrationDAO) List(ctx context.Context, visitorID, exhibitionID uint, status, search string) ([]Registration, error) {
	var registrations []Registration

	q := d.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Exhibition").
		Joins("JOIN visitors ON visitors.id = registrations.visitor_id").
		Joins("JOIN exhibitions ON exhibitions.id = registrations.exhibition_id").
		Order("registrations.submitted_at DESC")

	if visitorID != 0 {
		q = q.Where("registrations.visitor_id = ?", visitorID)
	}
	if exhibitionID != 0 {
		q = q.Where("registrations.exhibition_id = ?", exhibitionID)
	}
	if status != "" {
		q = q.Where("registrations.status = ?", status)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(visitors.name) LIKE ? OR LOWER(visitors.email) LIKE ? OR LOWER(exhibitions.title) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := q.Find(&registrations).Error; err != nil {
		return nil, err
	}

	return registrations, nil
}

// FindPendingByVisitor returns a visitor's pending registrations ordered
// by queue position, missing positions last.
func (d *RegistrationDAO) FindPendingByVisitor(ctx context.Context, visitorID uint) ([]Registration, error) {
	var registrations []Registration

	err := d.db.WithContext(ctx).
		Preload("Exhibition").
		Where("visitor_id = ? AND status = ?", visitorID, "PENDING").
		Order("queue_position ASC NULLS LAST").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}

	return registrations, nil
}

// Review approves or rejects a pending registration. The PENDING
// precondition is rechecked under a row lock.
func (d *RegistrationDAO) Review(ctx context.Context, id uint, approve bool, reason string, reviewerID uint) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration Registration
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&registration, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}
		if registration.Status != "PENDING" {
			return ErrRegistrationNotPending
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"reviewed_by_id": reviewerID,
			"reviewed_at":    now,
		}
		if approve {
			updates["status"] = "APPROVED"
			updates["confirmed"] = true
		} else {
			updates["status"] = "REJECTED"
			updates["confirmed"] = false
			updates["rejection_reason"] = reason
		}

		return tx.Model(&Registration{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return Registration{}, err
	}

	return d.FindByID(ctx, id)
}

// Cancel marks a registration CANCELLED. Approved and terminal
// registrations cannot be cancelled.
func (d *RegistrationDAO) Cancel(ctx context.Context, id uint) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration Registration
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&registration, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}
		if registration.Status == "APPROVED" {
			return ErrRegistrationFinalized
		}
		if registration.Status != "PENDING" {
			return ErrRegistrationNotPending
		}

		return tx.Model(&Registration{}).Where("id = ?", id).Updates(map[string]any{
			"status":    "CANCELLED",
			"confirmed": false,
		}).Error
	})
	if err != nil {
		return Registration{}, err
	}

	return d.FindByID(ctx, id)
}

// Update applies a staff partial update of status/confirmed/attendees.
func (d *RegistrationDAO) Update(ctx context.Context, id uint, updates map[string]any) (Registration, error) {
	result := d.db.WithContext(ctx).Model(&Registration{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return Registration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Registration{}, ErrRegistrationNotFound
	}
	return d.FindByID(ctx, id)
}

func (d *RegistrationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Registration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

func (d *RegistrationDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	q := d.db.WithContext(ctx).Model(&Registration{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (d *RegistrationDAO) CountByExhibition(ctx context.Context, exhibitionID uint, status string) (int64, error) {
	var count int64
	q := d.db.WithContext(ctx).Model(&Registration{}).Where("exhibition_id = ?", exhibitionID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
