package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrArtistNotFound      = errors.New("artist not found")
	ErrArtPieceNotFound    = errors.New("art piece not found")
	ErrExhibitionNotFound  = errors.New("exhibition not found")
	ErrSetupStatusNotFound = errors.New("setup status not found")

	ErrExhibitionNotUpcoming    = errors.New("exhibition is not upcoming")
	ErrNoArtPiecesAssigned      = errors.New("exhibition has no art pieces assigned")
	ErrSetupAlreadyConfirmed    = errors.New("setup already confirmed")
	ErrSetupNotConfirmed        = errors.New("setup has not been confirmed")
	ErrTeardownAlreadyConfirmed = errors.New("teardown already confirmed")
)

type Artist struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Bio         string
	ContactInfo string
}

type ArtPiece struct {
	ID             uint   `gorm:"primaryKey"`
	Title          string `gorm:"not null"`
	Description    string
	ArtistID       uint    `gorm:"not null;index"`
	Artist         Artist  `gorm:"foreignKey:ArtistID"`
	EstimatedValue float64 `gorm:"not null"`
	Status         string  `gorm:"not null;default:AVAILABLE"` // "AVAILABLE", "DISPLAYED" or "UNAVAILABLE"
}

type Exhibition struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"not null"`
	StartDate time.Time  `gorm:"not null"`
	EndDate   time.Time  `gorm:"not null"`
	Status    string     `gorm:"not null;default:UPCOMING"` // "UPCOMING", "ONGOING" or "COMPLETED"
	ArtPieces []ArtPiece `gorm:"many2many:exhibition_art_pieces;"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExhibitionArtPiece is the join row; Confirmed is flipped when setup is
// confirmed for the exhibition.
type ExhibitionArtPiece struct {
	ExhibitionID uint `gorm:"primaryKey"`
	ArtPieceID   uint `gorm:"primaryKey"`
	Confirmed    bool `gorm:"not null;default:false"`
}

type SetupStatus struct {
	ID                uint      `gorm:"primaryKey"`
	ExhibitionID      uint      `gorm:"uniqueIndex;not null"`
	ClerkID           uint      `gorm:"not null"`
	SetupConfirmed    bool      `gorm:"not null;default:false"`
	TeardownConfirmed bool      `gorm:"not null;default:false"`
	Timestamp         time.Time `gorm:"autoCreateTime"`
}

type GalleryDAO struct {
	db *gorm.DB
}

func NewGalleryDAO(db *gorm.DB) *GalleryDAO {
	return &GalleryDAO{
		db: db,
	}
}

// --- artists ---

func (d *GalleryDAO) InsertArtist(ctx context.Context, artist Artist) (Artist, error) {
	result := d.db.WithContext(ctx).Create(&artist)
	if result.Error != nil {
		return Artist{}, result.Error
	}
	return artist, nil
}

func (d *GalleryDAO) FindArtistByID(ctx context.Context, id uint) (Artist, error) {
	var artist Artist
	result := d.db.WithContext(ctx).First(&artist, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Artist{}, ErrArtistNotFound
		}
		return Artist{}, result.Error
	}
	return artist, nil
}

func (d *GalleryDAO) ListArtists(ctx context.Context, search string) ([]Artist, error) {
	var artists []Artist
	q := d.db.WithContext(ctx).Order("name")
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(bio) LIKE ?", pattern, pattern)
	}
	if err := q.Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

func (d *GalleryDAO) UpdateArtist(ctx context.Context, artist Artist) (Artist, error) {
	result := d.db.WithContext(ctx).Model(&Artist{ID: artist.ID}).Updates(map[string]any{
		"name":         artist.Name,
		"bio":          artist.Bio,
		"contact_info": artist.ContactInfo,
	})
	if result.Error != nil {
		return Artist{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Artist{}, ErrArtistNotFound
	}
	return d.FindArtistByID(ctx, artist.ID)
}

func (d *GalleryDAO) DeleteArtist(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Artist{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArtistNotFound
	}
	return nil
}

func (d *GalleryDAO) CountArtists(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&Artist{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --- art pieces ---

func (d *GalleryDAO) InsertArtPiece(ctx context.Context, piece ArtPiece) (ArtPiece, error) {
	result := d.db.WithContext(ctx).Create(&piece)
	if result.Error != nil {
		return ArtPiece{}, result.Error
	}
	return d.FindArtPieceByID(ctx, piece.ID)
}

func (d *GalleryDAO) FindArtPieceByID(ctx context.Context, id uint) (ArtPiece, error) {
	var piece ArtPiece
	result := d.db.WithContext(ctx).Preload("Artist").First(&piece, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ArtPiece{}, ErrArtPieceNotFound
		}
		return ArtPiece{}, result.Error
	}
	return piece, nil
}

func (d *GalleryDAO) ListArtPieces(ctx context.Context, status string, artistID uint, search string) ([]ArtPiece, error) {
	var pieces []ArtPiece
	q := d.db.WithContext(ctx).Preload("Artist").Order("title")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if artistID != 0 {
		q = q.Where("artist_id = ?", artistID)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if err := q.Find(&pieces).Error; err != nil {
		return nil, err
	}
	return pieces, nil
}

func (d *GalleryDAO) UpdateArtPiece(ctx context.Context, piece ArtPiece) (ArtPiece, error) {
	result := d.db.WithContext(ctx).Model(&ArtPiece{ID: piece.ID}).Updates(map[string]any{
		"title":           piece.Title,
		"description":     piece.Description,
		"artist_id":       piece.ArtistID,
		"estimated_value": piece.EstimatedValue,
		"status":          piece.Status,
	})
	if result.Error != nil {
		return ArtPiece{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ArtPiece{}, ErrArtPieceNotFound
	}
	return d.FindArtPieceByID(ctx, piece.ID)
}

func (d *GalleryDAO) DeleteArtPiece(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ArtPiece{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArtPieceNotFound
	}
	return nil
}

func (d *GalleryDAO) CountArtPiecesByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	q := d.db.WithContext(ctx).Model(&ArtPiece{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --- exhibitions ---

func (d *GalleryDAO) InsertExhibition(ctx context.Context, exhibition Exhibition) (Exhibition, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&exhibition)
	if result.Error != nil {
		return Exhibition{}, result.Error
	}
	return exhibition, nil
}

func (d *GalleryDAO) FindExhibitionByID(ctx context.Context, id uint) (Exhibition, error) {
	var exhibition Exhibition
	result := d.db.WithContext(ctx).Preload("ArtPieces").Preload("ArtPieces.Artist").First(&exhibition, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Exhibition{}, ErrExhibitionNotFound
		}
		return Exhibition{}, result.Error
	}
	return exhibition, nil
}

func (d *GalleryDAO) ListExhibitions(ctx context.Context, status, search string) ([]Exhibition, error) {
	var exhibitions []Exhibition
	q := d.db.WithContext(ctx).Preload("ArtPieces").Order("start_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if err := q.Find(&exhibitions).Error; err != nil {
		return nil, err
	}
	return exhibitions, nil
}

func (d *GalleryDAO) UpdateExhibition(ctx context.Context, exhibition Exhibition) (Exhibition, error) {
	result := d.db.WithContext(ctx).Model(&Exhibition{ID: exhibition.ID}).Updates(map[string]any{
		"title":      exhibition.Title,
		"start_date": exhibition.StartDate,
		"end_date":   exhibition.EndDate,
		"status":     exhibition.Status,
	})
	if result.Error != nil {
		return Exhibition{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Exhibition{}, ErrExhibitionNotFound
	}
	return d.FindExhibitionByID(ctx, exhibition.ID)
}

func (d *GalleryDAO) DeleteExhibition(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Select(clause.Associations).Delete(&Exhibition{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExhibitionNotFound
	}
	return nil
}

func (d *GalleryDAO) CountExhibitionsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	q := d.db.WithContext(ctx).Model(&Exhibition{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (d *GalleryDAO) AssignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error {
	if _, err := d.FindExhibitionByID(ctx, exhibitionID); err != nil {
		return err
	}
	if _, err := d.FindArtPieceByID(ctx, artPieceID); err != nil {
		return err
	}

	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ExhibitionArtPiece{ExhibitionID: exhibitionID, ArtPieceID: artPieceID}).Error
}

func (d *GalleryDAO) UnassignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error {
	return d.db.WithContext(ctx).
		Where("exhibition_id = ? AND art_piece_id = ?", exhibitionID, artPieceID).
		Delete(&ExhibitionArtPiece{}).Error
}

// --- setup statuses ---

func (d *GalleryDAO) FindSetupStatusByExhibition(ctx context.Context, exhibitionID uint) (SetupStatus, error) {
	var status SetupStatus
	result := d.db.WithContext(ctx).First(&status, "exhibition_id = ?", exhibitionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SetupStatus{}, ErrSetupStatusNotFound
		}
		return SetupStatus{}, result.Error
	}
	return status, nil
}

func (d *GalleryDAO) ListSetupStatuses(ctx context.Context) ([]SetupStatus, error) {
	var statuses []SetupStatus
	if err := d.db.WithContext(ctx).Order("timestamp DESC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// ConfirmSetup performs the whole setup transition in one transaction:
// every assigned art piece becomes DISPLAYED, the setup status row is
// upserted with setup_confirmed, and the exhibition moves to ONGOING.
func (d *GalleryDAO) ConfirmSetup(ctx context.Context, exhibitionID, clerkID uint) (SetupStatus, error) {
	var status SetupStatus

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exhibition Exhibition
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&exhibition, exhibitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExhibitionNotFound
			}
			return err
		}
		if exhibition.Status != "UPCOMING" {
			return ErrExhibitionNotUpcoming
		}

		var pieceIDs []uint
		if err := tx.Model(&ExhibitionArtPiece{}).
			Where("exhibition_id = ?", exhibitionID).
			Pluck("art_piece_id", &pieceIDs).Error; err != nil {
			return err
		}
		if len(pieceIDs) == 0 {
			return ErrNoArtPiecesAssigned
		}

		if err := tx.Model(&ArtPiece{}).
			Where("id IN ?", pieceIDs).
			Update("status", "DISPLAYED").Error; err != nil {
			return err
		}

		if err := tx.Model(&ExhibitionArtPiece{}).
			Where("exhibition_id = ?", exhibitionID).
			Update("confirmed", true).Error; err != nil {
			return err
		}

		if err := tx.First(&status, "exhibition_id = ?", exhibitionID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			status = SetupStatus{ExhibitionID: exhibitionID}
		}
		if status.SetupConfirmed {
			return ErrSetupAlreadyConfirmed
		}
		status.ClerkID = clerkID
		status.SetupConfirmed = true
		if err := tx.Save(&status).Error; err != nil {
			return err
		}

		return tx.Model(&Exhibition{}).
			Where("id = ?", exhibitionID).
			Update("status", "ONGOING").Error
	})
	if err != nil {
		return SetupStatus{}, err
	}

	return status, nil
}

// ConfirmTeardown is the inverse transition: pieces back to AVAILABLE,
// teardown_confirmed set, exhibition COMPLETED. Requires a confirmed
// setup, so teardown_confirmed can never hold without setup_confirmed.
func (d *GalleryDAO) ConfirmTeardown(ctx context.Context, exhibitionID, clerkID uint) (SetupStatus, error) {
	var status SetupStatus

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exhibition Exhibition
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&exhibition, exhibitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExhibitionNotFound
			}
			return err
		}

		if err := tx.First(&status, "exhibition_id = ?", exhibitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSetupNotConfirmed
			}
			return err
		}
		if !status.SetupConfirmed {
			return ErrSetupNotConfirmed
		}
		if status.TeardownConfirmed {
			return ErrTeardownAlreadyConfirmed
		}

		var pieceIDs []uint
		if err := tx.Model(&ExhibitionArtPiece{}).
			Where("exhibition_id = ?", exhibitionID).
			Pluck("art_piece_id", &pieceIDs).Error; err != nil {
			return err
		}

		if len(pieceIDs) > 0 {
			if err := tx.Model(&ArtPiece{}).
				Where("id IN ?", pieceIDs).
				Update("status", "AVAILABLE").Error; err != nil {
				return err
			}
		}

		status.ClerkID = clerkID
		status.TeardownConfirmed = true
		if err := tx.Save(&status).Error; err != nil {
			return err
		}

		return tx.Model(&Exhibition{}).
			Where("id = ?", exhibitionID).
			Update("status", "COMPLETED").Error
	})
	if err != nil {
		return SetupStatus{}, err
	}

	return status, nil
}
