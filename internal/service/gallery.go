package service

import (
	"context"
	"fmt"

	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository"
)

var (
	ErrArtistNotFound      = repository.ErrArtistNotFound
	ErrArtPieceNotFound    = repository.ErrArtPieceNotFound
	ErrExhibitionNotFound  = repository.ErrExhibitionNotFound
	ErrSetupStatusNotFound = repository.ErrSetupStatusNotFound

	ErrExhibitionNotUpcoming    = repository.ErrExhibitionNotUpcoming
	ErrNoArtPiecesAssigned      = repository.ErrNoArtPiecesAssigned
	ErrSetupAlreadyConfirmed    = repository.ErrSetupAlreadyConfirmed
	ErrSetupNotConfirmed        = repository.ErrSetupNotConfirmed
	ErrTeardownAlreadyConfirmed = repository.ErrTeardownAlreadyConfirmed
)

type GalleryRepository interface {
	CreateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error)
	GetArtist(ctx context.Context, id uint) (domain.Artist, error)
	ListArtists(ctx context.Context, search string) ([]domain.Artist, error)
	UpdateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error)
	DeleteArtist(ctx context.Context, id uint) error
	CountArtists(ctx context.Context) (int64, error)

	CreateArtPiece(ctx context.Context, piece domain.ArtPiece) (domain.ArtPiece, error)
	GetArtPiece(ctx context.Context, id uint) (domain.ArtPiece, error)
	ListArtPieces(ctx context.Context, status domain.ArtPieceStatus, artistID uint, search string) ([]domain.ArtPiece, error)
	UpdateArtPiece(ctx context.Context, piece domain.ArtPiece) (domain.ArtPiece, error)
	DeleteArtPiece(ctx context.Context, id uint) error
	CountArtPiecesByStatus(ctx context.Context, status domain.ArtPieceStatus) (int64, error)

	CreateExhibition(ctx context.Context, exhibition domain.Exhibition) (domain.Exhibition, error)
	GetExhibition(ctx context.Context, id uint) (domain.Exhibition, error)
	ListExhibitions(ctx context.Context, status domain.ExhibitionStatus, search string) ([]domain.Exhibition, error)
	UpdateExhibition(ctx context.Context, exhibition domain.Exhibition) (domain.Exhibition, error)
	DeleteExhibition(ctx context.Context, id uint) error
	CountExhibitionsByStatus(ctx context.Context, status domain.ExhibitionStatus) (int64, error)
	AssignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error
	UnassignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error

	GetSetupStatus(ctx context.Context, exhibitionID uint) (domain.SetupStatus, error)
	ListSetupStatuses(ctx context.Context) ([]domain.SetupStatus, error)
	ConfirmSetup(ctx context.Context, exhibitionID, clerkID uint) (domain.SetupStatus, error)
	ConfirmTeardown(ctx context.Context, exhibitionID, clerkID uint) (domain.SetupStatus, error)
}

// RegistrationCounter is the slice of the registration repository the
// gallery views need for counters.
type RegistrationCounter interface {
	CountByStatus(ctx context.Context, status domain.RegistrationStatus) (int64, error)
	CountByExhibition(ctx context.Context, exhibitionID uint, status domain.RegistrationStatus) (int64, error)
	CountVisitors(ctx context.Context) (int64, error)
}

type GalleryService struct {
	repo          GalleryRepository
	registrations RegistrationCounter
	users         UserRepository
}

func NewGalleryService(repo GalleryRepository, registrations RegistrationCounter, users UserRepository) *GalleryService {
	return &GalleryService{
		repo:          repo,
		registrations: registrations,
		users:         users,
	}
}

// --- artists ---

func (s *GalleryService) CreateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	created, err := s.repo.CreateArtist(ctx, artist)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("s.repo.CreateArtist -> %w", err)
	}
	return created, nil
}

func (s *GalleryService) GetArtist(ctx context.Context, id uint) (domain.Artist, error) {
	artist, err := s.repo.GetArtist(ctx, id)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("s.repo.GetArtist -> %w", err)
	}
	return artist, nil
}

// GetArtistDetail returns the artist with their art pieces.
func (s *GalleryService) GetArtistDetail(ctx context.Context, id uint) (domain.Artist, []domain.ArtPiece, error) {
	artist, err := s.repo.GetArtist(ctx, id)
	if err != nil {
		return domain.Artist{}, nil, fmt.Errorf("s.repo.GetArtist -> %w", err)
	}

	pieces, err := s.repo.ListArtPieces(ctx, "", id, "")
	if err != nil {
		return domain.Artist{}, nil, fmt.Errorf("s.repo.ListArtPieces -> %w", err)
	}

	return artist, pieces, nil
}

func (s *GalleryService) ListArtists(ctx context.Context, search string) ([]domain.Artist, error) {
	artists, err := s.repo.ListArtists(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListArtists -> %w", err)
	}
	return artists, nil
}

func (s *GalleryService) UpdateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	updated, err := s.repo.UpdateArtist(ctx, artist)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("s.repo.UpdateArtist -> %w", err)
	}
	return updated, nil
}

func (s *GalleryService) DeleteArtist(ctx context.Context, id uint) error {
	if err := s.repo.DeleteArtist(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteArtist -> %w", err)
	}
	return nil
}

// --- art pieces ---

func (s *GalleryService) CreateArtPiece(ctx context.Context, piece domain.ArtPiece) (domain.ArtPiece, error) {
	if _, err := s.repo.GetArtist(ctx, piece.ArtistID); err != nil {
		return domain.ArtPiece{}, fmt.Errorf("s.repo.GetArtist -> %w", err)
	}

	if piece.Status == "" {
		piece.Status = domain.ArtPieceAvailable
	}

	created, err := s.repo.CreateArtPiece(ctx, piece)
	if err != nil {
		return domain.ArtPiece{}, fmt.Errorf("s.repo.CreateArtPiece -> %w", err)
	}
	return created, nil
}

func (s *GalleryService) GetArtPiece(ctx context.Context, id uint) (domain.ArtPiece, error) {
	piece, err := s.repo.GetArtPiece(ctx, id)
	if err != nil {
		return domain.ArtPiece{}, fmt.Errorf("s.repo.GetArtPiece -> %w", err)
	}
	return piece, nil
}

func (s *GalleryService) ListArtPieces(ctx context.Context, status domain.ArtPieceStatus, artistID uint, search string) ([]domain.ArtPiece, error) {
	pieces, err := s.repo.ListArtPieces(ctx, status, artistID, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListArtPieces -> %w", err)
	}
	return pieces, nil
}

func (s *GalleryService) UpdateArtPiece(ctx context.Context, piece domain.ArtPiece) (domain.ArtPiece, error) {
	updated, err := s.repo.UpdateArtPiece(ctx, piece)
	if err != nil {
		return domain.ArtPiece{}, fmt.Errorf("s.repo.UpdateArtPiece -> %w", err)
	}
	return updated, nil
}

func (s *GalleryService) DeleteArtPiece(ctx context.Context, id uint) error {
	if err := s.repo.DeleteArtPiece(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteArtPiece -> %w", err)
	}
	return nil
}

// --- exhibitions ---

func (s *GalleryService) CreateExhibition(ctx context.Context, exhibition domain.Exhibition) (domain.Exhibition, error) {
	if exhibition.Status == "" {
		exhibition.Status = domain.ExhibitionUpcoming
	}

	created, err := s.repo.CreateExhibition(ctx, exhibition)
	if err != nil {
		return domain.Exhibition{}, fmt.Errorf("s.repo.CreateExhibition -> %w", err)
	}
	return created, nil
}

func (s *GalleryService) GetExhibition(ctx context.Context, id uint) (domain.Exhibition, error) {
	exhibition, err := s.repo.GetExhibition(ctx, id)
	if err != nil {
		return domain.Exhibition{}, fmt.Errorf("s.repo.GetExhibition -> %w", err)
	}
	return exhibition, nil
}

// GetExhibitionDetail returns the exhibition with registration counters.
func (s *GalleryService) GetExhibitionDetail(ctx context.Context, id uint) (domain.ExhibitionDetail, error) {
	exhibition, err := s.repo.GetExhibition(ctx, id)
	if err != nil {
		return domain.ExhibitionDetail{}, fmt.Errorf("s.repo.GetExhibition -> %w", err)
	}

	total, err := s.registrations.CountByExhibition(ctx, id, "")
	if err != nil {
		return domain.ExhibitionDetail{}, fmt.Errorf("s.registrations.CountByExhibition -> %w", err)
	}
	pending, err := s.registrations.CountByExhibition(ctx, id, domain.RegistrationPending)
	if err != nil {
		return domain.ExhibitionDetail{}, fmt.Errorf("s.registrations.CountByExhibition -> %w", err)
	}
	approved, err := s.registrations.CountByExhibition(ctx, id, domain.RegistrationApproved)
	if err != nil {
		return domain.ExhibitionDetail{}, fmt.Errorf("s.registrations.CountByExhibition -> %w", err)
	}

	return domain.ExhibitionDetail{
		Exhibition:                 exhibition,
		RegistrationsCount:         int(total),
		PendingRegistrationsCount:  int(pending),
		ApprovedRegistrationsCount: int(approved),
	}, nil
}

func (s *GalleryService) ListExhibitions(ctx context.Context, status domain.ExhibitionStatus, search string) ([]domain.Exhibition, error) {
	exhibitions, err := s.repo.ListExhibitions(ctx, status, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListExhibitions -> %w", err)
	}
	return exhibitions, nil
}

func (s *GalleryService) UpdateExhibition(ctx context.Context, exhibition domain.Exhibition) (domain.Exhibition, error) {
	updated, err := s.repo.UpdateExhibition(ctx, exhibition)
	if err != nil {
		return domain.Exhibition{}, fmt.Errorf("s.repo.UpdateExhibition -> %w", err)
	}
	return updated, nil
}

func (s *GalleryService) DeleteExhibition(ctx context.Context, id uint) error {
	if err := s.repo.DeleteExhibition(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteExhibition -> %w", err)
	}
	return nil
}

func (s *GalleryService) AssignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error {
	if err := s.repo.AssignArtPiece(ctx, exhibitionID, artPieceID); err != nil {
		return fmt.Errorf("s.repo.AssignArtPiece -> %w", err)
	}
	return nil
}

func (s *GalleryService) UnassignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error {
	if err := s.repo.UnassignArtPiece(ctx, exhibitionID, artPieceID); err != nil {
		return fmt.Errorf("s.repo.UnassignArtPiece -> %w", err)
	}
	return nil
}

// --- setup / teardown ---

func (s *GalleryService) GetSetupStatus(ctx context.Context, exhibitionID uint) (domain.SetupStatus, error) {
	status, err := s.repo.GetSetupStatus(ctx, exhibitionID)
	if err != nil {
		return domain.SetupStatus{}, fmt.Errorf("s.repo.GetSetupStatus -> %w", err)
	}
	return status, nil
}

func (s *GalleryService) ListSetupStatuses(ctx context.Context) ([]domain.SetupStatus, error) {
	statuses, err := s.repo.ListSetupStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListSetupStatuses -> %w", err)
	}
	return statuses, nil
}

// ConfirmSetup runs the whole setup transition atomically: assigned art
// pieces become DISPLAYED, the setup status is recorded, the exhibition
// moves to ONGOING. There is no partial state to clean up on failure.
func (s *GalleryService) ConfirmSetup(ctx context.Context, exhibitionID uint, clerk domain.User) (domain.SetupStatus, error) {
	status, err := s.repo.ConfirmSetup(ctx, exhibitionID, clerk.ID)
	if err != nil {
		return domain.SetupStatus{}, fmt.Errorf("s.repo.ConfirmSetup -> %w", err)
	}
	return status, nil
}

// ConfirmTeardown is the atomic inverse transition; it requires a
// confirmed setup.
func (s *GalleryService) ConfirmTeardown(ctx context.Context, exhibitionID uint, clerk domain.User) (domain.SetupStatus, error) {
	status, err := s.repo.ConfirmTeardown(ctx, exhibitionID, clerk.ID)
	if err != nil {
		return domain.SetupStatus{}, fmt.Errorf("s.repo.ConfirmTeardown -> %w", err)
	}
	return status, nil
}

// --- dashboard ---

// DashboardStats assembles the role-graded counters. Visitors get the
// base block, clerks add registration counters, admins add user and
// art-piece status counters.
func (s *GalleryService) DashboardStats(ctx context.Context, role domain.Role) (map[string]int64, error) {
	stats := map[string]int64{}

	counters := []struct {
		key   string
		count func() (int64, error)
	}{
		{"total_artists", func() (int64, error) { return s.repo.CountArtists(ctx) }},
		{"total_exhibitions", func() (int64, error) { return s.repo.CountExhibitionsByStatus(ctx, "") }},
		{"total_visitors", func() (int64, error) { return s.registrations.CountVisitors(ctx) }},
		{"total_artpieces", func() (int64, error) { return s.repo.CountArtPiecesByStatus(ctx, "") }},
		{"ongoing_exhibitions", func() (int64, error) { return s.repo.CountExhibitionsByStatus(ctx, domain.ExhibitionOngoing) }},
		{"upcoming_exhibitions", func() (int64, error) { return s.repo.CountExhibitionsByStatus(ctx, domain.ExhibitionUpcoming) }},
	}

	if role.IsStaff() {
		counters = append(counters, []struct {
			key   string
			count func() (int64, error)
		}{
			{"total_registrations", func() (int64, error) { return s.registrations.CountByStatus(ctx, "") }},
			{"pending_registrations", func() (int64, error) { return s.registrations.CountByStatus(ctx, domain.RegistrationPending) }},
			{"confirmed_registrations", func() (int64, error) { return s.registrations.CountByStatus(ctx, domain.RegistrationApproved) }},
			{"rejected_registrations", func() (int64, error) { return s.registrations.CountByStatus(ctx, domain.RegistrationRejected) }},
		}...)
	}

	if role == domain.RoleAdmin {
		counters = append(counters, []struct {
			key   string
			count func() (int64, error)
		}{
			{"total_clerks", func() (int64, error) { return s.users.CountByRole(ctx, domain.RoleClerk) }},
			{"total_users", func() (int64, error) { return s.users.CountByRole(ctx, "") }},
			{"artpieces_available", func() (int64, error) { return s.repo.CountArtPiecesByStatus(ctx, domain.ArtPieceAvailable) }},
			{"artpieces_displayed", func() (int64, error) { return s.repo.CountArtPiecesByStatus(ctx, domain.ArtPieceDisplayed) }},
		}...)
	}

	for _, c := range counters {
		count, err := c.count()
		if err != nil {
			return nil, fmt.Errorf("dashboard counter %q -> %w", c.key, err)
		}
		stats[c.key] = count
	}

	return stats, nil
}
