package repository

import (
	"context"
	"fmt"

	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository/dao"
)

var (
	ErrArtistNotFound      = dao.ErrArtistNotFound
	ErrArtPieceNotFound    = dao.ErrArtPieceNotFound
	ErrExhibitionNotFound  = dao.ErrExhibitionNotFound
	ErrSetupStatusNotFound = dao.ErrSetupStatusNotFound

	ErrExhibitionNotUpcoming    = dao.ErrExhibitionNotUpcoming
	ErrNoArtPiecesAssigned      = dao.ErrNoArtPiecesAssigned
	ErrSetupAlreadyConfirmed    = dao.ErrSetupAlreadyConfirmed
	ErrSetupNotConfirmed        = dao.ErrSetupNotConfirmed
	ErrTeardownAlreadyConfirmed = dao.ErrTeardownAlreadyConfirmed
)

type GalleryDAO interface {
	InsertArtist(ctx context.Context, artist dao.Artist) (dao.Artist, error)
	FindArtistByID(ctx context.Context, id uint) (dao.Artist, error)
	ListArtists(ctx context.Context, search string) ([]dao.Artist, error)
	UpdateArtist(ctx context.Context, artist dao.Artist) (dao.Artist, error)
	DeleteArtist(ctx context.Context, id uint) error
	CountArtists(ctx context.Context) (int64, error)

	InsertArtPiece(ctx context.Context, piece dao.ArtPiece) (dao.ArtPiece, error)
	FindArtPieceByID(ctx context.Context, id uint) (dao.ArtPiece, error)
	ListArtPieces(ctx context.Context, status string, artistID uint, search string) ([]dao.ArtPiece, error)
	UpdateArtPiece(ctx context.Context, piece dao.ArtPiece) (dao.ArtPiece, error)
	DeleteArtPiece(ctx context.Context, id uint) error
	CountArtPiecesByStatus(ctx context.Context, status string) (int64, error)

	InsertExhibition(ctx context.Context, exhibition dao.Exhibition) (dao.Exhibition, error)
	FindExhibitionByID(ctx context.Context, id uint) (dao.Exhibition, error)
	ListExhibitions(ctx context.Context, status, search string) ([]dao.Exhibition, error)
	UpdateExhibition(ctx context.Context, exhibition dao.Exhibition) (dao.Exhibition, error)
	DeleteExhibition(ctx context.Context, id uint) error
	CountExhibitionsByStatus(ctx context.Context, status string) (int64, error)
	AssignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error
	UnassignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error

	FindSetupStatusByExhibition(ctx context.Context, exhibitionID uint) (dao.SetupStatus, error)
	ListSetupStatuses(ctx context.Context) ([]dao.SetupStatus, error)
	ConfirmSetup(ctx context.Context, exhibitionID, clerkID uint) (dao.SetupStatus, error)
	ConfirmTeardown(ctx context.Context, exhibitionID, clerkID uint) (dao.SetupStatus, error)
}

type GalleryRepository struct {
	dao GalleryDAO
}

func NewGalleryRepository(dao GalleryDAO) *GalleryRepository {
	return &GalleryRepository{
		dao: dao,
	}
}

// --- artists ---

func (r *GalleryRepository) CreateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	created, err := r.dao.InsertArtist(ctx, r.artistDomainToDao(artist))
	if err != nil {
		return domain.Artist{}, fmt.Errorf("r.dao.InsertArtist -> %w", err)
	}
	return r.artistDaoToDomain(created), nil
}

func (r *GalleryRepository) GetArtist(ctx context.Context, id uint) (domain.Artist, error) {
	found, err := r.dao.FindArtistByID(ctx, id)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("r.dao.FindArtistByID -> %w", err)
	}
	return r.artistDaoToDomain(found), nil
}

func (r *GalleryRepository) ListArtists(ctx context.Context, search string) ([]domain.Artist, error) {
	found, err := r.dao.ListArtists(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListArtists -> %w", err)
	}

	artists := make([]domain.Artist, len(found))
	for i, a := range found {
		artists[i] = r.artistDaoToDomain(a)
	}
	return artists, nil
}

func (r *GalleryRepository) UpdateArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	updated, err := r.dao.UpdateArtist(ctx, r.artistDomainToDao(artist))
	if err != nil {
		return domain.Artist{}, fmt.Errorf("r.dao.UpdateArtist -> %w", err)
	}
	return r.artistDaoToDomain(updated), nil
}

func (r *GalleryRepository) DeleteArtist(ctx context.Context, id uint) error {
	if err := r.dao.DeleteArtist(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteArtist -> %w", err)
	}
	return nil
}

func (r *GalleryRepository) CountArtists(ctx context.Context) (int64, error) {
	count, err := r.dao.CountArtists(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountArtists -> %w", err)
	}
	return count, nil
}

// --- art pieces ---

func (r *GalleryRepository) CreateArtPiece(ctx context.Context, piece domain.ArtPiece) (domain.ArtPiece, error) {
	created, err := r.dao.InsertArtPiece(ctx, r.artPieceDomainToDao(piece))
	if err != nil {
		return domain.ArtPiece{}, fmt.Errorf("r.dao.InsertArtPiece -> %w", err)
	}
	return r.artPieceDaoToDomain(created), nil
}

func (r *GalleryRepository) GetArtPiece(ctx context.Context, id uint) (domain.ArtPiece, error) {
	found, err := r.dao.FindArtPieceByID(ctx, id)
	if err != nil {
		return domain.ArtPiece{}, fmt.Errorf("r.dao.FindArtPieceByID -> %w", err)
	}
	return r.artPieceDaoToDomain(found), nil
}

func (r *GalleryRepository) ListArtPieces(ctx context.Context, status domain.ArtPieceStatus, artistID uint, search string) ([]domain.ArtPiece, error) {
	found, err := r.dao.ListArtPieces(ctx, string(status), artistID, search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListArtPieces -> %w", err)
	}

	pieces := make([]domain.ArtPiece, len(found))
	for i, p := range found {
		pieces[i] = r.artPieceDaoToDomain(p)
	}
	return pieces, nil
}

func (r *GalleryRepository) UpdateArtPiece(ctx context.Context, piece domain.ArtPiece) (domain.ArtPiece, error) {
	updated, err := r.dao.UpdateArtPiece(ctx, r.artPieceDomainToDao(piece))
	if err != nil {
		return domain.ArtPiece{}, fmt.Errorf("r.dao.UpdateArtPiece -> %w", err)
	}
	return r.artPieceDaoToDomain(updated), nil
}

func (r *GalleryRepository) DeleteArtPiece(ctx context.Context, id uint) error {
	if err := r.dao.DeleteArtPiece(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteArtPiece -> %w", err)
	}
	return nil
}

func (r *GalleryRepository) CountArtPiecesByStatus(ctx context.Context, status domain.ArtPieceStatus) (int64, error) {
	count, err := r.dao.CountArtPiecesByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountArtPiecesByStatus -> %w", err)
	}
	return count, nil
}

// --- exhibitions ---

func (r *GalleryRepository) CreateExhibition(ctx context.Context, exhibition domain.Exhibition) (domain.Exhibition, error) {
	created, err := r.dao.InsertExhibition(ctx, r.exhibitionDomainToDao(exhibition))
	if err != nil {
		return domain.Exhibition{}, fmt.Errorf("r.dao.InsertExhibition -> %w", err)
	}
	return r.exhibitionDaoToDomain(created), nil
}

func (r *GalleryRepository) GetExhibition(ctx context.Context, id uint) (domain.Exhibition, error) {
	found, err := r.dao.FindExhibitionByID(ctx, id)
	if err != nil {
		return domain.Exhibition{}, fmt.Errorf("r.dao.FindExhibitionByID -> %w", err)
	}
	return r.exhibitionDaoToDomain(found), nil
}

func (r *GalleryRepository) ListExhibitions(ctx context.Context, status domain.ExhibitionStatus, search string) ([]domain.Exhibition, error) {
	found, err := r.dao.ListExhibitions(ctx, string(status), search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListExhibitions -> %w", err)
	}

	exhibitions := make([]domain.Exhibition, len(found))
	for i, e := range found {
		exhibitions[i] = r.exhibitionDaoToDomain(e)
	}
	return exhibitions, nil
}

func (r *GalleryRepository) UpdateExhibition(ctx context.Context, exhibition domain.Exhibition) (domain.Exhibition, error) {
	updated, err := r.dao.UpdateExhibition(ctx, r.exhibitionDomainToDao(exhibition))
	if err != nil {
		return domain.Exhibition{}, fmt.Errorf("r.dao.UpdateExhibition -> %w", err)
	}
	return r.exhibitionDaoToDomain(updated), nil
}

func (r *GalleryRepository) DeleteExhibition(ctx context.Context, id uint) error {
	if err := r.dao.DeleteExhibition(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteExhibition -> %w", err)
	}
	return nil
}

func (r *GalleryRepository) CountExhibitionsByStatus(ctx context.Context, status domain.ExhibitionStatus) (int64, error) {
	count, err := r.dao.CountExhibitionsByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountExhibitionsByStatus -> %w", err)
	}
	return count, nil
}

func (r *GalleryRepository) AssignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error {
	if err := r.dao.AssignArtPiece(ctx, exhibitionID, artPieceID); err != nil {
		return fmt.Errorf("r.dao.AssignArtPiece -> %w", err)
	}
	return nil
}

func (r *GalleryRepository) UnassignArtPiece(ctx context.Context, exhibitionID, artPieceID uint) error {
	if err := r.dao.UnassignArtPiece(ctx, exhibitionID, artPieceID); err != nil {
		return fmt.Errorf("r.dao.UnassignArtPiece -> %w", err)
	}
	return nil
}

// --- setup statuses ---

func (r *GalleryRepository) GetSetupStatus(ctx context.Context, exhibitionID uint) (domain.SetupStatus, error) {
	found, err := r.dao.FindSetupStatusByExhibition(ctx, exhibitionID)
	if err != nil {
		return domain.SetupStatus{}, fmt.Errorf("r.dao.FindSetupStatusByExhibition -> %w", err)
	}
	return r.setupStatusDaoToDomain(found), nil
}

func (r *GalleryRepository) ListSetupStatuses(ctx context.Context) ([]domain.SetupStatus, error) {
	found, err := r.dao.ListSetupStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSetupStatuses -> %w", err)
	}

	statuses := make([]domain.SetupStatus, len(found))
	for i, s := range found {
		statuses[i] = r.setupStatusDaoToDomain(s)
	}
	return statuses, nil
}

func (r *GalleryRepository) ConfirmSetup(ctx context.Context, exhibitionID, clerkID uint) (domain.SetupStatus, error) {
	status, err := r.dao.ConfirmSetup(ctx, exhibitionID, clerkID)
	if err != nil {
		return domain.SetupStatus{}, fmt.Errorf("r.dao.ConfirmSetup -> %w", err)
	}
	return r.setupStatusDaoToDomain(status), nil
}

func (r *GalleryRepository) ConfirmTeardown(ctx context.Context, exhibitionID, clerkID uint) (domain.SetupStatus, error) {
	status, err := r.dao.ConfirmTeardown(ctx, exhibitionID, clerkID)
	if err != nil {
		return domain.SetupStatus{}, fmt.Errorf("r.dao.ConfirmTeardown -> %w", err)
	}
	return r.setupStatusDaoToDomain(status), nil
}

// --- converters ---

func (r *GalleryRepository) artistDomainToDao(a domain.Artist) dao.Artist {
	return dao.Artist{
		ID:          a.ID,
		Name:        a.Name,
		Bio:         a.Bio,
		ContactInfo: a.ContactInfo,
	}
}

func (r *GalleryRepository) artistDaoToDomain(a dao.Artist) domain.Artist {
	return domain.Artist{
		ID:          a.ID,
		Name:        a.Name,
		Bio:         a.Bio,
		ContactInfo: a.ContactInfo,
	}
}

func (r *GalleryRepository) artPieceDomainToDao(p domain.ArtPiece) dao.ArtPiece {
	return dao.ArtPiece{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		ArtistID:       p.ArtistID,
		EstimatedValue: p.EstimatedValue,
		Status:         string(p.Status),
	}
}

func (r *GalleryRepository) artPieceDaoToDomain(p dao.ArtPiece) domain.ArtPiece {
	return domain.ArtPiece{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		ArtistID:       p.ArtistID,
		ArtistName:     p.Artist.Name,
		EstimatedValue: p.EstimatedValue,
		Status:         domain.ArtPieceStatus(p.Status),
	}
}

func (r *GalleryRepository) exhibitionDomainToDao(e domain.Exhibition) dao.Exhibition {
	return dao.Exhibition{
		ID:        e.ID,
		Title:     e.Title,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		Status:    string(e.Status),
	}
}

func (r *GalleryRepository) exhibitionDaoToDomain(e dao.Exhibition) domain.Exhibition {
	pieces := make([]domain.ArtPiece, len(e.ArtPieces))
	for i, p := range e.ArtPieces {
		pieces[i] = r.artPieceDaoToDomain(p)
	}

	return domain.Exhibition{
		ID:        e.ID,
		Title:     e.Title,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		Status:    domain.ExhibitionStatus(e.Status),
		ArtPieces: pieces,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *GalleryRepository) setupStatusDaoToDomain(s dao.SetupStatus) domain.SetupStatus {
	return domain.SetupStatus{
		ID:                s.ID,
		ExhibitionID:      s.ExhibitionID,
		ClerkID:           s.ClerkID,
		SetupConfirmed:    s.SetupConfirmed,
		TeardownConfirmed: s.TeardownConfirmed,
		Timestamp:         s.Timestamp,
	}
}
