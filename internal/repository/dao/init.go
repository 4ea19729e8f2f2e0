package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Artist{},
		&ArtPiece{},
		&Exhibition{},
		&ExhibitionArtPiece{},
		&SetupStatus{},
		&Visitor{},
		&Registration{},
	)
	if err != nil {
		return err
	}

	// One active (PENDING or APPROVED) registration per visitor and
	// exhibition. Partial indexes cannot be expressed with gorm tags.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_active_registration
		 ON registrations (visitor_id, exhibition_id)
		 WHERE status IN ('PENDING', 'APPROVED')`,
	).Error
}
