// Package sqlstore keeps estimates, backups and catalogs in a relational
// database through gorm. The same code serves the embedded sqlite file and
// a postgres server.
//
// Bodies are stored as canonical JSON; the remaining columns exist only for
// listing, ordering and the optimistic version check.
package sqlstore

import (
	"fmt"
	"log"
	"time"

	"quote_calculator/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type estimateRow struct {
	ID          string `gorm:"primaryKey;size:128"`
	Version     string `gorm:"size:32;not null"`
	VersionRank int64  `gorm:"not null"`
	ClientName  string `gorm:"size:200;index"`
	Pax         int
	TourStart   string `gorm:"size:10"`
	UpdatedUnix int64  `gorm:"index;not null"`
	Data        string `gorm:"type:text;not null"`
}

func (estimateRow) TableName() string { return "estimates" }

type backupRow struct {
	ID          string `gorm:"primaryKey;size:200"`
	EstimateID  string `gorm:"size:128;not null;uniqueIndex:idx_backup_version,priority:1"`
	Version     string `gorm:"size:32;not null;uniqueIndex:idx_backup_version,priority:2"`
	VersionRank int64  `gorm:"not null"`
	CreatedUnix int64  `gorm:"not null"`
	Data        string `gorm:"type:text;not null"`
}

func (backupRow) TableName() string { return "estimate_backups" }

type catalogRow struct {
	Name string `gorm:"primaryKey;size:255"`
	Data string `gorm:"type:text;not null"`
}

func (catalogRow) TableName() string { return "catalogs" }

type Store struct {
	db   *gorm.DB
	kind string

	estimates *EstimateSQLRepository
	backups   *BackupSQLRepository
	catalogs  *CatalogSQLRepository
}

var _ interfaces.IStore = (*Store)(nil)

// New migrates the schema and returns a store reporting kind as its
// storage type ("sqlite" or "postgres").
func New(db *gorm.DB, kind string) (*Store, error) {
	if err := db.AutoMigrate(&estimateRow{}, &backupRow{}, &catalogRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s := &Store{db: db, kind: kind}
	s.estimates = &EstimateSQLRepository{db: db}
	s.backups = &BackupSQLRepository{db: db}
	s.catalogs = &CatalogSQLRepository{db: db}
	log.Printf("[storage][%s] schema ready", kind)
	return s, nil
}

func (s *Store) Estimates() interfaces.IEstimateRepository { return s.estimates }
func (s *Store) Backups() interfaces.IBackupRepository     { return s.backups }
func (s *Store) Catalogs() interfaces.ICatalogRepository   { return s.catalogs }
func (s *Store) Kind() string                              { return s.kind }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func unixUTC(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
