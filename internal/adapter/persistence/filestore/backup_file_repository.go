package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"
)

type BackupFileRepository struct {
	store *Store
}

var _ interfaces.IBackupRepository = (*BackupFileRepository)(nil)

func (r *BackupFileRepository) path(estimateID string, v entities.Version) string {
	return filepath.Join(r.store.backupDir, estimateID, v.String()+".json")
}

func (r *BackupFileRepository) Append(_ context.Context, s entities.BackupSnapshot) error {
	if err := checkID(s.EstimateID); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(r.store.backupDir, s.EstimateID), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := createFileExclusive(r.path(s.EstimateID, s.Version), b); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return entities.ErrConflict
		}
		return err
	}
	return nil
}

func (r *BackupFileRepository) Get(_ context.Context, estimateID string, version entities.Version) (entities.BackupSnapshot, error) {
	if !validID.MatchString(estimateID) {
		return entities.BackupSnapshot{}, entities.ErrNotFound
	}
	var s entities.BackupSnapshot
	if err := readJSON(r.path(estimateID, version), &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.BackupSnapshot{}, entities.ErrNotFound
		}
		return entities.BackupSnapshot{}, err
	}
	return s, nil
}

func (r *BackupFileRepository) ListByEstimateID(_ context.Context, estimateID string) ([]entities.BackupSnapshot, error) {
	if !validID.MatchString(estimateID) {
		return nil, nil
	}
	out, err := r.readDir(filepath.Join(r.store.backupDir, estimateID))
	if err != nil {
		return nil, err
	}
	sortSnapshots(out)
	return out, nil
}

func (r *BackupFileRepository) ListAll(_ context.Context) ([]entities.BackupSnapshot, error) {
	dirs, err := os.ReadDir(r.store.backupDir)
	if err != nil {
		return nil, err
	}
	var out []entities.BackupSnapshot
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		snaps, err := r.readDir(filepath.Join(r.store.backupDir, d.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, snaps...)
	}
	sortSnapshots(out)
	return out, nil
}

func (r *BackupFileRepository) Discard(_ context.Context, estimateID string, version entities.Version) error {
	if !validID.MatchString(estimateID) {
		return nil
	}
	if err := os.Remove(r.path(estimateID, version)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (r *BackupFileRepository) readDir(dir string) ([]entities.BackupSnapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]entities.BackupSnapshot, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, tempPrefix) {
			continue
		}
		var s entities.BackupSnapshot
		if err := readJSON(filepath.Join(dir, name), &s); err != nil {
			log.Printf("[storage][file] skipping unreadable backup file=%s err=%v", filepath.Join(dir, name), err)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func sortSnapshots(s []entities.BackupSnapshot) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].EstimateID != s[j].EstimateID {
			return s[i].EstimateID < s[j].EstimateID
		}
		return s[i].Version.Compare(s[j].Version) < 0
	})
}
