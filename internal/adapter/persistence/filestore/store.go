// Package filestore keeps one JSON file per estimate, an append-only
// backup tree and one file per catalog under a root directory:
//
//	estimate/<id>.json
//	backup/<id>/<version>.json
//	catalog/<base64url(name)>.json
//
// Every write goes to a temp file in the target directory, is fsynced and
// then renamed (or hard-linked for backups) into place, so readers never
// observe a partially written record.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"quote_calculator/internal/usecase/interfaces"
)

const (
	Kind       = "file"
	tempPrefix = ".tmp_"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

var ErrInvalidKey = errors.New("invalid record key")

type Store struct {
	estimateDir string
	backupDir   string
	catalogDir  string

	// writeMu serializes read-compare-write cycles inside this process.
	writeMu sync.Mutex

	estimates *EstimateFileRepository
	backups   *BackupFileRepository
	catalogs  *CatalogFileRepository
}

var _ interfaces.IStore = (*Store)(nil)

func New(root string) (*Store, error) {
	s := &Store{
		estimateDir: filepath.Join(root, "estimate"),
		backupDir:   filepath.Join(root, "backup"),
		catalogDir:  filepath.Join(root, "catalog"),
	}
	for _, dir := range []string{s.estimateDir, s.backupDir, s.catalogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	s.estimates = &EstimateFileRepository{store: s}
	s.backups = &BackupFileRepository{store: s}
	s.catalogs = &CatalogFileRepository{store: s}
	log.Printf("[storage][file] initialized root=%s", root)
	return s, nil
}

func (s *Store) Estimates() interfaces.IEstimateRepository { return s.estimates }
func (s *Store) Backups() interfaces.IBackupRepository     { return s.backups }
func (s *Store) Catalogs() interfaces.ICatalogRepository   { return s.catalogs }
func (s *Store) Kind() string                              { return Kind }
func (s *Store) Close() error                              { return nil }

func checkID(id string) error {
	if !validID.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, id)
	}
	return nil
}

// writeTemp writes data to a synced temp file inside dir and returns its path.
func writeTemp(dir string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// writeFileAtomic replaces path with data.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := writeTemp(filepath.Dir(path), data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// createFileExclusive publishes data at path only if nothing exists there yet.
func createFileExclusive(path string, data []byte) error {
	tmp, err := writeTemp(filepath.Dir(path), data)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)
	return os.Link(tmp, path)
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
