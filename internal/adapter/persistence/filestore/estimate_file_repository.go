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

type EstimateFileRepository struct {
	store *Store
}

var _ interfaces.IEstimateRepository = (*EstimateFileRepository)(nil)

func (r *EstimateFileRepository) path(id string) string {
	return filepath.Join(r.store.estimateDir, id+".json")
}

func (r *EstimateFileRepository) Get(_ context.Context, id string) (entities.Estimate, error) {
	if !validID.MatchString(id) {
		return entities.Estimate{}, entities.ErrNotFound
	}
	var e entities.Estimate
	if err := readJSON(r.path(id), &e); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.Estimate{}, entities.ErrNotFound
		}
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateFileRepository) Put(ctx context.Context, e entities.Estimate) error {
	if err := checkID(e.ID); err != nil {
		return err
	}
	r.store.writeMu.Lock()
	defer r.store.writeMu.Unlock()

	current, err := r.Get(ctx, e.ID)
	switch {
	case err == nil:
		if current.Version.Compare(e.Version) >= 0 {
			return entities.ErrConflict
		}
	case !errors.Is(err, entities.ErrNotFound):
		return err
	}
	return r.write(e)
}

func (r *EstimateFileRepository) Replace(_ context.Context, e entities.Estimate) error {
	if err := checkID(e.ID); err != nil {
		return err
	}
	r.store.writeMu.Lock()
	defer r.store.writeMu.Unlock()
	return r.write(e)
}

func (r *EstimateFileRepository) write(e entities.Estimate) error {
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path(e.ID), b)
}

func (r *EstimateFileRepository) List(_ context.Context) ([]entities.EstimateSummary, error) {
	entries, err := os.ReadDir(r.store.estimateDir)
	if err != nil {
		return nil, err
	}
	out := make([]entities.EstimateSummary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, tempPrefix) {
			continue
		}
		var e entities.Estimate
		if err := readJSON(filepath.Join(r.store.estimateDir, name), &e); err != nil {
			log.Printf("[storage][file] skipping unreadable estimate file=%s err=%v", name, err)
			continue
		}
		out = append(out, e.Summary())
	}
	sortSummaries(out)
	return out, nil
}

func (r *EstimateFileRepository) Delete(_ context.Context, id string) error {
	if !validID.MatchString(id) {
		return entities.ErrNotFound
	}
	r.store.writeMu.Lock()
	defer r.store.writeMu.Unlock()
	if err := os.Remove(r.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.ErrNotFound
		}
		return err
	}
	return nil
}

func sortSummaries(s []entities.EstimateSummary) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].UpdatedAt.Equal(s[j].UpdatedAt) {
			return s[i].UpdatedAt.After(s[j].UpdatedAt)
		}
		return s[i].ID < s[j].ID
	})
}
