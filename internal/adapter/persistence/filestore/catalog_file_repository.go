package filestore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"
)

type CatalogFileRepository struct {
	store *Store
}

var _ interfaces.ICatalogRepository = (*CatalogFileRepository)(nil)

func (r *CatalogFileRepository) path(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidKey
	}
	return filepath.Join(r.store.catalogDir, base64.RawURLEncoding.EncodeToString([]byte(name))+".json"), nil
}

func (r *CatalogFileRepository) Get(_ context.Context, name string) (entities.Catalog, error) {
	p, err := r.path(name)
	if err != nil {
		return entities.Catalog{}, err
	}
	var c entities.Catalog
	if err := readJSON(p, &c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.Catalog{}, entities.ErrNotFound
		}
		return entities.Catalog{}, err
	}
	return c, nil
}

func (r *CatalogFileRepository) Put(_ context.Context, c entities.Catalog) error {
	p, err := r.path(c.Name)
	if err != nil {
		return err
	}
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return writeFileAtomic(p, b)
}

func (r *CatalogFileRepository) List(_ context.Context) ([]entities.Catalog, error) {
	entries, err := os.ReadDir(r.store.catalogDir)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Catalog, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, tempPrefix) {
			continue
		}
		var c entities.Catalog
		if err := readJSON(filepath.Join(r.store.catalogDir, name), &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CatalogFileRepository) Delete(_ context.Context, name string) error {
	p, err := r.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.ErrNotFound
		}
		return err
	}
	return nil
}
