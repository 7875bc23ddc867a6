package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"
)

//go:generate mockgen -source=settings_usecase.go -destination=../adapter/http/handlers/mocks/settings_usecase_mock.go -package=mocks

const (
	// SettingsCatalogName is the catalog record that holds the application
	// settings. It travels with catalogs through export and import.
	SettingsCatalogName = "_settings"
	MaxSettingsBytes    = 64 << 10
)

type ISettingsUseCase interface {
	Get(ctx context.Context) (json.RawMessage, error)
	Put(ctx context.Context, raw json.RawMessage) error
}

// SettingsUseCase keeps one opaque JSON object of user preferences.
type SettingsUseCase struct {
	catalogs interfaces.ICatalogRepository
}

var _ ISettingsUseCase = (*SettingsUseCase)(nil)

func NewSettingsUseCase(catalogs interfaces.ICatalogRepository) *SettingsUseCase {
	return &SettingsUseCase{catalogs: catalogs}
}

// Get returns {} until settings are first saved.
func (u *SettingsUseCase) Get(ctx context.Context) (json.RawMessage, error) {
	c, err := u.catalogs.Get(ctx, SettingsCatalogName)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return json.RawMessage(`{}`), nil
	case err != nil:
		return nil, fmt.Errorf("settings: %w", err)
	}
	return c.Data, nil
}

func (u *SettingsUseCase) Put(ctx context.Context, raw json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	verr := &entities.ValidationError{}
	var obj map[string]json.RawMessage
	switch {
	case len(raw) > MaxSettingsBytes:
		verr.Add("settings", fmt.Sprintf("must not exceed %d bytes", MaxSettingsBytes))
	case len(raw) == 0 || raw[0] != '{' || json.Unmarshal(raw, &obj) != nil:
		verr.Add("settings", "must be a JSON object")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := u.catalogs.Put(ctx, entities.Catalog{Name: SettingsCatalogName, Data: buf.Bytes()}); err != nil {
		return timeoutOr(err, "settings: write")
	}
	log.Printf("[settings][usecase] saved keys=%d", len(obj))
	return nil
}
