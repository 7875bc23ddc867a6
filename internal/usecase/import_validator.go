package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quote_calculator/internal/domain/entities"
)

const (
	sectionPayload   = "payload"
	sectionEstimates = "estimates"
	sectionCatalogs  = "catalogs"
	sectionBackups   = "backups"
)

// importEnvelope keeps every record raw so each one is decoded, and
// reported, on its own.
type importEnvelope struct {
	FormatVersion string            `json:"format_version"`
	ExportedAt    *time.Time        `json:"exported_at"`
	StorageType   string            `json:"storage_type"`
	Estimates     []json.RawMessage `json:"estimates"`
	Catalogs      []json.RawMessage `json:"catalogs"`
	Backups       []json.RawMessage `json:"backups"`
}

// ImportValidator turns a bulk payload into typed records, or rejects it
// with one RecordError per offending record field. It never touches storage.
type ImportValidator struct {
	estimates *EstimateValidator
}

func NewImportValidator(ev *EstimateValidator) *ImportValidator {
	return &ImportValidator{estimates: ev}
}

func (iv *ImportValidator) Decode(raw []byte) (entities.TransferPayload, error) {
	var env importEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return entities.TransferPayload{}, &entities.ImportSchemaError{Records: []entities.RecordError{{
			Section: sectionPayload, Index: -1, Message: "malformed JSON: " + err.Error(),
		}}}
	}

	var errs []entities.RecordError
	if env.Estimates == nil {
		errs = append(errs, entities.RecordError{Section: sectionPayload, Index: -1, Field: "estimates", Message: "is required"})
	}
	if env.FormatVersion != "" && !strings.HasPrefix(env.FormatVersion, "2.") {
		errs = append(errs, entities.RecordError{
			Section: sectionPayload, Index: -1, Field: "format_version",
			Message: fmt.Sprintf("unsupported format %q, want 2.x", env.FormatVersion),
		})
	}

	out := entities.TransferPayload{
		FormatVersion: env.FormatVersion,
		ExportedAt:    env.ExportedAt,
		StorageType:   env.StorageType,
		Estimates:     make([]entities.Estimate, 0, len(env.Estimates)),
		Catalogs:      make([]entities.Catalog, 0, len(env.Catalogs)),
		Backups:       make([]entities.BackupSnapshot, 0, len(env.Backups)),
	}

	seenEstimates := map[string]int{}
	for i, rec := range env.Estimates {
		var e entities.Estimate
		if err := decodeStrict(rec, &e); err != nil {
			errs = append(errs, entities.RecordError{Section: sectionEstimates, Index: i, Message: err.Error()})
			continue
		}
		recErr := func(field, msg string) {
			errs = append(errs, entities.RecordError{Section: sectionEstimates, Index: i, ID: e.ID, Field: field, Message: msg})
		}
		if e.ID == "" {
			recErr("id", "is required")
		} else if first, dup := seenEstimates[e.ID]; dup {
			recErr("id", fmt.Sprintf("duplicates estimates[%d]", first))
		} else {
			seenEstimates[e.ID] = i
		}
		if e.Version.IsZero() {
			recErr("version", "is required")
		}
		var verr *entities.ValidationError
		if err := iv.estimates.Validate(e); errors.As(err, &verr) {
			for _, f := range verr.Fields {
				recErr(f.Field, f.Message)
			}
		}
		out.Estimates = append(out.Estimates, e)
	}

	seenCatalogs := map[string]int{}
	for i, rec := range env.Catalogs {
		var c entities.Catalog
		if err := decodeStrict(rec, &c); err != nil {
			errs = append(errs, entities.RecordError{Section: sectionCatalogs, Index: i, Message: err.Error()})
			continue
		}
		for _, f := range iv.estimates.ValidateStruct(c) {
			errs = append(errs, entities.RecordError{Section: sectionCatalogs, Index: i, ID: c.Name, Field: f.Field, Message: f.Message})
		}
		if c.Name == SettingsCatalogName {
			if data := bytes.TrimSpace(c.Data); len(data) > 0 && data[0] != '{' {
				errs = append(errs, entities.RecordError{Section: sectionCatalogs, Index: i, ID: c.Name, Field: "data", Message: "settings must be a JSON object"})
			}
		}
		if first, dup := seenCatalogs[c.Name]; dup && c.Name != "" {
			errs = append(errs, entities.RecordError{Section: sectionCatalogs, Index: i, ID: c.Name, Field: "name", Message: fmt.Sprintf("duplicates catalogs[%d]", first)})
		} else {
			seenCatalogs[c.Name] = i
		}
		out.Catalogs = append(out.Catalogs, c)
	}

	seenBackups := map[string]int{}
	for i, rec := range env.Backups {
		var s entities.BackupSnapshot
		if err := decodeStrict(rec, &s); err != nil {
			errs = append(errs, entities.RecordError{Section: sectionBackups, Index: i, Message: err.Error()})
			continue
		}
		recErr := func(field, msg string) {
			errs = append(errs, entities.RecordError{Section: sectionBackups, Index: i, ID: s.EstimateID, Field: field, Message: msg})
		}
		for _, f := range iv.estimates.ValidateStruct(s) {
			recErr(f.Field, f.Message)
		}
		if s.EstimateID != "" && !estimateIDPattern.MatchString(s.EstimateID) {
			recErr("estimate_id", "may only contain letters, digits, '-' and '_' (max 128)")
		}
		if s.Version.IsZero() {
			recErr("version", "is required")
		}
		if len(s.Body) > 0 {
			if body, err := s.Estimate(); err != nil {
				recErr("body", "is not a valid estimate: "+err.Error())
			} else if body.ID != s.EstimateID {
				recErr("body.id", "must match estimate_id")
			}
		}
		key := s.EstimateID + "@" + s.Version.String()
		if first, dup := seenBackups[key]; dup {
			recErr("version", fmt.Sprintf("duplicates backups[%d]", first))
		} else {
			seenBackups[key] = i
		}
		out.Backups = append(out.Backups, s)
	}

	if len(errs) > 0 {
		return entities.TransferPayload{}, &entities.ImportSchemaError{Records: errs}
	}
	return out, nil
}

func decodeStrict(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return nil
}
