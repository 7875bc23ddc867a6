package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/domain/pricing"

	"github.com/go-playground/validator/v10"
)

var (
	estimateIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)
)

// checkEstimateID trims id and rejects ids no backend can hold, so an odd
// id gets the same answer whichever store is configured.
func checkEstimateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !estimateIDPattern.MatchString(id) {
		return "", ErrInvalidEstimateID
	}
	return id, nil
}

// EstimateValidator runs the schema rules (struct tags) and the business
// rules (dates, prices, percentages) of an estimate and reports every
// failing field by its JSON path.
type EstimateValidator struct {
	v *validator.Validate
}

func NewEstimateValidator() *EstimateValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &EstimateValidator{v: v}
}

// Validate returns nil or *entities.ValidationError.
func (ev *EstimateValidator) Validate(e entities.Estimate) error {
	verr := &entities.ValidationError{}
	seen := map[string]bool{}
	add := func(field, msg string) {
		if seen[field] {
			return
		}
		seen[field] = true
		verr.Add(field, msg)
	}

	if e.ID != "" && !estimateIDPattern.MatchString(e.ID) {
		add("id", "may only contain letters, digits, '-' and '_' (max 128)")
	}

	ev.collect(e, add)

	start, startErr := time.Parse(entities.DateLayout, e.TourStart)
	if e.TourStart != "" && startErr != nil {
		add("tour_start", "must be a date in YYYY-MM-DD format")
	}
	end, endErr := time.Parse(entities.DateLayout, e.TourEnd)
	if e.TourEnd != "" && endErr != nil {
		add("tour_end", "must be a date in YYYY-MM-DD format")
	}
	if startErr == nil && endErr == nil && start.After(end) {
		add("tour_end", "must not be before tour_start")
	}

	var perr *entities.ValidationError
	if err := pricing.Validate(e.Services, e.Pricing, e.Pax); errors.As(err, &perr) {
		for _, f := range perr.Fields {
			add(f.Field, f.Message)
		}
	}
	return verr.OrNil()
}

// ValidateStruct applies only the struct tag rules to any record.
func (ev *EstimateValidator) ValidateStruct(v any) []entities.FieldError {
	var out []entities.FieldError
	ev.collect(v, func(field, msg string) {
		out = append(out, entities.FieldError{Field: field, Message: msg})
	})
	return out
}

func (ev *EstimateValidator) collect(v any, add func(field, msg string)) {
	err := ev.v.Struct(v)
	if err == nil {
		return
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		add("", err.Error())
		return
	}
	for _, fe := range fes {
		add(fieldPath(fe.Namespace()), tagMessage(fe))
	}
}

// fieldPath drops the root type name: "Estimate.customer.name" -> "customer.name".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
