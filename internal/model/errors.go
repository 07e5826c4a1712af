package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ErrValidation is the sentinel every ValidationError unwraps to.
var ErrValidation = errors.New("validation error")

// FieldError describes a validation problem on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a local, recoverable input error.  The rejected value
// is never applied.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// NewValidationErrors creates a ValidationError from several field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// IntegrityWarning reports a non-fatal consistency issue, such as seats
// left pointing at a deleted category.  It is returned as a value, not as
// an error.
type IntegrityWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ValidateLayout checks the fields that must hold before a layout is saved.
// Length limits match the column sizes of the layout tables.
func ValidateLayout(l Layout) error {
	var errs []FieldError
	name := strings.TrimSpace(l.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "layout name is required"})
	} else if utf8.RuneCountInString(name) > MaxNameLen {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxNameLen)})
	}
	if !CanvasSizeValid(l.CanvasW) {
		errs = append(errs, FieldError{Field: "canvasW", Message: fmt.Sprintf("must be between %d and %d", MinCanvasSize, MaxCanvasSize)})
	}
	if !CanvasSizeValid(l.CanvasH) {
		errs = append(errs, FieldError{Field: "canvasH", Message: fmt.Sprintf("must be between %d and %d", MinCanvasSize, MaxCanvasSize)})
	}

	seen := make(map[string]struct{}, len(l.Items))
	for _, it := range l.Items {
		if msg := itemProblem(it, seen); msg != "" {
			errs = append(errs, FieldError{Field: "items", Message: msg})
			break // one item error is enough to reject the save
		}
		seen[it.ID] = struct{}{}
	}

	cats := make(map[string]struct{}, len(l.Categories))
	for _, c := range l.Categories {
		if msg := categoryProblem(c, cats); msg != "" {
			errs = append(errs, FieldError{Field: "categories", Message: msg})
			break
		}
		cats[c.ID] = struct{}{}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// itemProblem describes the first thing wrong with it, or returns "".
func itemProblem(it LayoutItem, seen map[string]struct{}) string {
	switch {
	case it.ID == "":
		return "item id is required"
	case len(it.ID) > MaxIDLen:
		return fmt.Sprintf("item id %.16s... is longer than %d bytes", it.ID, MaxIDLen)
	}
	if _, dup := seen[it.ID]; dup {
		return "duplicate item id " + it.ID
	}
	if !it.Type.Valid() {
		return "unknown item type " + string(it.Type)
	}
	for _, v := range []float64{it.X, it.Y, it.W, it.H, it.Rotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "item " + it.ID + " has a non-finite position, size or rotation"
		}
	}
	switch {
	case it.W < MinItemSize || it.H < MinItemSize:
		return fmt.Sprintf("item %s is smaller than %gx%g", it.ID, MinItemSize, MinItemSize)
	case it.Rotation < 0 || it.Rotation >= 360:
		return "item " + it.ID + " rotation must be in [0, 360)"
	case it.Shape != "" && !it.Shape.Valid():
		return "item " + it.ID + " has unknown table shape " + string(it.Shape)
	case it.TableSeats < 0:
		return "item " + it.ID + " table seats must not be negative"
	case utf8.RuneCountInString(it.Label) > MaxLabelLen:
		return fmt.Sprintf("item %s label is longer than %d characters", it.ID, MaxLabelLen)
	case len(it.CategoryID) > MaxIDLen:
		return fmt.Sprintf("item %s category id is longer than %d bytes", it.ID, MaxIDLen)
	case utf8.RuneCountInString(it.RowLabel) > MaxRowLabelLen:
		return fmt.Sprintf("item %s row label is longer than %d characters", it.ID, MaxRowLabelLen)
	}
	return ""
}

func categoryProblem(c SeatCategory, seen map[string]struct{}) string {
	if c.ID == "" {
		return "category id is required"
	}
	if _, dup := seen[c.ID]; dup {
		return "duplicate category id " + c.ID
	}
	if err := c.Validate(); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return "category " + c.ID + ": " + ve.Errors[0].Field + " " + ve.Errors[0].Message
		}
		return err.Error()
	}
	return ""
}
