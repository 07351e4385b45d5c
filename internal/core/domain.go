package core

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	CategoryFood          Category = "食品"
	CategoryTransport     Category = "交通"
	CategoryEntertainment Category = "娱乐"
	CategoryShopping      Category = "购物"
	CategoryHousing       Category = "居住"
	CategoryOther         Category = "其他"
)

const (
	MinDescriptionLen = 2
	MaxDescriptionLen = 50

	// MaxAmountCents caps a single entry at 10000.00 yuan.
	MaxAmountCents int64 = 10000 * 100
)

type (
	// Category is one of a fixed, closed set of labels. Free text is not
	// accepted anywhere.
	Category string

	Money struct {
		Cents int64
	}

	// Entry is one accepted expense record. The ID is assigned by the
	// store at append time and is immutable afterwards.
	Entry struct {
		ID          string
		Description string
		Amount      Money
		Category    Category
	}
)

// categories holds the closed enumeration in display order.
var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHousing,
	CategoryOther,
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// FieldErrorCode classifies a single-field validation failure.
type FieldErrorCode string

const (
	RequiredField FieldErrorCode = "required"
	TooShort      FieldErrorCode = "too_short"
	TooLong       FieldErrorCode = "too_long"
	OutOfRange    FieldErrorCode = "out_of_range"
)

// Field names used as FieldErrors keys.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
)

// FieldErrors maps field names to the validation code hit for that field.
// A nil map means the input passed.
type FieldErrors map[string]FieldErrorCode

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fe))
	for field, code := range fe {
		parts = append(parts, field+": "+string(code))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// Has reports whether the given field failed validation.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmountCents {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the static field rules and returns per-field codes.
// Returns nil when every field passes.
func (e Entry) Validate() FieldErrors {
	errs := FieldErrors{}

	desc := strings.TrimSpace(e.Description)
	switch {
	case desc == "":
		errs[FieldDescription] = RequiredField
	case utf8.RuneCountInString(desc) < MinDescriptionLen:
		errs[FieldDescription] = TooShort
	case utf8.RuneCountInString(desc) > MaxDescriptionLen:
		errs[FieldDescription] = TooLong
	}

	switch {
	case e.Amount.Cents == 0:
		errs[FieldAmount] = RequiredField
	case e.Amount.Cents < 0 || e.Amount.Cents > MaxAmountCents:
		errs[FieldAmount] = OutOfRange
	}

	// An unknown label and a missing one are the same failure: the value
	// is not a member of the closed set.
	if !e.Category.Valid() {
		errs[FieldCategory] = RequiredField
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
