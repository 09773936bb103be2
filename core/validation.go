package core

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode"
)

// FieldError is a single field-scoped validation failure. Sets of these are
// surfaced inline on the originating form and never logged as errors.
type FieldError struct {
	Field   string
	Message string
}

// RegistrationForm carries the registration submission. Validate normalizes
// the non-secret fields in place so redisplayed values match what will be
// stored.
type RegistrationForm struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// Validate runs every rule and collects all violations; it is not fail-fast.
func (f *RegistrationForm) Validate() []FieldError {
	var errs []FieldError
	f.Firstname = strings.TrimSpace(f.Firstname)
	f.Lastname = strings.TrimSpace(f.Lastname)
	f.Email = normalizeEmail(f.Email)

	if f.Firstname == "" {
		errs = append(errs, FieldError{"account_firstname", "Please provide a first name."})
	}
	if len(f.Lastname) < 2 {
		errs = append(errs, FieldError{"account_lastname", "Please provide a last name."})
	}
	if !validEmail(f.Email) {
		errs = append(errs, FieldError{"account_email", "A valid email is required."})
	}
	if !strongPassword(f.Password) {
		errs = append(errs, FieldError{"account_password", "Password does not meet requirements."})
	}
	return errs
}

// LoginForm carries the login submission.
type LoginForm struct {
	Email    string
	Password string
}

func (f *LoginForm) Validate() []FieldError {
	var errs []FieldError
	f.Email = normalizeEmail(f.Email)

	if !validEmail(f.Email) {
		errs = append(errs, FieldError{"account_email", "Please enter a valid email address."})
	}
	if strings.TrimSpace(f.Password) == "" {
		errs = append(errs, FieldError{"account_password", "Please provide your password."})
	}
	return errs
}

// UpdateAccountForm carries the profile update submission.
type UpdateAccountForm struct {
	Firstname string
	Lastname  string
	Email     string
	AccountID int64
}

// Validate collects field violations including the email uniqueness lookup.
// The rule passes when the email is unclaimed or belongs to the account
// being updated (self-email allowed).
func (f *UpdateAccountForm) Validate(ctx context.Context, accounts AccountRepository) ([]FieldError, error) {
	var errs []FieldError
	f.Firstname = strings.TrimSpace(f.Firstname)
	f.Lastname = strings.TrimSpace(f.Lastname)
	f.Email = normalizeEmail(f.Email)

	if f.Firstname == "" {
		errs = append(errs, FieldError{"account_firstname", "Please provide a first name."})
	}
	if len(f.Lastname) < 2 {
		errs = append(errs, FieldError{"account_lastname", "Please provide a last name."})
	}
	if !validEmail(f.Email) {
		errs = append(errs, FieldError{"account_email", "A valid email is required."})
	} else {
		existing, err := accounts.GetByEmail(ctx, f.Email)
		switch {
		case err == nil && existing.ID != f.AccountID:
			errs = append(errs, FieldError{"account_email", "Email exists. Please use a different email."})
		case err != nil && !errors.Is(err, ErrAccountNotFound):
			return nil, err
		}
	}
	return errs, nil
}

// PasswordForm carries the change-password submission.
type PasswordForm struct {
	Password  string
	AccountID int64
}

func (f *PasswordForm) Validate() []FieldError {
	if !strongPassword(f.Password) {
		return []FieldError{{"account_password", "Password does not meet requirements."}}
	}
	return nil
}

// ClassificationForm carries the add-classification submission.
type ClassificationForm struct {
	Name string
}

func (f *ClassificationForm) Validate() []FieldError {
	var errs []FieldError
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" || !alphanumeric(f.Name) {
		errs = append(errs, FieldError{"classification_name", "Classification name must be letters and numbers only, no spaces."})
	}
	return errs
}

// VehicleForm carries the add-inventory submission; numeric fields arrive as
// the raw form strings and are parsed during validation.
type VehicleForm struct {
	ClassificationID string
	Make             string
	Model            string
	Year             string
	Description      string
	Image            string
	Thumbnail        string
	Price            string
	Miles            string
	Color            string
}

// Validate collects violations and, when clean, returns the typed record.
func (f *VehicleForm) Validate() (VehicleRecord, []FieldError) {
	var errs []FieldError
	var v VehicleRecord

	f.Make = strings.TrimSpace(f.Make)
	f.Model = strings.TrimSpace(f.Model)
	f.Color = strings.TrimSpace(f.Color)
	f.Description = strings.TrimSpace(f.Description)

	classificationID, err := strconv.ParseInt(strings.TrimSpace(f.ClassificationID), 10, 64)
	if err != nil || classificationID <= 0 {
		errs = append(errs, FieldError{"classification_id", "Please choose a classification."})
	}
	if f.Make == "" {
		errs = append(errs, FieldError{"inv_make", "Please provide a make."})
	}
	if f.Model == "" {
		errs = append(errs, FieldError{"inv_model", "Please provide a model."})
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.Year))
	if err != nil || year < 1000 || year > 9999 {
		errs = append(errs, FieldError{"inv_year", "Year must be 4 digits."})
	}
	price, err := strconv.ParseInt(strings.TrimSpace(f.Price), 10, 64)
	if err != nil || price < 0 {
		errs = append(errs, FieldError{"inv_price", "Price must be a whole number."})
	}
	miles, err := strconv.ParseInt(strings.TrimSpace(f.Miles), 10, 64)
	if err != nil || miles < 0 {
		errs = append(errs, FieldError{"inv_miles", "Miles must be a whole number."})
	}
	if f.Color == "" {
		errs = append(errs, FieldError{"inv_color", "Please provide a color."})
	}
	if len(errs) > 0 {
		return VehicleRecord{}, errs
	}

	v = VehicleRecord{
		ClassificationID: classificationID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
	}
	return v, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// strongPassword requires length >= 12 with at least one lowercase letter,
// one uppercase letter, one digit, and one symbol.
func strongPassword(password string) bool {
	if len(password) < 12 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
