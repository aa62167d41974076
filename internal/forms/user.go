package forms

import (
	"strings"
	"unicode/utf8"

	"github.com/tinybio/linkdeck/internal/types"
)

// MinPasswordLength applies on create and whenever a new password is typed
const MinPasswordLength = 8

// UserForm backs the user create/edit modal
type UserForm struct {
	editID string

	Name            string
	Email           string
	Role            types.Role
	Password        string
	PasswordConfirm string
}

// NewUserForm returns a create-mode form with zero defaults
func NewUserForm() *UserForm {
	return &UserForm{Role: types.RoleUser}
}

// EditUserForm returns an edit-mode form pre-filled from an existing
// record. Password fields start blank; leaving them blank on submit
// keeps the current password.
func EditUserForm(u types.User) *UserForm {
	return &UserForm{
		editID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// IsEdit reports whether the form updates an existing user
func (f *UserForm) IsEdit() bool {
	return f.editID != ""
}

// EditID returns the id of the user being edited, or "" in create mode
func (f *UserForm) EditID() string {
	return f.editID
}

// Validate checks all fields locally and returns per-field messages.
// A non-empty result means submit must not reach the network.
func (f *UserForm) Validate() Errors {
	errs := make(Errors)

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "email is required"
	} else if !validEmail(f.Email) {
		errs["email"] = "email is not valid"
	}
	if !f.Role.Valid() {
		errs["role"] = "role must be one of USER, ADMIN, SUPERADMIN"
	}

	// On edit a blank password means "keep the current one", so the
	// length rule only applies when something was typed.
	if f.Password == "" {
		if !f.IsEdit() {
			errs["password"] = "password is required"
		} else if f.PasswordConfirm != "" {
			errs["passwordConfirm"] = "passwords do not match"
		}
		return errs
	}

	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		errs["password"] = "password must be at least 8 characters"
	}
	if f.Password != f.PasswordConfirm {
		errs["passwordConfirm"] = "passwords do not match"
	}

	return errs
}

// Payload returns the wire body for create or update. The password key
// is present only when a new password was entered.
func (f *UserForm) Payload() map[string]any {
	body := map[string]any{
		"name":  strings.TrimSpace(f.Name),
		"email": strings.TrimSpace(f.Email),
		"role":  f.Role,
	}
	if f.Password != "" {
		body["password"] = f.Password
	}
	return body
}
