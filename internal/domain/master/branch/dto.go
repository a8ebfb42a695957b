package branch

import (
	"strings"

	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/validator"
)

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
	// PolicyKey is the overtime schedule policy the branch resolves to.
	PolicyKey string `json:"policy_key"`
}

// CreateBranchRequest represents the request structure for creating a branch.
type CreateBranchRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

const maxNameLength = 100

func validateName(errs validator.ValidationErrors, name string, required bool) validator.ValidationErrors {
	switch {
	case validator.IsEmpty(name) && required:
		return append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	case validator.IsEmpty(name):
		return append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	case len(name) > maxNameLength:
		return append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}
	return errs
}

// State is a two-letter code such as "SC".
func validateState(errs validator.ValidationErrors, state string) validator.ValidationErrors {
	if len(strings.TrimSpace(state)) != 2 {
		return append(errs, validator.ValidationError{Field: "state", Message: "state must be a 2-letter code"})
	}
	return errs
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateName(errs, r.Name, true)
	if validator.IsEmpty(r.City) {
		errs = append(errs, validator.ValidationError{Field: "city", Message: "city is required"})
	}
	errs = validateState(errs, r.State)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateBranchRequest changes the non-nil fields of a branch.
type UpdateBranchRequest struct {
	ID    string  `json:"-"`
	Name  *string `json:"name,omitempty"`
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil {
		errs = validateName(errs, *r.Name, false)
	}
	if r.City != nil && validator.IsEmpty(*r.City) {
		errs = append(errs, validator.ValidationError{Field: "city", Message: "city must not be empty"})
	}
	if r.State != nil {
		errs = validateState(errs, *r.State)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListBranchesFilter narrows the branch list. Empty fields match every branch.
type ListBranchesFilter struct {
	PolicyKey string
	// Search matches name or city, ignoring case and accents.
	Search string
}

// ResolvePolicyRequest names a branch that may not be stored yet.
type ResolvePolicyRequest struct {
	Name string `json:"name"`
	City string `json:"city"`
}

func (r *ResolvePolicyRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	return nil
}

// PolicyPreviewResponse is the overtime policy a branch name would resolve to.
type PolicyPreviewResponse struct {
	Label     string `json:"label"`
	PolicyKey string `json:"policy_key"`
}
