package employee

import (
	"time"
)

// Employee is the subset of the employee record the overtime engine reads.
type Employee struct {
	ID         string
	FullName   string
	Role       *string
	DOB        *time.Time
	BranchID   *string
	BranchName *string // joined from branches
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BranchLabel returns the text used to resolve the overtime policy of the employee's branch.
func (e Employee) BranchLabel() string {
	if e.BranchName == nil {
		return ""
	}
	return *e.BranchName
}
