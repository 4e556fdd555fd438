package users

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/session"
)

type User struct {
	ID                 int64          `json:"id"`                           // Unique identifier for the user
	Username           string         `json:"username"`                     // Unique login name
	FullName           *string        `json:"fullName,omitempty"`           // Display name
	DailyTargetMinutes *int           `json:"dailyTargetMinutes,omitempty"` // Expected daily working time
	Roles              []session.Role `json:"roles,omitempty"`              // Backend roles, e.g. ROLE_SCANNER
	Groups             []string       `json:"groups,omitempty"`             // Names of the access groups the user belongs to
}

// CreateRequest is the body of POST /api/admin/access/users
type CreateRequest struct {
	Username           string         `json:"username"`
	Password           string         `json:"password"`
	FullName           *string        `json:"fullName,omitempty"`
	DailyTargetMinutes *int           `json:"dailyTargetMinutes,omitempty"`
	Roles              []session.Role `json:"roles,omitempty"`
	GroupIDs           []int64        `json:"groupIds,omitempty"`
}

func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.Required("username")
	}
	if r.Password == "" {
		return errors.Required("password")
	}
	return validateTarget(r.DailyTargetMinutes)
}

// UpdateRequest changes only the fields that are set. Username and password
// cannot be changed here.
type UpdateRequest struct {
	FullName           *string        `json:"fullName,omitempty"`
	DailyTargetMinutes *int           `json:"dailyTargetMinutes,omitempty"`
	Roles              []session.Role `json:"roles,omitempty"`
	GroupIDs           []int64        `json:"groupIds,omitempty"`
}

func (r UpdateRequest) Validate() error {
	return validateTarget(r.DailyTargetMinutes)
}

func validateTarget(minutes *int) error {
	if minutes != nil && *minutes < 0 {
		return fmt.Errorf("dailyTargetMinutes must not be negative: %w", errors.ErrValidation)
	}
	return nil
}
