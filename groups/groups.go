package groups

import (
	"strings"

	"github.com/jrsteele09/go-docadmin/internal/errors"
)

// BatchPermission grants a group the scan, index and quality steps of one batch
type BatchPermission struct {
	BatchID   int64  `json:"batchId"`
	BatchName string `json:"batchName,omitempty"`
	Scan      bool   `json:"scan"`
	Index     bool   `json:"index"`
	Quality   bool   `json:"quality"`
}

type Group struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	BatchPermissions []BatchPermission `json:"batchPermissions,omitempty"`
}

type CreateRequest struct {
	Name             string            `json:"name"`
	BatchPermissions []BatchPermission `json:"batchPermissions"`
}

func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Required("name")
	}
	return nil
}

// UpdateRequest changes only the fields that are set
type UpdateRequest struct {
	Name             *string           `json:"name,omitempty"`
	BatchPermissions []BatchPermission `json:"batchPermissions,omitempty"`
}

func (r UpdateRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.Required("name")
	}
	return nil
}
