package documenttypes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jrsteele09/go-docadmin/internal/errors"
)

type FieldType string

const (
	FieldText    FieldType = "text"
	FieldDate    FieldType = "date"
	FieldNumber  FieldType = "number"
	FieldOptions FieldType = "options"
)

type ExportType string

const ExportFilesystem ExportType = "FILESYSTEM"

type ExportFormat string

const (
	ExportPDF        ExportFormat = "PDF"
	ExportPDFA       ExportFormat = "PDFA"
	ExportTIFF       ExportFormat = "TIFF"
	ExportAsImported ExportFormat = "AS_IMPORTED"
)

type ColorFormat string

const (
	ColorHigh16    ColorFormat = "HIGH_16"
	ColorMedium8   ColorFormat = "MEDIUM_8"
	ColorGrayscale ColorFormat = "GRAYSCALE"
)

// Status is ACTIVE for live types and INACTIVE once soft deleted
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// IndexingField describes one value captured when a document is indexed
type IndexingField struct {
	Name         string    `json:"name"`
	DisplayName  string    `json:"displayName"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	Visible      bool      `json:"visible"`
	Unique       bool      `json:"unique"`
	DefaultValue *string   `json:"defaultValue,omitempty"`
	Options      []string  `json:"options,omitempty"` // only for FieldOptions
	Lookup       *bool     `json:"lookup,omitempty"`
}

type DocumentType struct {
	ID             int64           `json:"id,omitempty"`
	DepartmentID   int64           `json:"departmentId"`
	Name           string          `json:"name"`
	AvgIndexTime   *float64        `json:"avgIndexTime,omitempty"`
	AvgQualityTime *float64        `json:"avgQualityTime,omitempty"`
	IndexingFields []IndexingField `json:"indexingFields"`
	FolderTemplate *string         `json:"folderTemplate,omitempty"`
	FileTemplate   *string         `json:"fileTemplate,omitempty"`
	ExportType     ExportType      `json:"exportType"`
	ExportFormat   ExportFormat    `json:"exportFormat"`
	ColorFormat    ColorFormat     `json:"colorFormat"`
	Status         Status          `json:"status,omitempty"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	UpdatedAt      string          `json:"updatedAt,omitempty"`
}

// Validate checks the fields the backend cannot do without
func (d DocumentType) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.Required("name")
	}
	for i, f := range d.IndexingFields {
		if strings.TrimSpace(f.Name) == "" {
			return errors.Required(fmt.Sprintf("indexingFields[%d].name", i))
		}
	}
	return nil
}

// withDefaults fills the enum fields a new type needs
func (d DocumentType) withDefaults() DocumentType {
	if d.ExportType == "" {
		d.ExportType = ExportFilesystem
	}
	if d.ExportFormat == "" {
		d.ExportFormat = ExportPDF
	}
	if d.ColorFormat == "" {
		d.ColorFormat = ColorHigh16
	}
	if d.IndexingFields == nil {
		d.IndexingFields = []IndexingField{}
	}
	// the receiver copy still shares the caller's backing array
	d.IndexingFields = slices.Clone(d.IndexingFields)
	for i := range d.IndexingFields {
		if d.IndexingFields[i].Type == "" {
			d.IndexingFields[i].Type = FieldText
		}
	}
	return d
}
