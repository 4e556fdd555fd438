package batches

import (
	"strings"

	"github.com/jrsteele09/go-docadmin/internal/errors"
)

type WorkflowStep string

const (
	StepScan    WorkflowStep = "SCAN"
	StepIndex   WorkflowStep = "INDEX"
	StepQuality WorkflowStep = "QUALITY"
	StepExport  WorkflowStep = "EXPORT"
)

// SeparationMethod decides how scanned pages are split into documents
type SeparationMethod string

const (
	SeparationNone               SeparationMethod = "NONE"
	SeparationDocumentSeparators SeparationMethod = "DOCUMENT_SEPARATORS"
	SeparationNumberOfPages      SeparationMethod = "NUMBER_OF_PAGES"
)

type ListItem struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	DepartmentName *string `json:"departmentName,omitempty"`
}

type DocTypeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Batch struct {
	ID                    int64            `json:"id"`
	DepartmentName        *string          `json:"departmentName,omitempty"`
	Name                  string           `json:"name"`
	NamingFormula         *string          `json:"namingFormula,omitempty"`
	ExpectedScanTimeSec   *int             `json:"expectedScanTimeSec,omitempty"`
	Workflow              []WorkflowStep   `json:"workflow"`
	SeparationMethod      SeparationMethod `json:"separationMethod"`
	SeparationInfo        *string          `json:"separationInfo,omitempty"`
	QualityPercentage     *int             `json:"qualityPercentage,omitempty"`
	AutoImportPath        *string          `json:"autoImportPath,omitempty"`
	AutoProcessImported   bool             `json:"autoProcessImported"`
	SelectedDocumentTypes []DocTypeRef     `json:"selectedDocumentTypes"`
}

type Separation struct {
	Method SeparationMethod `json:"method"`
	Info   *string          `json:"info,omitempty"`
}

// SaveRequest is the body of both create and update
type SaveRequest struct {
	DepartmentName          *string        `json:"departmentName,omitempty"`
	Name                    string         `json:"name"`
	NamingFormula           *string        `json:"namingFormula,omitempty"`
	ExpectedScanTimeSec     *int           `json:"expectedScanTimeSec,omitempty"`
	Workflow                []WorkflowStep `json:"workflow"`
	Separation              Separation     `json:"separation"`
	QualityPercentage       *int           `json:"qualityPercentage,omitempty"`
	AutoImportPath          *string        `json:"autoImportPath,omitempty"`
	AutoProcessImported     *bool          `json:"autoProcessImported,omitempty"`
	SelectedDocumentTypeIDs []int64        `json:"selectedDocumentTypeIds"`
}

func (r SaveRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Required("name")
	}
	return nil
}

func (r SaveRequest) withDefaults() SaveRequest {
	if r.Workflow == nil {
		r.Workflow = []WorkflowStep{}
	}
	if r.Separation.Method == "" {
		r.Separation.Method = SeparationNone
	}
	if r.SelectedDocumentTypeIDs == nil {
		r.SelectedDocumentTypeIDs = []int64{}
	}
	return r
}

// ToSaveRequest turns a fetched batch back into an update body
func (b Batch) ToSaveRequest() SaveRequest {
	ids := make([]int64, 0, len(b.SelectedDocumentTypes))
	for _, dt := range b.SelectedDocumentTypes {
		ids = append(ids, dt.ID)
	}
	autoProcess := b.AutoProcessImported
	return SaveRequest{
		DepartmentName:          b.DepartmentName,
		Name:                    b.Name,
		NamingFormula:           b.NamingFormula,
		ExpectedScanTimeSec:     b.ExpectedScanTimeSec,
		Workflow:                b.Workflow,
		Separation:              Separation{Method: b.SeparationMethod, Info: b.SeparationInfo},
		QualityPercentage:       b.QualityPercentage,
		AutoImportPath:          b.AutoImportPath,
		AutoProcessImported:     &autoProcess,
		SelectedDocumentTypeIDs: ids,
	}
}

// DocTypeField is a field of an active document type that users can see
type DocTypeField struct {
	Name        string  `json:"name"`
	DisplayName *string `json:"displayName,omitempty"`
}

// DocTypeWithFields is an active document type as offered when building a
// batch naming formula
type DocTypeWithFields struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"`
	FieldsVisibleToUser []DocTypeField `json:"fieldsVisibleToUser"`
	FolderTemplate      string         `json:"folderTemplate"`
	FileTemplate        string         `json:"fileTemplate"`
	ExportFormat        string         `json:"exportFormat"`
	ColorFormat         string         `json:"colorFormat"`
}
