package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrsteele09/go-docadmin/internal/errors"
	"gopkg.in/yaml.v3"
)

// readInput decodes a YAML or JSON request body from path ("-" reads stdin).
// The document is normalised through JSON so the request types only need
// their json tags.
func (r *runner) readInput(path string, v any) error {
	if path == "" {
		return fmt.Errorf("--file is required: %w", errors.ErrValidation)
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(r.deps.Stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("input is not valid YAML or JSON: %v: %w", err, errors.ErrValidation)
	}
	if doc == nil {
		return fmt.Errorf("input is empty: %w", errors.ErrValidation)
	}
	normalised, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("input cannot be represented as JSON: %v: %w", err, errors.ErrValidation)
	}
	if err := json.Unmarshal(normalised, v); err != nil {
		return fmt.Errorf("input does not match the request shape: %v: %w", err, errors.ErrValidation)
	}
	return nil
}
