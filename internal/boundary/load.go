package boundary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/itrgo/itrgo/internal/domain"
)

// LoadRecordFile reads a salary package file in YAML or JSON form, chosen by
// extension, and normalizes it into a record. The returned warnings list the
// substitutions made for malformed fields.
func LoadRecordFile(path string) (*domain.SalaryPackageRecord, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read package file: %w", err)
	}

	var payload map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		payload, err = ParseJSON(data)
	default:
		err = yaml.Unmarshal(data, &payload)
		if err != nil {
			err = fmt.Errorf("failed to parse package YAML: %w", err)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	normalizer := NewNormalizer()
	record, err := normalizer.RecordFromPayload(payload)
	if err != nil {
		return nil, normalizer.Warnings(), err
	}
	return record, normalizer.Warnings(), nil
}
