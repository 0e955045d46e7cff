package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level YAML structure of a rent-roll import.
type ImportSchema struct {
	Payors []PayorImport `yaml:"payors"`
}

// PayorImport defines a payor, its unallocated fund and its assessments.
type PayorImport struct {
	BID         int64              `yaml:"bid"`
	TCID        int64              `yaml:"tcid"`
	Name        string             `yaml:"name"`
	Fund        string             `yaml:"fund,omitempty"`
	Assessments []AssessmentImport `yaml:"assessments,omitempty"`
}

// AssessmentImport defines one assessment charged to a payor. Amounts are
// money strings such as "1,250.00" or "$40".
type AssessmentImport struct {
	ASMID       int64   `yaml:"asmid"`
	ARID        int64   `yaml:"arid,omitempty"`
	Name        string  `yaml:"name"`
	Date        string  `yaml:"date"`
	Amount      string  `yaml:"amount"`
	AmountPaid  string  `yaml:"amount_paid,omitempty"`
	Allocate    string  `yaml:"allocate,omitempty"`
	PaymentDate *string `yaml:"payment_date,omitempty"`
}

// LoadImportSchema reads and parses a YAML import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses a YAML import document. Unknown fields are rejected.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
