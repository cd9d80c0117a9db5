package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record is one entity row keyed by column name, ready for sqlx named binding.
// A nil value is stored as NULL.
type Record map[string]interface{}

// Column describes one positional spreadsheet column.
type Column struct {
	Field   string
	Header  string
	Sample  string
	Default string
	Integer bool
}

type RequireRule int

const (
	// RequireAll rejects a row when any required field is blank.
	RequireAll RequireRule = iota
	// RequireAny rejects a row only when every required field is blank.
	RequireAny
)

// EntitySchema declares everything the generic CRUD and import code needs to
// know about one table.
type EntitySchema struct {
	Kind            string // import and template slug, e.g. "main-groups"
	Resource        string // CRUD path segment, e.g. "main_groups"
	Table           string
	Label           string
	Key             string
	OrderBy         string
	Columns         []Column
	ReadOnly        []string // columns listed but never written by CRUD or import
	Required        []string
	Rule            RequireRule
	RequiredMessage string
}

var ErrUnknownEntity = errors.New("unknown entity type")

// ValidationError is a presence check failure on a single record.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	MainGroupSchema = &EntitySchema{
		Kind:     "main-groups",
		Resource: "main_groups",
		Table:    "main_groups",
		Label:    "Main Group",
		Key:      "main_group_code",
		OrderBy:  "main_group_code",
		Columns: []Column{
			{Field: "main_group_code", Header: "Main Group Code", Sample: "MG001"},
			{Field: "main_group_name", Header: "Main Group Name", Sample: "Current Assets"},
			{Field: "tally_report", Header: "Tally Report", Sample: "Balance Sheet"},
			{Field: "sub_report", Header: "Sub Report", Sample: "Assets"},
			{Field: "debit_credit", Header: "Debit/Credit", Sample: "Debit"},
			{Field: "trial_balance", Header: "Trial Balance", Sample: "Yes"},
			{Field: "status", Header: "Status", Sample: "Active", Default: "Active"},
		},
		Required:        []string{"main_group_name"},
		RequiredMessage: "Main Group Name is required",
	}

	SubGroupSchema = &EntitySchema{
		Kind:     "sub-groups",
		Resource: "sub_groups",
		Table:    "sub_groups",
		Label:    "Sub Group",
		Key:      "sub_group_code",
		OrderBy:  "sub_group_code",
		Columns: []Column{
			{Field: "sub_group_code", Header: "Sub Group Code", Sample: "SG001"},
			{Field: "sub_group_name", Header: "Sub Group Name", Sample: "Bank Accounts"},
			{Field: "tally_report", Header: "Tally Report", Sample: "Balance Sheet"},
			{Field: "sub_report", Header: "Sub Report", Sample: "Current Assets"},
			{Field: "debit_credit", Header: "Debit/Credit", Sample: "Debit"},
			{Field: "trial_balance", Header: "Trial Balance", Sample: "Yes"},
			{Field: "status", Header: "Status", Sample: "Active", Default: "Active"},
		},
		Required:        []string{"sub_group_name"},
		RequiredMessage: "Sub Group Name is required",
	}

	LedgerSchema = &EntitySchema{
		Kind:     "ledgers",
		Resource: "ledgers",
		Table:    "ledgers",
		Label:    "Ledger",
		Key:      "ledger_code",
		OrderBy:  "ledger_code",
		Columns: []Column{
			{Field: "ledger_code", Header: "Ledger Code", Sample: "L001"},
			{Field: "ledger_name", Header: "Ledger Name", Sample: "HDFC Bank Current A/c"},
			{Field: "tally_report", Header: "Tally Report", Sample: "Balance Sheet"},
			{Field: "debit_credit", Header: "Debit/Credit", Sample: "Debit"},
			{Field: "trial_balance", Header: "Trial Balance", Sample: "Yes"},
			{Field: "status", Header: "Status", Sample: "Active", Default: "Active"},
			{Field: "link_status", Header: "Link Status", Sample: "inactive"},
		},
		ReadOnly: []string{
			"consolidated_sub_group_code",
			"consolidated_sub_group_name",
			"consolidated_main_group_code",
			"consolidated_main_group_name",
			"consolidation_status",
		},
		Required:        []string{"ledger_name"},
		RequiredMessage: "Ledger Name is required",
	}

	DivisionSchema = &EntitySchema{
		Kind:     "divisions",
		Resource: "divisions",
		Table:    "divisions",
		Label:    "Division",
		Key:      "division_code",
		OrderBy:  "division_code",
		Columns: []Column{
			{Field: "division_code", Header: "Division Code", Sample: "DIV01"},
			{Field: "division_name", Header: "Division Name", Sample: "Corrugation"},
			{Field: "report", Header: "Report", Sample: "Manufacturing"},
			{Field: "status", Header: "Status", Sample: "Active", Default: "Active"},
		},
		Required:        []string{"division_name"},
		RequiredMessage: "Division Name is required",
	}

	ConsolidationLinkSchema = &EntitySchema{
		Kind:     "connect-consolidates",
		Resource: "connect_consolidates",
		Table:    "connect_consolidates",
		Label:    "Consolidation",
		Key:      "serial_no",
		OrderBy:  "serial_no",
		Columns: []Column{
			{Field: "serial_no", Header: "Serial No", Sample: "1", Default: "0", Integer: true},
			{Field: "ledger_code", Header: "Ledger Code", Sample: "L001"},
			{Field: "sub_group_code", Header: "Sub Group Code", Sample: "SG001"},
			{Field: "main_group_code", Header: "Main Group Code", Sample: "MG001"},
			{Field: "status", Header: "Status", Sample: "Active", Default: "Active"},
		},
		Required:        []string{"ledger_code", "sub_group_code", "main_group_code"},
		Rule:            RequireAny,
		RequiredMessage: "At least one code (Ledger, Sub Group, or Main Group) is required",
	}
)

// Schemas lists every importable entity in dependency order.
var Schemas = []*EntitySchema{
	MainGroupSchema,
	SubGroupSchema,
	LedgerSchema,
	DivisionSchema,
	ConsolidationLinkSchema,
}

// LookupSchema resolves an entity by its import slug ("main-groups") or its
// CRUD resource name ("main_groups").
func LookupSchema(name string) (*EntitySchema, error) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, s := range Schemas {
		if s.Kind == slug {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
}

func (s *EntitySchema) Fields() []string {
	fields := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		fields[i] = col.Field
	}
	return fields
}

func (s *EntitySchema) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = col.Header
	}
	return headers
}

func (s *EntitySchema) SampleRow() []string {
	row := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		row[i] = col.Sample
	}
	return row
}

// MapRow maps positional cells onto the schema columns. Blank cells take the
// column default, or NULL when there is none.
func (s *EntitySchema) MapRow(cells []string) Record {
	rec := make(Record, len(s.Columns))
	for i, col := range s.Columns {
		value := ""
		if i < len(cells) {
			value = strings.TrimSpace(cells[i])
		}
		if value == "" {
			value = col.Default
		}
		if value == "" {
			rec[col.Field] = nil
			continue
		}
		if col.Integer {
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				rec[col.Field] = n
				continue
			}
			// Excel stores whole numbers as floats ("3.0" once formatted).
			if f, err := strconv.ParseFloat(value, 64); err == nil && f == float64(int64(f)) {
				rec[col.Field] = int64(f)
				continue
			}
		}
		rec[col.Field] = value
	}
	return rec
}

// Validate applies the schema's presence rule to a mapped record.
func (s *EntitySchema) Validate(rec Record) error {
	present := 0
	for _, field := range s.Required {
		if hasValue(rec[field]) {
			present++
		}
	}

	ok := present == len(s.Required)
	if s.Rule == RequireAny {
		ok = present > 0
	}
	if !ok {
		return &ValidationError{Message: s.RequiredMessage}
	}
	return nil
}

// RecordValues returns the record in column order, for writing back to a sheet.
func (s *EntitySchema) RecordValues(rec Record) []interface{} {
	values := make([]interface{}, len(s.Columns))
	for i, col := range s.Columns {
		values[i] = rec[col.Field]
	}
	return values
}

func (s *EntitySchema) SelectQuery() string {
	cols := append([]string{"id"}, s.Fields()...)
	cols = append(cols, s.ReadOnly...)
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(cols, ", "), s.Table, s.OrderBy)
}

// InsertQuery returns a named INSERT. Columns with a default fall back to it
// when the bound value is NULL.
func (s *EntitySchema) InsertQuery() string {
	params := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		params[i] = ":" + col.Field
		if col.Default != "" {
			params[i] = fmt.Sprintf("COALESCE(:%s, %s)", col.Field, col.defaultLiteral())
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.Table, strings.Join(s.Fields(), ", "), strings.Join(params, ", "))
}

// UpsertQuery is InsertQuery updating every non-key column when the unique
// key already exists.
func (s *EntitySchema) UpsertQuery() string {
	updates := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		if col.Field == s.Key {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", col.Field, col.Field))
	}
	return s.InsertQuery() + " ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
}

func (c Column) defaultLiteral() string {
	if c.Integer {
		return c.Default
	}
	return "'" + strings.ReplaceAll(c.Default, "'", "''") + "'"
}

func hasValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case *string:
		return val != nil && strings.TrimSpace(*val) != ""
	default:
		return true
	}
}
