package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableEntries = "log_entries"
	tableRuns    = "diagnosis_runs"
	tableDrafts  = "drafts"

	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

var (
	// EntriesColumns holds the columns for the "log_entries" table.
	EntriesColumns = []*schema.Column{
		{Name: colID, Type: field.TypeString, Unique: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeString},
		{Name: "profile", Type: field.TypeString, Default: ""},
		{Name: "overload", Type: field.TypeInt, Default: 0},
		{Name: "codes", Type: field.TypeJSON},
		{Name: "note", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "actions", Type: field.TypeJSON},
		{Name: "boundary_template", Type: field.TypeString, Default: ""},
		{Name: "boundary_note", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// EntriesTable holds the schema information for the "log_entries" table.
	EntriesTable = &schema.Table{
		Name:       tableEntries,
		Columns:    EntriesColumns,
		PrimaryKey: []*schema.Column{EntriesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "logentry_timestamp",
				Unique:  false,
				Columns: []*schema.Column{EntriesColumns[2]},
			},
			{
				Name:    "logentry_profile",
				Unique:  false,
				Columns: []*schema.Column{EntriesColumns[3]},
			},
		},
	}

	// RunsColumns holds the columns for the "diagnosis_runs" table.
	RunsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "started_at", Type: field.TypeString},
		{Name: "profile", Type: field.TypeString},
		{Name: "load_level", Type: field.TypeInt},
		{Name: "answers", Type: field.TypeString},
		{Name: "ranked", Type: field.TypeJSON},
		{Name: "critical", Type: field.TypeBool, Default: false},
		{Name: "applied", Type: field.TypeJSON},
	}
	// RunsTable holds the schema information for the "diagnosis_runs" table.
	RunsTable = &schema.Table{
		Name:       tableRuns,
		Columns:    RunsColumns,
		PrimaryKey: []*schema.Column{RunsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "diagnosisrun_timestamp",
				Unique:  false,
				Columns: []*schema.Column{RunsColumns[2]},
			},
		},
	}

	// DraftsColumns holds the columns for the "drafts" table.
	DraftsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
	}
	// DraftsTable holds the schema information for the "drafts" table.
	DraftsTable = &schema.Table{
		Name:       tableDrafts,
		Columns:    DraftsColumns,
		PrimaryKey: []*schema.Column{DraftsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		EntriesTable,
		RunsTable,
		DraftsTable,
	}
)

// migrate creates missing tables, columns and indexes. It only appends;
// nothing is dropped.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
