package repository

import (
	"coa-backend/internal/models"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type ConsolidationRepository struct {
	db *sqlx.DB
}

func NewConsolidationRepository(db *sqlx.DB) *ConsolidationRepository {
	return &ConsolidationRepository{db: db}
}

const viewColumns = `id, serial_no, ledger_code, ledger_name, sub_group_code, sub_group_name,
		       main_group_code, main_group_name, status`

// View reads consolidated_display, optionally narrowed to one ledger.
func (r *ConsolidationRepository) View(ctx context.Context, ledgerCode string) ([]models.ConsolidatedRow, error) {
	rows := []models.ConsolidatedRow{}
	if ledgerCode == "" {
		err := r.db.SelectContext(ctx, &rows, `SELECT `+viewColumns+` FROM consolidated_display ORDER BY serial_no`)
		return rows, err
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+viewColumns+` FROM consolidated_display WHERE ledger_code = ? ORDER BY serial_no`, ledgerCode)
	return rows, err
}

// UpdateLink replaces the row with the given id. A missing status falls back to
// 'Active', as on insert.
func (r *ConsolidationRepository) UpdateLink(ctx context.Context, link *models.ConsolidationLink) (int64, error) {
	query := `UPDATE connect_consolidates
	          SET serial_no = :serial_no, ledger_code = :ledger_code, sub_group_code = :sub_group_code,
	              main_group_code = :main_group_code, status = COALESCE(:status, 'Active')
	          WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, link)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ConsolidationRepository) DeleteLink(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM connect_consolidates WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ConsolidationRepository) LedgerExists(ctx context.Context, ledgerCode string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM ledgers WHERE ledger_code = ?)", ledgerCode)
	return exists, err
}

// SubGroupName returns nil when no sub group has the code.
func (r *ConsolidationRepository) SubGroupName(ctx context.Context, code string) (*string, error) {
	return r.lookupName(ctx, "SELECT sub_group_name FROM sub_groups WHERE sub_group_code = ? LIMIT 1", code)
}

// MainGroupName returns nil when no main group has the code.
func (r *ConsolidationRepository) MainGroupName(ctx context.Context, code string) (*string, error) {
	return r.lookupName(ctx, "SELECT main_group_name FROM main_groups WHERE main_group_code = ? LIMIT 1", code)
}

func (r *ConsolidationRepository) lookupName(ctx context.Context, query, code string) (*string, error) {
	var name sql.NullString
	err := r.db.GetContext(ctx, &name, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !name.Valid {
		return nil, nil
	}
	return &name.String, nil
}

// ApplyMerge writes the resolved link onto the ledger row.
func (r *ConsolidationRepository) ApplyMerge(ctx context.Context, m *models.MergeResult) (int64, error) {
	query := `UPDATE ledgers
	          SET link_status = 'active',
	              consolidated_sub_group_code = :sub_group_code,
	              consolidated_sub_group_name = :sub_group_name,
	              consolidated_main_group_code = :main_group_code,
	              consolidated_main_group_name = :main_group_name,
	              consolidation_status = 'active'
	          WHERE ledger_code = :ledger_code`
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"ledger_code":     m.LedgerCode,
		"sub_group_code":  m.SubGroupCode,
		"sub_group_name":  m.SubGroupName,
		"main_group_code": m.MainGroupCode,
		"main_group_name": m.MainGroupName,
	})
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ApplyDemerge clears the denormalized link on the ledger row.
func (r *ConsolidationRepository) ApplyDemerge(ctx context.Context, ledgerCode string) (int64, error) {
	query := `UPDATE ledgers
	          SET link_status = 'inactive',
	              consolidated_sub_group_code = NULL,
	              consolidated_sub_group_name = NULL,
	              consolidated_main_group_code = NULL,
	              consolidated_main_group_name = NULL,
	              consolidation_status = 'inactive'
	          WHERE ledger_code = ?`
	result, err := r.db.ExecContext(ctx, query, ledgerCode)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const ledgerColumns = `l.id,
		       l.ledger_code,
		       l.ledger_name,
		       l.tally_report,
		       l.debit_credit,
		       l.trial_balance,
		       l.status,
		       l.link_status,
		       l.consolidated_sub_group_code,
		       l.consolidated_sub_group_name,
		       l.consolidated_main_group_code,
		       l.consolidated_main_group_name`

// ActiveLedgers lists ledgers that have an active consolidation link, once
// each, through their lowest-numbered active link.
func (r *ConsolidationRepository) ActiveLedgers(ctx context.Context) ([]models.LedgerLink, error) {
	rows := []models.LedgerLink{}
	query := `
		SELECT ` + ledgerColumns + `,
		       cc.serial_no,
		       cc.sub_group_code,
		       sg.sub_group_name,
		       cc.main_group_code,
		       mg.main_group_name,
		       'active' AS consolidation_status
		FROM ledgers l
		INNER JOIN (
			SELECT ledger_code, MIN(serial_no) AS serial_no
			FROM connect_consolidates
			WHERE status = 'active'
			GROUP BY ledger_code
		) first_link ON first_link.ledger_code = l.ledger_code
		INNER JOIN connect_consolidates cc ON cc.serial_no = first_link.serial_no
		LEFT JOIN sub_groups sg ON cc.sub_group_code = sg.sub_group_code
		LEFT JOIN main_groups mg ON cc.main_group_code = mg.main_group_code
		ORDER BY cc.serial_no`
	err := r.db.SelectContext(ctx, &rows, query)
	return rows, err
}

// InactiveLedgers lists every ledger without an active consolidation link.
func (r *ConsolidationRepository) InactiveLedgers(ctx context.Context) ([]models.LedgerLink, error) {
	rows := []models.LedgerLink{}
	query := `
		SELECT ` + ledgerColumns + `,
		       NULL AS serial_no,
		       NULL AS sub_group_code,
		       NULL AS sub_group_name,
		       NULL AS main_group_code,
		       NULL AS main_group_name,
		       'inactive' AS consolidation_status
		FROM ledgers l
		WHERE NOT EXISTS (
			SELECT 1 FROM connect_consolidates cc
			WHERE cc.ledger_code = l.ledger_code AND cc.status = 'active'
		)
		ORDER BY l.ledger_code`
	err := r.db.SelectContext(ctx, &rows, query)
	return rows, err
}
