package models

type MainGroup struct {
	ID            int64   `db:"id" json:"id"`
	MainGroupCode *string `db:"main_group_code" json:"main_group_code"`
	MainGroupName string  `db:"main_group_name" json:"main_group_name" validate:"required"`
	TallyReport   *string `db:"tally_report" json:"tally_report"`
	SubReport     *string `db:"sub_report" json:"sub_report"`
	DebitCredit   *string `db:"debit_credit" json:"debit_credit"`
	TrialBalance  *string `db:"trial_balance" json:"trial_balance"`
	Status        *string `db:"status" json:"status"`
}

type SubGroup struct {
	ID           int64   `db:"id" json:"id"`
	SubGroupCode *string `db:"sub_group_code" json:"sub_group_code"`
	SubGroupName string  `db:"sub_group_name" json:"sub_group_name" validate:"required"`
	TallyReport  *string `db:"tally_report" json:"tally_report"`
	SubReport    *string `db:"sub_report" json:"sub_report"`
	DebitCredit  *string `db:"debit_credit" json:"debit_credit"`
	TrialBalance *string `db:"trial_balance" json:"trial_balance"`
	Status       *string `db:"status" json:"status"`
}

type Ledger struct {
	ID           int64   `db:"id" json:"id"`
	LedgerCode   *string `db:"ledger_code" json:"ledger_code"`
	LedgerName   string  `db:"ledger_name" json:"ledger_name" validate:"required"`
	TallyReport  *string `db:"tally_report" json:"tally_report"`
	DebitCredit  *string `db:"debit_credit" json:"debit_credit"`
	TrialBalance *string `db:"trial_balance" json:"trial_balance"`
	Status       *string `db:"status" json:"status"`
	LinkStatus   *string `db:"link_status" json:"link_status"`

	// Denormalized copy of the consolidation link, written only by merge/demerge.
	ConsolidatedSubGroupCode  *string `db:"consolidated_sub_group_code" json:"consolidated_sub_group_code"`
	ConsolidatedSubGroupName  *string `db:"consolidated_sub_group_name" json:"consolidated_sub_group_name"`
	ConsolidatedMainGroupCode *string `db:"consolidated_main_group_code" json:"consolidated_main_group_code"`
	ConsolidatedMainGroupName *string `db:"consolidated_main_group_name" json:"consolidated_main_group_name"`
	ConsolidationStatus       *string `db:"consolidation_status" json:"consolidation_status"`
}

type Division struct {
	ID           int64   `db:"id" json:"id"`
	DivisionCode *string `db:"division_code" json:"division_code"`
	DivisionName string  `db:"division_name" json:"division_name" validate:"required"`
	Report       *string `db:"report" json:"report"`
	Status       *string `db:"status" json:"status"`
}

// ConsolidationLink is a row of connect_consolidates.
type ConsolidationLink struct {
	ID            int64   `db:"id" json:"id"`
	SerialNo      int64   `db:"serial_no" json:"serial_no"`
	LedgerCode    *string `db:"ledger_code" json:"ledger_code"`
	SubGroupCode  *string `db:"sub_group_code" json:"sub_group_code"`
	MainGroupCode *string `db:"main_group_code" json:"main_group_code"`
	Status        *string `db:"status" json:"status"`
}

// HasCode reports whether at least one of the three link codes is set.
func (l *ConsolidationLink) HasCode() bool {
	return notBlank(l.LedgerCode) || notBlank(l.SubGroupCode) || notBlank(l.MainGroupCode)
}

// ConsolidatedRow is a row of the consolidated_display view.
type ConsolidatedRow struct {
	ID            int64   `db:"id" json:"id"`
	SerialNo      int64   `db:"serial_no" json:"serial_no"`
	LedgerCode    *string `db:"ledger_code" json:"ledger_code"`
	LedgerName    *string `db:"ledger_name" json:"ledger_name"`
	SubGroupCode  *string `db:"sub_group_code" json:"sub_group_code"`
	SubGroupName  *string `db:"sub_group_name" json:"sub_group_name"`
	MainGroupCode *string `db:"main_group_code" json:"main_group_code"`
	MainGroupName *string `db:"main_group_name" json:"main_group_name"`
	Status        *string `db:"status" json:"status"`
}

// LedgerLink is a ledger listed together with its consolidation link state.
// A ledger appears at most once; with several active links the one with the
// lowest serial_no is reported.
type LedgerLink struct {
	ID                  int64   `db:"id" json:"id"`
	LedgerCode          *string `db:"ledger_code" json:"ledger_code"`
	LedgerName          string  `db:"ledger_name" json:"ledger_name"`
	TallyReport         *string `db:"tally_report" json:"tally_report"`
	DebitCredit         *string `db:"debit_credit" json:"debit_credit"`
	TrialBalance        *string `db:"trial_balance" json:"trial_balance"`
	Status              *string `db:"status" json:"status"`
	LinkStatus          *string `db:"link_status" json:"link_status"`
	SerialNo            *int64  `db:"serial_no" json:"serial_no"`
	SubGroupCode        *string `db:"sub_group_code" json:"sub_group_code"`
	SubGroupName        *string `db:"sub_group_name" json:"sub_group_name"`
	MainGroupCode       *string `db:"main_group_code" json:"main_group_code"`
	MainGroupName       *string `db:"main_group_name" json:"main_group_name"`
	ConsolidationStatus string  `db:"consolidation_status" json:"consolidation_status"`

	// The ledger row's own denormalized link, as last written by merge/demerge.
	ConsolidatedSubGroupCode  *string `db:"consolidated_sub_group_code" json:"consolidated_sub_group_code"`
	ConsolidatedSubGroupName  *string `db:"consolidated_sub_group_name" json:"consolidated_sub_group_name"`
	ConsolidatedMainGroupCode *string `db:"consolidated_main_group_code" json:"consolidated_main_group_code"`
	ConsolidatedMainGroupName *string `db:"consolidated_main_group_name" json:"consolidated_main_group_name"`
}

func notBlank(s *string) bool {
	return s != nil && *s != ""
}
