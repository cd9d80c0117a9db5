package models

const (
	LinkActive   = "active"
	LinkInactive = "inactive"
)

type MergeRequest struct {
	LedgerCode    string  `json:"ledger_code" validate:"required"`
	SubGroupCode  *string `json:"sub_group_code"`
	MainGroupCode *string `json:"main_group_code"`
}

// MergeResult echoes the link written onto the ledger row.
type MergeResult struct {
	LedgerCode    string  `json:"ledger_code"`
	SubGroupCode  *string `json:"sub_group_code"`
	SubGroupName  *string `json:"sub_group_name"`
	MainGroupCode *string `json:"main_group_code"`
	MainGroupName *string `json:"main_group_name"`
}
