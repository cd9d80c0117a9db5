package main

import (
	"coa-backend/internal/models"
	"coa-backend/internal/service"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Demo rows per entity, in import column order. The main-groups file also
// carries a row with a blank name to exercise per-row error reporting.
var demoRows = map[*models.EntitySchema][][]interface{}{
	models.MainGroupSchema: {
		{"MG001", "Current Assets", "Balance Sheet", "Assets", "Debit", "Yes", "Active"},
		{"MG002", "", "Balance Sheet", "Assets", "Debit", "Yes", "Active"},
		{"MG003", "Current Liabilities", "Balance Sheet", "Liabilities", "Credit", "Yes", "Active"},
		{"MG004", "Direct Expenses", "Profit & Loss", "Expenses", "Debit", "Yes", nil},
	},
	models.SubGroupSchema: {
		{"SG001", "Bank Accounts", "Balance Sheet", "Current Assets", "Debit", "Yes", "Active"},
		{"SG002", "Cash in Hand", "Balance Sheet", "Current Assets", "Debit", "Yes", "Active"},
		{"SG003", "Sundry Creditors", "Balance Sheet", "Current Liabilities", "Credit", "Yes", "Active"},
	},
	models.LedgerSchema: {
		{"L001", "HDFC Bank Current A/c", "Balance Sheet", "Debit", "Yes", "Active", "inactive"},
		{"L002", "Petty Cash", "Balance Sheet", "Debit", "Yes", "Active", "inactive"},
		{"L003", "Kraft Paper Suppliers", "Balance Sheet", "Credit", "Yes", "Active", "inactive"},
		{"L004", "Factory Wages", "Profit & Loss", "Debit", "Yes", "Active", "inactive"},
	},
	models.DivisionSchema: {
		{"DIV01", "Corrugation", "Manufacturing", "Active"},
		{"DIV02", "Printing", "Manufacturing", "Active"},
	},
	models.ConsolidationLinkSchema: {
		{1, "L001", "SG001", "MG001", "active"},
		{2, "L002", "SG002", "MG001", "active"},
		{3, "L003", "SG003", "MG003", "inactive"},
	},
}

func main() {
	outDir := flag.String("out", ".", "directory the workbooks are written to")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	excel := service.NewExcelService()
	for _, schema := range models.Schemas {
		data, err := excel.BuildWorkbook(schema, demoRows[schema])
		if err != nil {
			fmt.Printf("Error building %s workbook: %v\n", schema.Kind, err)
			os.Exit(1)
		}

		path := filepath.Join(*outDir, fmt.Sprintf("demo_%s.xlsx", schema.Resource))
		if err := excel.WriteFile(data, path); err != nil {
			fmt.Printf("Error saving file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created %s with %d rows\n", path, len(demoRows[schema]))
	}

	fmt.Println("\nImport order: main-groups, sub-groups, ledgers, divisions, connect-consolidates")
	fmt.Println("demo_main_groups.xlsx is expected to report: Row 3: Main Group Name is required")
}
