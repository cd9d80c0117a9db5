package commands

import (
	"coa-backend/internal/models"
	"fmt"

	"github.com/spf13/cobra"
)

func newMergeCommand() *cobra.Command {
	var subGroup, mainGroup string

	cmd := &cobra.Command{
		Use:   "merge <ledger-code>",
		Short: "Link a ledger to its consolidating sub and main group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			req := models.MergeRequest{LedgerCode: args[0]}
			if cmd.Flags().Changed("sub-group") {
				req.SubGroupCode = &subGroup
			}
			if cmd.Flags().Changed("main-group") {
				req.MainGroupCode = &mainGroup
			}

			result, err := e.consolidation.Merge(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&subGroup, "sub-group", "", "sub group code")
	cmd.Flags().StringVar(&mainGroup, "main-group", "", "main group code")

	return cmd
}

func newDemergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demerge <ledger-code>",
		Short: "Clear a ledger's consolidation link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.consolidation.Demerge(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ledger %s demerged\n", args[0])
			return nil
		},
	}
}
