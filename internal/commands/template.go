package commands

import (
	"coa-backend/internal/models"
	"coa-backend/internal/service"
	"fmt"

	"github.com/spf13/cobra"
)

func newTemplateCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "template <entity>",
		Short: "Write the import template for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := models.LookupSchema(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = schema.Resource + "-template.xlsx"
			}

			excel := service.NewExcelService()
			data, err := excel.GenerateTemplate(schema)
			if err != nil {
				return err
			}
			if err := excel.WriteFile(data, out); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default <entity>-template.xlsx)")

	return cmd
}
