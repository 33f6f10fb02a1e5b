package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/spreadsheet"
	"github.com/spf13/cobra"
)

func newImportCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import invoices from an xlsx or csv file",
		Long: `Reads the file, saves every valid invoice for the user in one transaction
and prints the import result, including rejected rows, as JSON.`,
		Example: "  invoicectl import --user 3f1c... --file invoices.xlsx --dry-run",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			path, _ := cmd.Flags().GetString("file")
			formatFlag, _ := cmd.Flags().GetString("format")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			format, err := resolveFormat(formatFlag, path)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			return withServices(cmd.Context(), d, func(c *portssvc.ServiceContainer) error {
				result, err := c.Spreadsheet.ImportInvoices(cmd.Context(), userID, format, f, dryRun)
				if err != nil {
					return err
				}
				d.logger.Info("Import finished",
					slog.String("user_id", userID),
					slog.Int("imported", result.Imported),
					slog.Int("rejected", len(result.Rejected)),
					slog.Bool("dry_run", dryRun))
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().String("user", "", "ID of the user owning the invoices")
	cmd.Flags().String("file", "", "Spreadsheet to import")
	cmd.Flags().String("format", "", "xlsx or csv (default: derived from the file name)")
	cmd.Flags().Bool("dry-run", false, "Validate without saving")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newExportCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export all invoices of a user to an xlsx or csv file",
		Example: "  invoicectl export --user 3f1c... --file invoices.csv",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			path, _ := cmd.Flags().GetString("file")
			formatFlag, _ := cmd.Flags().GetString("format")

			format, err := resolveFormat(formatFlag, path)
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), d, func(c *portssvc.ServiceContainer) error {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				if err := c.Spreadsheet.ExportInvoices(cmd.Context(), userID, format, f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				d.logger.Info("Export written", slog.String("user_id", userID), slog.String("file", path))
				return nil
			})
		},
	}
	cmd.Flags().String("user", "", "ID of the user owning the invoices")
	cmd.Flags().String("file", "", "Destination file")
	cmd.Flags().String("format", "", "xlsx or csv (default: derived from the file name)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newReportCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard report of a user as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			return withServices(cmd.Context(), d, func(c *portssvc.ServiceContainer) error {
				report, err := c.Reporting.Dashboard(cmd.Context(), userID)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().String("user", "", "ID of the user")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func resolveFormat(flag, path string) (spreadsheet.Format, error) {
	if flag != "" {
		return spreadsheet.ParseFormat(flag)
	}
	return spreadsheet.FormatFromFilename(path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
