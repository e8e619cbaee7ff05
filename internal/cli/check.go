package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a document against the catalog shape",
	Long:  "Verifies that the document is well formed and matches the catalog shape: one product, one seller, ordered reviews, available colors and an optional related-products list. Exits nonzero when the document is invalid.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "text", "Report format: text, json")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q, want text or json", format)
	}

	src, err := loadDocument(cmd.Context(), path)
	if err != nil {
		return err
	}

	report, err := newDocumentService().Check(cmd.Context(), src)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		if report.Valid {
			fmt.Println("document is valid")
		} else {
			for _, f := range report.Findings {
				fmt.Printf("%s: %s (want %s, got %s)\n", f.Path, f.Msg, f.Want, f.Got)
			}
		}
	}

	if !report.Valid {
		return fmt.Errorf("document is invalid: %d finding(s)", len(report.Findings))
	}
	return nil
}
