// =============================================================================
// Disbursement Payload Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command: read the configured sheets of a
// workbook, assemble one JSON payload per non-empty data row, and persist
// the payloads to the document store.
//
// COMMAND USAGE:
//   disburse generate --workbook <xlsx> [flags]
//
// FLAGS:
//   --workbook : Path to the input Excel workbook (required)
//   --output   : Override the configured output directory
//   --sheet    : Process only the named sheet
//
// PROCESSING PIPELINE:
//   1. Load configuration and build one assembler per configured variant
//   2. Open the workbook; verify required sheets are present
//   3. Walk data rows sheet by sheet, skipping fully empty rows
//   4. Assemble the payload for each row and write it to the store
//   5. Print per-sheet and total counts
//
// Zero produced payloads is a valid outcome: it means no qualifying rows
// were found. Generation aborts on the first write failure; payloads
// already written stay in the store.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/payops-th/disburse/internal/config"
	"github.com/payops-th/disburse/internal/docwriter"
	"github.com/payops-th/disburse/internal/payload"
	"github.com/payops-th/disburse/internal/xlsxreader"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// workbookPath is the path to the input Excel workbook.
var workbookPath string

// outputOverride overrides the configured output directory.
var outputOverride string

// sheetFilter restricts processing to a single named sheet.
var sheetFilter string

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate JSON payloads from an Excel workbook",
	Long: `The generate command reads the configured sheets of an Excel workbook and
produces one JSON payload file per non-empty data row.

Each sheet is tied to a payload variant in the configuration (agent_broker,
company, or generic) which decides how the payee and committee structures
are built. Payload files are named from the sheet's configured identity
columns, with a sequential payload_NNN.json fallback when identity values
are missing.

Finding no qualifying rows is not an error: the command reports zero
generated payloads and exits successfully.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the generate command and its flags.
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(
		&workbookPath,
		"workbook",
		"",
		"Path to the input Excel workbook",
	)
	generateCmd.MarkFlagRequired("workbook")

	generateCmd.Flags().StringVar(
		&outputOverride,
		"output",
		"",
		"Output directory for generated payloads (overrides config)",
	)

	generateCmd.Flags().StringVar(
		&sheetFilter,
		"sheet",
		"",
		"Process only the named sheet",
	)
}

// =============================================================================
// MAIN GENERATION FUNCTION
// =============================================================================

// runGenerate orchestrates one generation run.
func runGenerate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	outputDir := cfg.OutputDir
	if outputOverride != "" {
		outputDir = outputOverride
	}

	// Build one assembler per configured sheet. Assembler construction
	// surfaces configuration errors (bad variant kind, bad naming column)
	// before any row is touched.
	assemblers := make(map[string]*payload.Assembler)
	var specs []xlsxreader.SheetSpec
	for _, vc := range cfg.Variants {
		if sheetFilter != "" && vc.Sheet != sheetFilter {
			continue
		}
		variant, err := payload.ParseVariant(vc.Kind)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		asm, err := payload.NewAssembler(variant, vc.FileNameColumns)
		if err != nil {
			return fmt.Errorf("invalid configuration for sheet %q: %w", vc.Sheet, err)
		}
		assemblers[vc.Sheet] = asm
		specs = append(specs, xlsxreader.SheetSpec{
			Name:     vc.Sheet,
			Variant:  variant,
			Required: vc.Required,
		})
	}
	if len(specs) == 0 {
		return fmt.Errorf("no configured sheet matches %q", sheetFilter)
	}

	fmt.Println("=== Disbursement Payload Generator ===")
	fmt.Printf("Workbook: %s\n", workbookPath)

	it, err := xlsxreader.Open(workbookPath, specs, cfg.Workbook.DataStartRow)
	if err != nil {
		return err
	}
	defer it.Close()

	writer, err := docwriter.NewWriter(outputDir)
	if err != nil {
		return err
	}

	perSheet := make(map[string]int)
	for it.Next() {
		row := it.Row()

		doc, err := assemblers[row.Sheet].Assemble(row.Sheet, row.Number, row.Cells)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		path, err := writer.Write(doc)
		if err != nil {
			// Partial output stays on disk; report what was persisted.
			fmt.Printf("Generated %d payload(s) before failure\n", len(writer.Paths()))
			return err
		}

		perSheet[row.Sheet]++
		if verbose {
			fmt.Printf("  ✓ %s row %d -> %s\n", row.Sheet, row.Number, filepath.Base(path))
		}
	}
	if err := it.Err(); err != nil {
		return err
	}

	fmt.Println("\n=== Generation Complete ===")
	for _, name := range it.Sheets() {
		fmt.Printf("%-28s %d payload(s)\n", name+":", perSheet[name])
	}
	fmt.Printf("%-28s %d payload(s)\n", "Total:", len(writer.Paths()))
	fmt.Printf("Output directory: %s\n", outputDir)

	return nil
}
