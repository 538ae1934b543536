// =============================================================================
// Disbursement Payload Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (disburse)
//   ├── generateCmd (disburse generate)
//   ├── sendCmd (disburse send)
//   └── versionCmd (disburse version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose output when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "disburse",

	Short: "Disbursement Payload Generator - Excel rows to JSON payloads to the Disbursement API",

	Long: `Disbursement Payload Generator is a CLI tool that converts tabular
disbursement records from an Excel workbook into JSON payload files, one per
row, and submits selected payloads to the Disbursement API.

Key Features:
  - One JSON payload per workbook row, schema selected by sheet category
  - Lenient, never-failing cell coercion matching the upstream template
  - Deterministic payload file naming from configured identity columns
  - Sequential submission with per-file results and an idempotency registry
    that keeps delivered payloads from being resent in the same session

Example Usage:
  disburse generate --workbook ./API_Transaction.xlsx
  disburse send --all --token $TOKEN --user somchai.j
  disburse send --select GPM_Agent_Bank_transfer_DT0001.json --token $TOKEN --user somchai.j`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags shared by every subcommand.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables per-row/per-file detail output.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output",
	)
}
