// =============================================================================
// Disbursement Payload Generator - Send Command
// =============================================================================
//
// This file defines the 'send' command: submit selected payload files from
// the document store to the Disbursement API, strictly one at a time, and
// report a per-file outcome plus an aggregate failure list.
//
// COMMAND USAGE:
//   disburse send --select <file,...> --token <t> --user <u>
//   disburse send --all --token <t> --user <u>
//
// FLAGS:
//   --select   : Comma-separated payload file names to submit
//   --all      : Submit every not-yet-delivered payload in the store
//   --token    : Bearer token for the Authorization header
//   --user     : Caller identity for the x-user-name header
//   --registry : Override the configured delivery registry file
//
// Delivered payloads are tracked in the registry file; selecting one again
// rejects the whole batch before any HTTP call. Partial failure is a normal
// terminal state: the command exits zero after a completed batch even when
// some submissions failed, and writes a failure summary log.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/payops-th/disburse/internal/config"
	"github.com/payops-th/disburse/internal/submitter"
	"github.com/payops-th/disburse/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// selectFiles holds the payload file names chosen for this batch.
var selectFiles []string

// sendAll selects every not-yet-delivered payload in the store.
var sendAll bool

// token is the bearer token sent with each request.
var token string

// userName is the caller identity sent with each request.
var userName string

// registryOverride overrides the configured registry file path.
var registryOverride string

// =============================================================================
// SEND COMMAND DEFINITION
// =============================================================================

// sendCmd represents the 'send' command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit generated payloads to the Disbursement API",
	Long: `The send command submits selected payload files to the configured API
endpoint, one file at a time, in selection order.

Each submission records either the HTTP status and response body verbatim,
or a transport-error sentinel with the fault description. A 2xx response
marks the payload as delivered in the session registry; delivered payloads
cannot be selected again until the registry file is removed. Failures
(transport errors and statuses of 400 or above) never stop the batch - every
selected file is attempted and reported.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the send command and its flags.
func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringSliceVar(
		&selectFiles,
		"select",
		nil,
		"Comma-separated payload file names to submit",
	)

	sendCmd.Flags().BoolVar(
		&sendAll,
		"all",
		false,
		"Submit every not-yet-delivered payload in the store",
	)

	sendCmd.Flags().StringVar(
		&token,
		"token",
		"",
		"Bearer token for the Authorization header",
	)
	sendCmd.MarkFlagRequired("token")

	sendCmd.Flags().StringVar(
		&userName,
		"user",
		"",
		"Caller identity for the x-user-name header",
	)
	sendCmd.MarkFlagRequired("user")

	sendCmd.Flags().StringVar(
		&registryOverride,
		"registry",
		"",
		"Delivery registry file (overrides config)",
	)
}

// =============================================================================
// MAIN SUBMISSION FUNCTION
// =============================================================================

// runSend orchestrates one submission batch.
func runSend() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.API.URL == "" {
		return fmt.Errorf("invalid configuration: api.url is not set")
	}

	registryFile := cfg.RegistryFile
	if registryOverride != "" {
		registryFile = registryOverride
	}

	registry, err := submitter.LoadRegistry(registryFile)
	if err != nil {
		return err
	}

	selection, err := resolveSelection(cfg.OutputDir, registry)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		fmt.Println("Nothing to send: no undelivered payloads selected.")
		return nil
	}

	fmt.Println("=== Disbursement Payload Sender ===")
	fmt.Printf("Endpoint: %s\n", cfg.API.URL)
	fmt.Printf("Sending %d payload(s)...\n\n", len(selection))

	sub := submitter.New(cfg.API.URL, cfg.API.UserHeader, cfg.API.Timeout())
	creds := submitter.Credentials{Token: token, UserName: userName}

	report, err := sub.SubmitBatch(cfg.OutputDir, selection, creds, registry)
	if err != nil {
		return err
	}

	// Persist the registry before reporting: delivered documents must stay
	// excluded even if the process exits mid-print.
	if err := registry.Save(registryFile); err != nil {
		return err
	}

	printReport(report, cfg.OutputDir)
	return nil
}

// resolveSelection turns the --select/--all flags into the ordered list of
// documents for this batch.
func resolveSelection(storeDir string, registry *submitter.Registry) ([]string, error) {
	if sendAll == (len(selectFiles) > 0) {
		return nil, fmt.Errorf("specify exactly one of --select or --all")
	}

	if sendAll {
		documents, err := utils.ListDocuments(storeDir)
		if err != nil {
			return nil, err
		}
		return registry.Remaining(documents), nil
	}

	return selectFiles, nil
}

// printReport prints the per-file outcome lines and the aggregate failure
// list, and writes the failure summary log when anything failed.
func printReport(report *submitter.Report, outputDir string) {
	for _, res := range report.Results {
		mark := "✓"
		if res.Failed() {
			mark = "✗"
		}
		fmt.Printf("  %s %s | %s\n", mark, res.Document, res.StatusText())
		if verbose || res.Failed() {
			fmt.Printf("      %s\n", strings.TrimSpace(res.Text()))
		}
	}

	failures := report.Failures()

	fmt.Println("\n=== Submission Complete ===")
	fmt.Printf("Batch:      %s\n", report.BatchID)
	fmt.Printf("Total:      %d\n", len(report.Results))
	fmt.Printf("Delivered:  %d\n", len(report.Successes()))
	fmt.Printf("Failed:     %d\n", len(failures))

	if len(failures) > 0 {
		fmt.Println("\nFailed payloads:")
		entries := make([]utils.FailureEntry, 0, len(failures))
		for _, res := range failures {
			fmt.Printf("  - %s\n", res.Document)
			entries = append(entries, utils.FailureEntry{
				Document: res.Document,
				Status:   res.StatusText(),
				Response: res.Text(),
			})
		}
		if path, err := utils.WriteFailureLog(outputDir, report.BatchID, entries); err == nil {
			fmt.Printf("\nFailure log: %s\n", path)
		}
	}
}
