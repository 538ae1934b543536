// =============================================================================
// Disbursement Payload Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the disburse CLI application. It reads
// disbursement rows from an Excel workbook, generates one JSON payload file
// per row, and submits selected payloads to the Disbursement API.
//
// USAGE:
//   disburse generate       - Generate JSON payloads from a workbook
//   disburse send           - Submit generated payloads to the API
//   disburse version        - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/payops-th/disburse/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
