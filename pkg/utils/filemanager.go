// =============================================================================
// Disbursement Payload Generator - File Manager Utilities
// =============================================================================
//
// This module contains the file system helpers shared by the document
// writer and the submission command: directory creation, document store
// listing, and the failure summary log written after a submission batch.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// =============================================================================
// DIRECTORY AND FILE HELPERS
// =============================================================================

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks whether a path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ListDocuments returns the base names of the JSON documents in the store
// directory, sorted, skipping dotfiles (the delivery registry lives in the
// store directory as a dotfile). An absent store directory yields an empty
// list, not an error - no generation run has happened yet.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list documents in %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if filepath.Ext(name) == ".json" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// =============================================================================
// FAILURE SUMMARY LOG
// =============================================================================

// FailureEntry is one failed submission recorded in the summary log.
type FailureEntry struct {
	// Document is the payload file name.
	Document string

	// Status is the recorded status: a numeric HTTP status or the
	// transport-error sentinel.
	Status string

	// Response is the raw response body or fault description.
	Response string
}

// WriteFailureLog writes the failure summary of a submission batch to the
// output directory and returns the log path.
func WriteFailureLog(outputDir, batchID string, failures []FailureEntry) (string, error) {
	if err := EnsureDir(outputDir); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, fmt.Sprintf("failures_%s.log", time.Now().Format("20060102_150405")))

	var b strings.Builder
	b.WriteString("=== Submission Failures ===\n")
	b.WriteString(fmt.Sprintf("Batch:     %s\n", batchID))
	b.WriteString(fmt.Sprintf("Timestamp: %s\n", time.Now().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Failed:    %d\n\n", len(failures)))

	for _, f := range failures {
		b.WriteString(fmt.Sprintf("File:     %s\n", f.Document))
		b.WriteString(fmt.Sprintf("Status:   %s\n", f.Status))
		b.WriteString(fmt.Sprintf("Response: %s\n", f.Response))
		b.WriteString(strings.Repeat("-", 60) + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write failure log: %w", err)
	}
	return path, nil
}
