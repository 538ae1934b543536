// =============================================================================
// Disbursement Payload Generator - Document Writer
// =============================================================================
//
// This module persists assembled payloads to the document store: one UTF-8
// JSON file per data row, named from the row's identity values. Non-ASCII
// characters (the payloads carry Thai names) are written literally, not
// escaped. Writes are not rolled back on a mid-run failure; the paths
// returned so far tell the caller what was persisted.
//
// FILE NAMING:
//   <part1>_<part2>_<part3>_<part4>.json when every identity value is
//   present; otherwise a sequential payload_NNN.json fallback.
//
// =============================================================================

package docwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/payops-th/disburse/internal/payload"
	"github.com/payops-th/disburse/pkg/utils"
)

// Writer persists generated documents under one output directory.
type Writer struct {
	outputDir string
	seq       int
	paths     []string
}

// NewWriter creates a writer over the output directory, creating the
// directory if absent. Failure to create it is fatal for the run.
func NewWriter(outputDir string) (*Writer, error) {
	if err := utils.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{outputDir: outputDir}, nil
}

// Write serializes one document and persists it, returning the path.
// A write failure is fatal for the run; documents already written stay on
// disk and remain listed in Paths.
func (w *Writer) Write(doc *payload.GeneratedDocument) (string, error) {
	name := w.fileName(doc.NameParts)
	path := filepath.Join(w.outputDir, name)

	data, err := marshalPayload(doc.Payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	w.paths = append(w.paths, path)
	return path, nil
}

// Paths returns the persisted document paths in generation order.
func (w *Writer) Paths() []string {
	return w.paths
}

// fileName joins the identity values into the document name, or falls back
// to a sequential name when any identity value is missing. The sequence
// counts every written document so fallback names stay aligned with
// generation order.
func (w *Writer) fileName(parts []string) string {
	w.seq++
	if len(parts) == 0 {
		return fmt.Sprintf("payload_%03d.json", w.seq)
	}
	for _, p := range parts {
		if p == "" {
			return fmt.Sprintf("payload_%03d.json", w.seq)
		}
	}
	return strings.Join(parts, "_") + ".json"
}

// marshalPayload renders the document as indented UTF-8 JSON with
// non-ASCII characters preserved literally.
func marshalPayload(doc *payload.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
