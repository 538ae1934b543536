// =============================================================================
// Disbursement Payload Generator - Batch Submission Orchestrator
// =============================================================================
//
// This module submits selected payload documents to the Disbursement API,
// one at a time, in selection order. Each document is a state transition
// (pending -> delivered | failed) applied sequentially; the delivery
// registry is mutated only from this single loop, so no locking is needed.
//
// RULES:
//   - Selection must be a subset of the document store and disjoint from
//     the delivery registry; violating either is a caller error detected
//     before any HTTP call is made.
//   - A transport fault (connection failure, timeout) records the ERROR
//     sentinel and the fault text; the batch continues.
//   - A received response records its numeric status and verbatim body;
//     2xx additionally enters the document into the registry.
//   - The batch never aborts early: exactly one result per selected
//     document, in submission order. Failures are the ERROR sentinel and
//     any status >= 400.
//
// =============================================================================

package submitter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/payops-th/disburse/pkg/utils"
)

// StatusTransportError is the sentinel status recorded when no HTTP
// response was received at all.
const StatusTransportError = "ERROR"

// =============================================================================
// DELIVERY REGISTRY
// =============================================================================

// Registry is the session-scoped set of documents already confirmed
// delivered. A document that enters the registry is permanently excluded
// from re-selection within the session. The registry is an explicit state
// object owned by the calling session, never ambient state.
type Registry struct {
	delivered map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{delivered: make(map[string]struct{})}
}

// LoadRegistry reads a registry from its JSON file. A missing file yields
// an empty registry - a fresh session.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	r := NewRegistry()
	for _, name := range names {
		r.delivered[name] = struct{}{}
	}
	return r, nil
}

// Save persists the registry to its JSON file.
func (r *Registry) Save(path string) error {
	names := make([]string, 0, len(r.delivered))
	for name := range r.delivered {
		names = append(names, name)
	}
	sort.Strings(names)

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Contains reports whether a document is already confirmed delivered.
func (r *Registry) Contains(document string) bool {
	_, ok := r.delivered[document]
	return ok
}

// Add records a document as delivered.
func (r *Registry) Add(document string) {
	r.delivered[document] = struct{}{}
}

// Len returns the number of delivered documents.
func (r *Registry) Len() int {
	return len(r.delivered)
}

// Remaining filters a document list down to those not yet delivered,
// preserving order.
func (r *Registry) Remaining(documents []string) []string {
	var out []string
	for _, d := range documents {
		if !r.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

// =============================================================================
// RESULTS
// =============================================================================

// DeliveryResult is the outcome of one submission attempt, never mutated
// after creation.
type DeliveryResult struct {
	// Document is the payload file name.
	Document string

	// StatusCode is the numeric HTTP status, or 0 when no response was
	// received (transport fault).
	StatusCode int

	// Err is the transport fault description; empty when a response was
	// received.
	Err string

	// Response is the raw response body, verbatim.
	Response string
}

// Failed reports whether this attempt counts as a failure: the transport
// sentinel always does, and so does any status of 400 or greater.
func (d DeliveryResult) Failed() bool {
	return d.StatusCode == 0 || d.StatusCode >= 400
}

// StatusText renders the recorded status: the numeric code, or the ERROR
// sentinel for transport faults.
func (d DeliveryResult) StatusText() string {
	if d.StatusCode == 0 {
		return StatusTransportError
	}
	return fmt.Sprintf("%d", d.StatusCode)
}

// Text returns the response body or, for transport faults, the fault
// description.
func (d DeliveryResult) Text() string {
	if d.StatusCode == 0 {
		return d.Err
	}
	return d.Response
}

// Report aggregates one submission batch: exactly one result per selected
// document, in submission order.
type Report struct {
	// BatchID identifies this submission pass in logs and the failure
	// summary.
	BatchID string

	// Results holds one entry per selected document, in order.
	Results []DeliveryResult
}

// Successes returns the delivered results, in order.
func (r *Report) Successes() []DeliveryResult {
	var out []DeliveryResult
	for _, res := range r.Results {
		if !res.Failed() {
			out = append(out, res)
		}
	}
	return out
}

// Failures returns the failed results, in order.
func (r *Report) Failures() []DeliveryResult {
	var out []DeliveryResult
	for _, res := range r.Results {
		if res.Failed() {
			out = append(out, res)
		}
	}
	return out
}

// =============================================================================
// SUBMITTER
// =============================================================================

// Credentials carries the transport credentials of one batch.
type Credentials struct {
	// Token is sent as "Authorization: Bearer <token>".
	Token string

	// UserName is sent in the caller-identity header.
	UserName string
}

// Submitter dispatches payload documents to the remote endpoint.
type Submitter struct {
	endpoint   string
	userHeader string
	client     *http.Client
}

// New creates a submitter for the given endpoint. The timeout bounds every
// request; an exceeded timeout fails the attempt instead of hanging the
// batch. userHeader names the caller-identity header.
func New(endpoint, userHeader string, timeout time.Duration) *Submitter {
	return &Submitter{
		endpoint:   endpoint,
		userHeader: userHeader,
		client:     &http.Client{Timeout: timeout},
	}
}

// SubmitBatch submits the selected documents from the store directory,
// strictly sequentially and in selection order. The registry gains an entry
// for each 2xx response. The returned report holds one result per selected
// document; a non-nil error means the batch was rejected before any HTTP
// call (caller error), never a partial failure.
func (s *Submitter) SubmitBatch(storeDir string, selection []string, creds Credentials, registry *Registry) (*Report, error) {
	// Reject the batch up front: selecting an already-delivered document or
	// a document outside the store is a caller error, not a transport one.
	for _, document := range selection {
		if registry.Contains(document) {
			return nil, fmt.Errorf("document %s already delivered in this session", document)
		}
		if !utils.FileExists(filepath.Join(storeDir, document)) {
			return nil, fmt.Errorf("document %s not found in store %s", document, storeDir)
		}
	}

	report := &Report{BatchID: uuid.NewString()}

	for _, document := range selection {
		result := s.submitOne(storeDir, document, creds)
		if !result.Failed() {
			registry.Add(document)
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// submitOne loads a persisted payload and issues a single POST. Any fault
// becomes a recorded result; this function never fails the batch.
func (s *Submitter) submitOne(storeDir, document string, creds Credentials) DeliveryResult {
	body, err := os.ReadFile(filepath.Join(storeDir, document))
	if err != nil {
		return DeliveryResult{Document: document, Err: fmt.Sprintf("reading payload: %v", err)}
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{Document: document, Err: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	req.Header.Set(s.userHeader, creds.UserName)

	resp, err := s.client.Do(req)
	if err != nil {
		return DeliveryResult{Document: document, Err: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return DeliveryResult{Document: document, Err: fmt.Sprintf("reading response: %v", err)}
	}

	return DeliveryResult{
		Document:   document,
		StatusCode: resp.StatusCode,
		Response:   string(respBody),
	}
}
