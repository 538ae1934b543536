// =============================================================================
// Disbursement Payload Generator - Payload Types
// =============================================================================
//
// This file defines the JSON document submitted to the Disbursement API.
// Every payload shares one top-level envelope; the variants differ only in
// how the payee_info and committees sub-structures are populated and which
// column positions feed them.
//
// VARIANTS:
//   agent_broker : person-style payee (title/first/last name, bilingual),
//                  opaque tax pass-through, no committees
//   company      : organization-style payee (payee_name, bilingual) plus
//                  exactly one committee member
//   generic      : person-style payee with a structured tax sub-object,
//                  no committees
//
// =============================================================================

package payload

import "fmt"

// =============================================================================
// VARIANT
// =============================================================================

// Variant selects which payee/committee construction rules apply to a row.
type Variant string

const (
	// VariantAgentBroker produces a person-style payee with an opaque tax
	// field and an empty committees sequence.
	VariantAgentBroker Variant = "agent_broker"

	// VariantCompany produces an organization-style payee plus exactly one
	// committee member.
	VariantCompany Variant = "company"

	// VariantGeneric produces a person-style payee with a structured tax
	// sub-object and an empty committees sequence.
	VariantGeneric Variant = "generic"
)

// ParseVariant converts a configuration string into a Variant.
// An unknown kind is a configuration error.
func ParseVariant(kind string) (Variant, error) {
	switch Variant(kind) {
	case VariantAgentBroker, VariantCompany, VariantGeneric:
		return Variant(kind), nil
	default:
		return "", fmt.Errorf("unknown variant kind %q", kind)
	}
}

// =============================================================================
// ENVELOPE
// =============================================================================

// Document is the top-level payload envelope, identical across variants.
type Document struct {
	SystemCode   string   `json:"system_code"`
	ApprovalFlag bool     `json:"approval_flag"`
	CallBackURL  string   `json:"call_back_url"`
	Approval     Approval `json:"approval"`
}

// Approval carries the disbursement approval block.
type Approval struct {
	DocNo       string      `json:"doc_no"`
	DocRef      string      `json:"doc_ref"`
	NetAmount   *float64    `json:"net_amount"`
	Remark      string      `json:"remark"`
	DocMetaData DocMetaData `json:"doc_meta_data"`
	Payees      Payees      `json:"payees"`
}

// DocMetaData carries the accounting metadata of one disbursement.
type DocMetaData struct {
	GroupCode        string   `json:"group_code"`
	AccountCode      string   `json:"account_code"`
	DisbursementType string   `json:"disbursement_type"`
	VAT              *float64 `json:"vat"`
	WHT              *float64 `json:"wht"`
	Amount           *float64 `json:"amount"`
}

// Payees groups the payee and committee entries of a disbursement.
// PayeeInfo and Committees are never nil: variants that carry no committee
// emit an empty sequence, not null.
type Payees struct {
	GANo       any         `json:"ga_no"`
	PayeeInfo  []PayeeInfo `json:"payee_info"`
	Committees []Committee `json:"committees"`
}

// =============================================================================
// PAYEE / COMMITTEE STRUCTURES
// =============================================================================

// Bilingual is a name field carried in both English and Thai.
type Bilingual struct {
	EnUS string `json:"en_US"`
	ThTH string `json:"th_TH"`
}

// BankInfo carries the payee's bank transfer destination.
type BankInfo struct {
	BankCode              string `json:"bank_code"`
	BranchCode            string `json:"branch_code"`
	AccountNo             string `json:"account_no"`
	AccountName           string `json:"account_name"`
	MediaClearingTypeCode string `json:"media_clearing_type_code"`
}

// TaxInfo is the structured tax sub-object of the generic variant. The
// agent_broker and company variants instead carry tax as an opaque
// pass-through value.
type TaxInfo struct {
	Rate      *float64 `json:"rate"`
	Incentive bool     `json:"incentive"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
}

// PayeeInfo is a single payee entry. PayeeName is set only by the company
// variant; FirstName/LastName only by the person-style variants. Tax holds
// either an opaque pass-through value or a *TaxInfo depending on variant.
type PayeeInfo struct {
	PaymentType      string     `json:"payment_type"`
	PayeeType        string     `json:"payee_type"`
	PayeeName        *Bilingual `json:"payee_name,omitempty"`
	Title            Bilingual  `json:"title"`
	FirstName        *Bilingual `json:"first_name,omitempty"`
	LastName         *Bilingual `json:"last_name,omitempty"`
	MobileNo         string     `json:"mobile_no"`
	IdentityType     string     `json:"identity_type"`
	IdentityNo       string     `json:"identity_no"`
	Code             string     `json:"code"`
	BankInfo         BankInfo   `json:"bank_info"`
	ChequeInfo       any        `json:"cheque_info"`
	KTradeInfo       any        `json:"k_trade_info"`
	Relation         string     `json:"relation"`
	DateOfBirth      *string    `json:"date_of_birth"`
	PayRate          *float64   `json:"pay_rate"`
	Amount           *float64   `json:"amount"`
	DeliveryAddress1 string     `json:"delivery_address_1"`
	DeliveryAddress2 string     `json:"delivery_address_2"`
	MailingZipCode   string     `json:"mailing_zip_code"`
	Tax              any        `json:"tax"`
}

// Committee is a single committee member entry (company variant only).
type Committee struct {
	Title        Bilingual `json:"title"`
	FirstName    Bilingual `json:"first_name"`
	LastName     Bilingual `json:"last_name"`
	IdentityType string    `json:"identity_type"`
	IdentityNo   string    `json:"identity_no"`
}

// =============================================================================
// GENERATED DOCUMENT
// =============================================================================

// GeneratedDocument is an assembled payload plus the identity values that
// derive its file name. It is created once per data row and never mutated.
type GeneratedDocument struct {
	// Payload is the JSON-serializable document.
	Payload *Document

	// NameParts are the coerced values of the variant's configured naming
	// columns, in order. The document writer joins them into the file name,
	// or falls back to a sequential name when any part is empty.
	NameParts []string

	// Sheet is the source sheet the row came from.
	Sheet string

	// Row is the 1-based source row number, kept for reporting.
	Row int
}
