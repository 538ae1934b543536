// =============================================================================
// Disbursement Payload Generator - Payload Assembler
// =============================================================================
//
// This file builds one Document per data row. The shared envelope is built
// by a single helper; each variant contributes only its own payee/committee
// builder and its own field-to-column tables. Branching by variant rather
// than by dynamic column count keeps the column-to-field mapping stable and
// auditable per category.
//
// COLUMN TABLES:
//   The tables below mirror the upstream workbook template. The envelope
//   occupies columns E-R on every sheet; payee and committee columns shift
//   per variant because the name block differs in width.
//
// =============================================================================

package payload

import (
	"fmt"

	"github.com/payops-th/disburse/internal/cell"
	"github.com/payops-th/disburse/internal/columns"
)

// =============================================================================
// FIELD-TO-COLUMN TABLES
// =============================================================================

// mustLetters builds a ColumnMap from static letter tables. The tables are
// compile-time constants, so a failure here is a programmer error.
func mustLetters(fields map[string]string) columns.ColumnMap {
	m, err := columns.FromLetters(fields)
	if err != nil {
		panic(err)
	}
	return m
}

// envelopeColumns feed the shared top-level envelope on every sheet.
var envelopeColumns = mustLetters(map[string]string{
	"system_code":       "E",
	"approval_flag":     "F",
	"call_back_url":     "G",
	"doc_no":            "H",
	"doc_ref":           "I",
	"net_amount":        "J",
	"remark":            "K",
	"group_code":        "L",
	"account_code":      "M",
	"disbursement_type": "N",
	"vat":               "O",
	"wht":               "P",
	"amount":            "Q",
	"ga_no":             "R",
})

// personPayeeColumns feed the person-style payee block (agent_broker and
// generic variants), excluding the tax columns which differ between them.
var personPayeeColumns = map[string]string{
	"payment_type":             "S",
	"payee_type":               "T",
	"title_en":                 "U",
	"title_th":                 "V",
	"first_name_en":            "W",
	"first_name_th":            "X",
	"last_name_en":             "Y",
	"last_name_th":             "Z",
	"mobile_no":                "AA",
	"identity_type":            "AB",
	"identity_no":              "AC",
	"code":                     "AD",
	"bank_code":                "AE",
	"branch_code":              "AF",
	"account_no":               "AG",
	"account_name":             "AH",
	"media_clearing_type_code": "AI",
	"cheque_info":              "AJ",
	"k_trade_info":             "AK",
	"relation":                 "AL",
	"date_of_birth":            "AM",
	"pay_rate":                 "AN",
	"amount":                   "AO",
	"delivery_address_1":       "AP",
	"delivery_address_2":       "AQ",
	"mailing_zip_code":         "AR",
}

// agentBrokerPayeeColumns add the opaque tax pass-through column.
var agentBrokerPayeeColumns = mustLetters(merge(personPayeeColumns, map[string]string{
	"tax": "AS",
}))

// genericPayeeColumns add the structured tax sub-object columns.
var genericPayeeColumns = mustLetters(merge(personPayeeColumns, map[string]string{
	"tax_rate":       "AS",
	"tax_incentive":  "AT",
	"tax_start_date": "AU",
	"tax_end_date":   "AV",
}))

// companyPayeeColumns feed the organization-style payee block. The name
// block is two columns narrower than the person-style one (payee_name plus
// title instead of title plus first/last name), so everything after it
// shifts left.
var companyPayeeColumns = mustLetters(map[string]string{
	"payment_type":             "S",
	"payee_type":               "T",
	"payee_name_en":            "U",
	"payee_name_th":            "V",
	"title_en":                 "W",
	"title_th":                 "X",
	"mobile_no":                "Y",
	"identity_type":            "Z",
	"identity_no":              "AA",
	"code":                     "AB",
	"bank_code":                "AC",
	"branch_code":              "AD",
	"account_no":               "AE",
	"account_name":             "AF",
	"media_clearing_type_code": "AG",
	"cheque_info":              "AH",
	"k_trade_info":             "AI",
	"relation":                 "AJ",
	"date_of_birth":            "AK",
	"pay_rate":                 "AL",
	"amount":                   "AM",
	"delivery_address_1":       "AN",
	"delivery_address_2":       "AO",
	"mailing_zip_code":         "AP",
	"tax":                      "AQ",
})

// companyCommitteeColumns feed the single committee entry of the company
// variant. Columns run past "Z", which is why letter conversion has to
// handle multi-letter references.
var companyCommitteeColumns = mustLetters(map[string]string{
	"title_en":      "AR",
	"title_th":      "AS",
	"first_name_en": "AT",
	"first_name_th": "AU",
	"last_name_en":  "AV",
	"last_name_th":  "AW",
	"identity_type": "AX",
	"identity_no":   "AY",
})

func merge(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assembler builds GeneratedDocuments for one payload variant.
type Assembler struct {
	variant     Variant
	envelope    *columns.Resolver
	payee       *columns.Resolver
	committee   *columns.Resolver
	nameIndexes []int
}

// NewAssembler creates an assembler for the given variant. nameLetters are
// the column letters whose values derive the generated file name; invalid
// letters are a configuration error.
func NewAssembler(v Variant, nameLetters []string) (*Assembler, error) {
	a := &Assembler{
		variant:  v,
		envelope: columns.NewResolver(envelopeColumns),
	}

	switch v {
	case VariantAgentBroker:
		a.payee = columns.NewResolver(agentBrokerPayeeColumns)
	case VariantCompany:
		a.payee = columns.NewResolver(companyPayeeColumns)
		a.committee = columns.NewResolver(companyCommitteeColumns)
	case VariantGeneric:
		a.payee = columns.NewResolver(genericPayeeColumns)
	default:
		return nil, fmt.Errorf("unknown variant kind %q", v)
	}

	for _, letter := range nameLetters {
		idx, err := columns.LetterIndex(letter)
		if err != nil {
			return nil, fmt.Errorf("file name column: %w", err)
		}
		a.nameIndexes = append(a.nameIndexes, idx)
	}

	return a, nil
}

// Variant returns the variant this assembler builds.
func (a *Assembler) Variant() Variant { return a.variant }

// Assemble builds the payload document for one raw row. Coercion never
// fails per-row; the only error channel is an unmapped field, which is a
// configuration error.
func (a *Assembler) Assemble(sheet string, rowNum int, row []cell.Cell) (*GeneratedDocument, error) {
	doc, err := a.buildEnvelope(row)
	if err != nil {
		return nil, err
	}

	payee, committees, err := a.buildPayees(row)
	if err != nil {
		return nil, err
	}
	doc.Approval.Payees.PayeeInfo = []PayeeInfo{payee}
	doc.Approval.Payees.Committees = committees

	return &GeneratedDocument{
		Payload:   doc,
		NameParts: a.nameParts(row),
		Sheet:     sheet,
		Row:       rowNum,
	}, nil
}

// buildEnvelope populates the top-level fields shared by every variant.
func (a *Assembler) buildEnvelope(row []cell.Cell) (*Document, error) {
	get := func(field string) (cell.Cell, error) {
		return a.envelope.Value(row, field)
	}

	fields := make(map[string]cell.Cell, len(envelopeColumns))
	for name := range envelopeColumns {
		c, err := get(name)
		if err != nil {
			return nil, err
		}
		fields[name] = c
	}

	return &Document{
		SystemCode:   cell.AsString(fields["system_code"]),
		ApprovalFlag: cell.AsBool(fields["approval_flag"]),
		CallBackURL:  cell.AsString(fields["call_back_url"]),
		Approval: Approval{
			DocNo:     cell.AsString(fields["doc_no"]),
			DocRef:    cell.AsString(fields["doc_ref"]),
			NetAmount: cell.AsFloat(fields["net_amount"]),
			Remark:    cell.AsString(fields["remark"]),
			DocMetaData: DocMetaData{
				GroupCode:        cell.AsString(fields["group_code"]),
				AccountCode:      cell.AsString(fields["account_code"]),
				DisbursementType: cell.AsString(fields["disbursement_type"]),
				VAT:              cell.AsFloat(fields["vat"]),
				WHT:              cell.AsFloat(fields["wht"]),
				Amount:           cell.AsFloat(fields["amount"]),
			},
			Payees: Payees{
				GANo:       cell.AsRaw(fields["ga_no"]),
				PayeeInfo:  []PayeeInfo{},
				Committees: []Committee{},
			},
		},
	}, nil
}

// buildPayees dispatches to the variant's payee/committee builder.
func (a *Assembler) buildPayees(row []cell.Cell) (PayeeInfo, []Committee, error) {
	switch a.variant {
	case VariantAgentBroker:
		p, err := a.buildPersonPayee(row)
		if err != nil {
			return PayeeInfo{}, nil, err
		}
		tax, err := a.payee.Value(row, "tax")
		if err != nil {
			return PayeeInfo{}, nil, err
		}
		p.Tax = cell.AsRaw(tax)
		return p, []Committee{}, nil

	case VariantCompany:
		p, err := a.buildCompanyPayee(row)
		if err != nil {
			return PayeeInfo{}, nil, err
		}
		member, err := a.buildCommittee(row)
		if err != nil {
			return PayeeInfo{}, nil, err
		}
		return p, []Committee{member}, nil

	case VariantGeneric:
		p, err := a.buildPersonPayee(row)
		if err != nil {
			return PayeeInfo{}, nil, err
		}
		tax, err := a.buildTaxInfo(row)
		if err != nil {
			return PayeeInfo{}, nil, err
		}
		p.Tax = tax
		return p, []Committee{}, nil
	}

	return PayeeInfo{}, nil, fmt.Errorf("unknown variant kind %q", a.variant)
}

// buildPersonPayee builds the person-style payee shared by the agent_broker
// and generic variants, leaving Tax for the caller to fill.
func (a *Assembler) buildPersonPayee(row []cell.Cell) (PayeeInfo, error) {
	f, err := a.resolveAll(a.payee, row,
		"payment_type", "payee_type",
		"title_en", "title_th",
		"first_name_en", "first_name_th",
		"last_name_en", "last_name_th",
		"mobile_no", "identity_type", "identity_no", "code",
		"bank_code", "branch_code", "account_no", "account_name", "media_clearing_type_code",
		"cheque_info", "k_trade_info", "relation", "date_of_birth",
		"pay_rate", "amount",
		"delivery_address_1", "delivery_address_2", "mailing_zip_code",
	)
	if err != nil {
		return PayeeInfo{}, err
	}

	return PayeeInfo{
		PaymentType: cell.AsString(f["payment_type"]),
		PayeeType:   cell.AsString(f["payee_type"]),
		Title: Bilingual{
			EnUS: cell.AsString(f["title_en"]),
			ThTH: cell.AsString(f["title_th"]),
		},
		FirstName: &Bilingual{
			EnUS: cell.AsString(f["first_name_en"]),
			ThTH: cell.AsString(f["first_name_th"]),
		},
		LastName: &Bilingual{
			EnUS: cell.AsString(f["last_name_en"]),
			ThTH: cell.AsString(f["last_name_th"]),
		},
		MobileNo:     cell.AsString(f["mobile_no"]),
		IdentityType: cell.AsString(f["identity_type"]),
		IdentityNo:   cell.AsString(f["identity_no"]),
		Code:         cell.AsString(f["code"]),
		BankInfo: BankInfo{
			BankCode:              cell.AsString(f["bank_code"]),
			BranchCode:            cell.AsString(f["branch_code"]),
			AccountNo:             cell.AsString(f["account_no"]),
			AccountName:           cell.AsString(f["account_name"]),
			MediaClearingTypeCode: cell.AsString(f["media_clearing_type_code"]),
		},
		ChequeInfo:       cell.AsRaw(f["cheque_info"]),
		KTradeInfo:       cell.AsRaw(f["k_trade_info"]),
		Relation:         cell.AsString(f["relation"]),
		DateOfBirth:      cell.AsDate(f["date_of_birth"]),
		PayRate:          cell.AsFloat(f["pay_rate"]),
		Amount:           cell.AsFloat(f["amount"]),
		DeliveryAddress1: cell.AsString(f["delivery_address_1"]),
		DeliveryAddress2: cell.AsString(f["delivery_address_2"]),
		MailingZipCode:   cell.AsString(f["mailing_zip_code"]),
	}, nil
}

// buildCompanyPayee builds the organization-style payee of the company
// variant, including its opaque tax pass-through.
func (a *Assembler) buildCompanyPayee(row []cell.Cell) (PayeeInfo, error) {
	f, err := a.resolveAll(a.payee, row,
		"payment_type", "payee_type",
		"payee_name_en", "payee_name_th",
		"title_en", "title_th",
		"mobile_no", "identity_type", "identity_no", "code",
		"bank_code", "branch_code", "account_no", "account_name", "media_clearing_type_code",
		"cheque_info", "k_trade_info", "relation", "date_of_birth",
		"pay_rate", "amount",
		"delivery_address_1", "delivery_address_2", "mailing_zip_code",
		"tax",
	)
	if err != nil {
		return PayeeInfo{}, err
	}

	return PayeeInfo{
		PaymentType: cell.AsString(f["payment_type"]),
		PayeeType:   cell.AsString(f["payee_type"]),
		PayeeName: &Bilingual{
			EnUS: cell.AsString(f["payee_name_en"]),
			ThTH: cell.AsString(f["payee_name_th"]),
		},
		Title: Bilingual{
			EnUS: cell.AsString(f["title_en"]),
			ThTH: cell.AsString(f["title_th"]),
		},
		MobileNo:     cell.AsString(f["mobile_no"]),
		IdentityType: cell.AsString(f["identity_type"]),
		IdentityNo:   cell.AsString(f["identity_no"]),
		Code:         cell.AsString(f["code"]),
		BankInfo: BankInfo{
			BankCode:              cell.AsString(f["bank_code"]),
			BranchCode:            cell.AsString(f["branch_code"]),
			AccountNo:             cell.AsString(f["account_no"]),
			AccountName:           cell.AsString(f["account_name"]),
			MediaClearingTypeCode: cell.AsString(f["media_clearing_type_code"]),
		},
		ChequeInfo:       cell.AsRaw(f["cheque_info"]),
		KTradeInfo:       cell.AsRaw(f["k_trade_info"]),
		Relation:         cell.AsString(f["relation"]),
		DateOfBirth:      cell.AsDate(f["date_of_birth"]),
		PayRate:          cell.AsFloat(f["pay_rate"]),
		Amount:           cell.AsFloat(f["amount"]),
		DeliveryAddress1: cell.AsString(f["delivery_address_1"]),
		DeliveryAddress2: cell.AsString(f["delivery_address_2"]),
		MailingZipCode:   cell.AsString(f["mailing_zip_code"]),
		Tax:              cell.AsRaw(f["tax"]),
	}, nil
}

// buildCommittee builds the single committee member of the company variant.
func (a *Assembler) buildCommittee(row []cell.Cell) (Committee, error) {
	f, err := a.resolveAll(a.committee, row,
		"title_en", "title_th",
		"first_name_en", "first_name_th",
		"last_name_en", "last_name_th",
		"identity_type", "identity_no",
	)
	if err != nil {
		return Committee{}, err
	}

	return Committee{
		Title: Bilingual{
			EnUS: cell.AsString(f["title_en"]),
			ThTH: cell.AsString(f["title_th"]),
		},
		FirstName: Bilingual{
			EnUS: cell.AsString(f["first_name_en"]),
			ThTH: cell.AsString(f["first_name_th"]),
		},
		LastName: Bilingual{
			EnUS: cell.AsString(f["last_name_en"]),
			ThTH: cell.AsString(f["last_name_th"]),
		},
		IdentityType: cell.AsString(f["identity_type"]),
		IdentityNo:   cell.AsString(f["identity_no"]),
	}, nil
}

// buildTaxInfo builds the structured tax sub-object of the generic variant.
func (a *Assembler) buildTaxInfo(row []cell.Cell) (*TaxInfo, error) {
	f, err := a.resolveAll(a.payee, row,
		"tax_rate", "tax_incentive", "tax_start_date", "tax_end_date",
	)
	if err != nil {
		return nil, err
	}

	return &TaxInfo{
		Rate:      cell.AsFloat(f["tax_rate"]),
		Incentive: cell.AsBool(f["tax_incentive"]),
		StartDate: cell.AsDate(f["tax_start_date"]),
		EndDate:   cell.AsDate(f["tax_end_date"]),
	}, nil
}

// resolveAll resolves a set of fields through one resolver, failing on the
// first unmapped name.
func (a *Assembler) resolveAll(r *columns.Resolver, row []cell.Cell, names ...string) (map[string]cell.Cell, error) {
	out := make(map[string]cell.Cell, len(names))
	for _, name := range names {
		c, err := r.Value(row, name)
		if err != nil {
			return nil, err
		}
		out[name] = c
	}
	return out, nil
}

// nameParts coerces the configured naming columns to their string forms.
func (a *Assembler) nameParts(row []cell.Cell) []string {
	parts := make([]string, 0, len(a.nameIndexes))
	for _, idx := range a.nameIndexes {
		c := cell.EmptyCell()
		if idx < len(row) {
			c = cell.Normalize(row[idx])
		}
		parts = append(parts, cell.AsString(c))
	}
	return parts
}
