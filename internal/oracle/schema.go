package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// InvoiceFunctionName is the forced function of the extraction call.
const InvoiceFunctionName = "extract_invoice_data"

// InvoiceFunctionDescription describes the extraction function to the model.
const InvoiceFunctionDescription = "Pull out key invoice fields from a German utility-cost invoice."

// RequiredInvoiceFields are the fields the model is told to always attempt.
var RequiredInvoiceFields = []string{"invoice_date", "gross_amount", "net_amount", "vat_amount"}

func nullable(kind, description string) map[string]any {
	return map[string]any{
		"type":        []string{kind, "null"},
		"description": description,
	}
}

func invoiceProperties() map[string]any {
	return map[string]any{
		"invoice_date": nullable("string", "Datum der Rechnung, DD.MM.YYYY"),
		"period_start": nullable("string", "Abrechnungszeitraum von, DD.MM.YYYY"),
		"period_end":   nullable("string", "Abrechnungszeitraum bis, DD.MM.YYYY"),
		"gross_amount": nullable("number", "Bruttobetrag in EUR"),
		"net_amount":   nullable("number", "Nettobetrag in EUR"),
		"vat_amount":   nullable("number", "Umsatzsteuerbetrag in EUR"),
		"address":      nullable("string", "Rechnungsanschrift oder Versicherungsort"),
		"recipient":    nullable("string", "Empfänger der Rechnung"),
	}
}

// InvoiceFunctionParameters returns the JSON schema sent with the
// extraction call.
func InvoiceFunctionParameters() map[string]any {
	required := make([]string, len(RequiredInvoiceFields))
	copy(required, RequiredInvoiceFields)
	return map[string]any{
		"type":       "object",
		"properties": invoiceProperties(),
		"required":   required,
	}
}

// invoiceResponseSchema is the schema the returned arguments are checked
// against. Required fields are an instruction to the model, so nothing is
// required here; only the property types are enforced.
func invoiceResponseSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": invoiceProperties(),
	}
}

var (
	responseSchemaOnce sync.Once
	responseSchema     *jsonschema.Schema
	responseSchemaErr  error
)

func compiledResponseSchema() (*jsonschema.Schema, error) {
	responseSchemaOnce.Do(func() {
		b, err := json.Marshal(invoiceResponseSchema())
		if err != nil {
			responseSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("invoice.json", bytes.NewReader(b)); err != nil {
			responseSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		responseSchema, responseSchemaErr = compiler.Compile("invoice.json")
	})
	return responseSchema, responseSchemaErr
}

// ValidateInvoiceArguments checks raw extraction arguments against the
// invoice response schema.
func ValidateInvoiceArguments(raw []byte) error {
	sch, err := compiledResponseSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("arguments do not match schema: %w", err)
	}
	return nil
}
