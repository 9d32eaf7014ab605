package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"umlage/internal/domain"
	"umlage/internal/extract"
	"umlage/mocks"
)

func TestExtract_AllFields(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("ExtractFields", mock.Anything, "Rechnung").Return(`{
		"invoice_date": "15.01.2024",
		"period_start": "01.01.2023",
		"period_end": "31.12.2023",
		"gross_amount": 1190.50,
		"net_amount": 1000.42,
		"vat_amount": 190.08,
		"address": "Musterstraße 1, 12345 Berlin",
		"recipient": "WEG Musterstraße 1"
	}`, nil)

	fields, err := extract.NewExtractor(o, zerolog.Nop()).Extract(context.Background(), "Rechnung")

	require.NoError(t, err)
	require.NotNil(t, fields.InvoiceDate)
	assert.Equal(t, "15.01.2024", *fields.InvoiceDate)
	assert.Equal(t, "31.12.2023", *fields.PeriodEnd)
	require.True(t, fields.GrossAmount.Valid)
	assert.Equal(t, "1190.5", fields.GrossAmount.Decimal.String())
	assert.Equal(t, "1000.42", fields.NetAmount.Decimal.String())
	assert.Equal(t, "190.08", fields.VATAmount.Decimal.String())
	assert.Equal(t, "Musterstraße 1, 12345 Berlin", fields.AddressValue())
	assert.Equal(t, "WEG Musterstraße 1", *fields.Recipient)
}

func TestExtract_NullAndMissingFieldsAreAbsent(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("ExtractFields", mock.Anything, "").Return(`{"invoice_date":null,"gross_amount":null,"net_amount":null,"vat_amount":null}`, nil)

	fields, err := extract.NewExtractor(o, zerolog.Nop()).Extract(context.Background(), "")

	require.NoError(t, err)
	assert.Nil(t, fields.InvoiceDate)
	assert.Nil(t, fields.PeriodStart)
	assert.False(t, fields.GrossAmount.Valid)
	assert.False(t, fields.VATAmount.Valid)
	assert.Equal(t, "", fields.AddressValue())
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"transport", "", errors.New("connection reset")},
		{"not json", "gross 119", nil},
		{"wrong type", `{"gross_amount":"119,00 EUR"}`, nil},
		{"array", `[{"gross_amount":119}]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := new(mocks.MockOracle)
			o.On("ExtractFields", mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			fields, err := extract.NewExtractor(o, zerolog.Nop()).Extract(context.Background(), "text")

			assert.Nil(t, fields)
			assert.ErrorIs(t, err, domain.ErrExtractionFailed)
			if tt.err != nil {
				assert.Contains(t, err.Error(), "connection reset")
			}
		})
	}
}
