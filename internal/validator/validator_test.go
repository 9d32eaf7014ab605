package validator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"umlage/internal/domain"
	"umlage/internal/validator"
	"umlage/mocks"
)

func newValidator(o *mocks.MockOracle) *validator.Validator {
	return validator.New(
		validator.NewScopeValidator(o, zerolog.Nop()),
		validator.NewLegalValidator(o, zerolog.Nop()),
	)
}

func TestScopeCheck_WholeBuilding(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, "text").Return("```json\n"+`{
		"is_whole_building": true,
		"confidence": "high",
		"indicators_found": ["Empfänger: WEG Musterstraße 1", "Gesamtverbrauch"],
		"reason": "Rechnung an die Eigentümergemeinschaft"
	}`+"\n```", nil)

	got := validator.NewScopeValidator(o, zerolog.Nop()).Check(context.Background(), "text")

	assert.True(t, got.IsWholeBuilding)
	assert.Equal(t, domain.ConfidenceHigh, got.Confidence)
	assert.Equal(t, []string{"Empfänger: WEG Musterstraße 1", "Gesamtverbrauch"}, got.IndicatorsFound)
	assert.Equal(t, "Rechnung an die Eigentümergemeinschaft", got.Reason)
}

func TestScopeCheck_MissingKeysDefault(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, mock.Anything).Return(`{}`, nil)

	got := validator.NewScopeValidator(o, zerolog.Nop()).Check(context.Background(), "text")

	assert.Equal(t, domain.ScopeCheckResult{
		IsWholeBuilding: false,
		Confidence:      domain.ConfidenceLow,
		IndicatorsFound: []string{},
		Reason:          "No reason provided.",
	}, got)
}

func TestScopeCheck_UnknownConfidenceIsLow(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, mock.Anything).Return(`{"is_whole_building":true,"confidence":"sehr hoch"}`, nil)

	got := validator.NewScopeValidator(o, zerolog.Nop()).Check(context.Background(), "text")

	assert.True(t, got.IsWholeBuilding)
	assert.Equal(t, domain.ConfidenceLow, got.Confidence)
}

func TestScopeCheck_TransportFailureDegrades(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, mock.Anything).Return("", errors.New("dial tcp: timeout"))

	got := validator.NewScopeValidator(o, zerolog.Nop()).Check(context.Background(), "text")

	assert.False(t, got.IsWholeBuilding)
	assert.Equal(t, domain.ConfidenceLow, got.Confidence)
	assert.Empty(t, got.IndicatorsFound)
	assert.Equal(t, "API call failed: dial tcp: timeout", got.Reason)
}

func TestScopeCheck_EmptyTextUnparseableReplyDegrades(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, "").Return("Ich kann keinen Rechnungstext erkennen.", nil)

	got := validator.NewScopeValidator(o, zerolog.Nop()).Check(context.Background(), "")

	assert.False(t, got.IsWholeBuilding)
	assert.Equal(t, domain.ConfidenceLow, got.Confidence)
	assert.Contains(t, got.Reason, "LLM response parse failed: ")
	assert.Contains(t, got.Reason, "RAW: Ich kann keinen Rechnungstext erkennen.")
}

func TestValidate_ApartmentShortCircuits(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, "Rechnung für Wohnung 5").Return(
		`{"is_whole_building":false,"confidence":"high","indicators_found":["Wohnung 5"],"reason":"Einzelne Wohnung"}`, nil)

	got := newValidator(o).Validate(context.Background(), "Rechnung für Wohnung 5")

	assert.False(t, got.Validated)
	assert.Equal(t, "invoice is for a single apartment, not the whole building: Einzelne Wohnung", got.Reason)
	assert.Equal(t, []string{"Wohnung 5"}, got.ScopeCheck.IndicatorsFound)
	o.AssertNotCalled(t, "JudgeLegality", mock.Anything, mock.Anything)
	o.AssertNumberOfCalls(t, "JudgeScope", 1)
}

func TestValidate_DegradedScopeShortCircuits(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, mock.Anything).Return("", errors.New("boom"))

	got := newValidator(o).Validate(context.Background(), "text")

	assert.False(t, got.Validated)
	assert.Equal(t, "invoice is for a single apartment, not the whole building: API call failed: boom", got.Reason)
	o.AssertNotCalled(t, "JudgeLegality", mock.Anything, mock.Anything)
}

func TestValidate_LegalityRuns(t *testing.T) {
	tests := []struct {
		name          string
		reply         string
		err           error
		wantValidated bool
		wantReason    string
	}{
		{"valid", `{"is_valid": true, "reason": "Alle Pflichtangaben vorhanden"}`, nil, true, "Alle Pflichtangaben vorhanden"},
		{"invalid", "```json\n{\"is_valid\": false, \"reason\": \"Leistungszeitraum fehlt\"}\n```", nil, false, "Leistungszeitraum fehlt"},
		{"missing keys", `{}`, nil, false, "No reason provided."},
		{"transport failure", "", errors.New("503"), false, "API call failed: 503"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := new(mocks.MockOracle)
			o.On("JudgeScope", mock.Anything, "text").Return(`{"is_whole_building":true,"confidence":"medium","reason":"WEG"}`, nil)
			o.On("JudgeLegality", mock.Anything, "text").Return(tt.reply, tt.err)

			got := newValidator(o).Validate(context.Background(), "text")

			assert.Equal(t, tt.wantValidated, got.Validated)
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.True(t, got.ScopeCheck.IsWholeBuilding)
			assert.Equal(t, domain.ConfidenceMedium, got.ScopeCheck.Confidence)
			o.AssertNumberOfCalls(t, "JudgeScope", 1)
			o.AssertNumberOfCalls(t, "JudgeLegality", 1)
		})
	}
}

func TestValidate_UnparseableLegalityReply(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, mock.Anything).Return(`{"is_whole_building":true}`, nil)
	o.On("JudgeLegality", mock.Anything, mock.Anything).Return("Die Rechnung ist gültig.", nil)

	got := newValidator(o).Validate(context.Background(), "text")

	assert.False(t, got.Validated)
	assert.Contains(t, got.Reason, "LLM response parse failed:")
	assert.Contains(t, got.Reason, "RAW: Die Rechnung ist gültig.")
}

func TestValidate_NeverContradictsScope(t *testing.T) {
	o := new(mocks.MockOracle)
	o.On("JudgeScope", mock.Anything, mock.Anything).Return(`{"is_whole_building":false}`, nil)
	o.On("JudgeLegality", mock.Anything, mock.Anything).Return(`{"is_valid":true}`, nil)

	got := newValidator(o).Validate(context.Background(), "text")

	assert.False(t, got.Validated && !got.ScopeCheck.IsWholeBuilding)
	assert.False(t, got.Validated)
}
