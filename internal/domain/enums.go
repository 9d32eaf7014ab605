package domain

// Confidence is the oracle's self-reported certainty for a scope judgment.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence maps free text onto a Confidence, falling back to low.
func ParseConfidence(s string) Confidence {
	switch Confidence(s) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return Confidence(s)
	default:
		return ConfidenceLow
	}
}

// FileStatus tags a FileResult with the pipeline stage it stopped at.
type FileStatus string

const (
	FileStatusMalformed        FileStatus = "malformed_document"
	FileStatusExtractionFailed FileStatus = "extraction_failed"
	FileStatusValidationFailed FileStatus = "validation_failed"
	FileStatusAddressUnmatched FileStatus = "address_unmatched"
	FileStatusProcessed        FileStatus = "processed"
)

// AllFileStatuses lists every status in pipeline order.
var AllFileStatuses = []FileStatus{
	FileStatusMalformed,
	FileStatusExtractionFailed,
	FileStatusValidationFailed,
	FileStatusAddressUnmatched,
	FileStatusProcessed,
}

// Error labels carried in FileResult.Error.
const (
	ErrorLabelMalformed        = "Malformed document"
	ErrorLabelLLMParsing       = "LLM parsing failed"
	ErrorLabelAddressUnmatched = "Address not matched"
	ErrorLabelDraftFailed      = "Draft append failed"
)

// DraftActionAppended is the action reported after a successful draft append.
const DraftActionAppended = "appended to existing draft"

// AllowedExtension is the only accepted upload extension (compared case-insensitively).
const AllowedExtension = ".pdf"
