package port

import "context"

// Oracle abstracts the language model behind the three call shapes the
// pipeline uses. Implementations return the model's raw output; parsing
// and failure policy belong to the callers.
type Oracle interface {
	// ExtractFields runs the schema-constrained extraction call and returns
	// the raw JSON arguments of the forced function call.
	ExtractFields(ctx context.Context, text string) (string, error)
	// ClassifyCategory asks which of categories applies and returns free text.
	ClassifyCategory(ctx context.Context, text string, categories []string) (string, error)
	// JudgeScope returns the model's JSON answer to the building-vs-apartment rubric.
	JudgeScope(ctx context.Context, text string) (string, error)
	// JudgeLegality returns the model's JSON answer to the legal-completeness rubric.
	JudgeLegality(ctx context.Context, text string) (string, error)
}
