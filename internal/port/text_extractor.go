package port

import "context"

// TextExtractor turns a PDF byte stream into its concatenated page text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
