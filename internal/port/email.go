package port

import "context"

// ReviewItem describes one file that needs a human decision.
type ReviewItem struct {
	File       string
	Status     string
	Reason     string
	ArchiveKey string
}

// ReviewNotice summarises the flagged files of a batch.
type ReviewNotice struct {
	BatchID string
	Items   []ReviewItem
}

// ReviewNotifier tells reviewers that a batch contains flagged invoices.
type ReviewNotifier interface {
	NotifyReview(ctx context.Context, notice ReviewNotice) error
}
