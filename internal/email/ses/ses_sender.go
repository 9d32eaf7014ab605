package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"umlage/internal/port"
)

// sendEmailAPI is the subset of the SES v2 client used here.
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client      sendEmailAPI
	fromAddress string
	fromName    string
	reviewers   []string
}

// NewSESNotifier creates a new SES-backed ReviewNotifier.
func NewSESNotifier(region, fromAddress, fromName string, reviewers []string) (port.ReviewNotifier, error) {
	if len(reviewers) == 0 {
		return nil, fmt.Errorf("SES notifier: no reviewer addresses configured")
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newNotifier(sesv2.NewFromConfig(cfg), fromAddress, fromName, reviewers), nil
}

func newNotifier(client sendEmailAPI, fromAddress, fromName string, reviewers []string) *sesNotifier {
	return &sesNotifier{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		reviewers:   reviewers,
	}
}

func (s *sesNotifier) NotifyReview(ctx context.Context, notice port.ReviewNotice) error {
	subject := fmt.Sprintf("%d invoice(s) need manual review (batch %s)", len(notice.Items), notice.BatchID)
	htmlBody := buildReviewHTML(notice)
	textBody := buildReviewText(notice)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.reviewers,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewText(notice port.ReviewNotice) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Batch %s contains invoices that could not be processed automatically:\n\n", notice.BatchID)
	for _, it := range notice.Items {
		fmt.Fprintf(&sb, "- %s [%s]: %s", it.File, it.Status, it.Reason)
		if it.ArchiveKey != "" {
			fmt.Fprintf(&sb, " (archived as %s)", it.ArchiveKey)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nUmlage")
	return sb.String()
}

func buildReviewHTML(notice port.ReviewNotice) string {
	var rows strings.Builder
	for _, it := range notice.Items {
		fmt.Fprintf(&rows, `    <tr><td style="padding: 4px 8px;">%s</td><td style="padding: 4px 8px;">%s</td><td style="padding: 4px 8px;">%s</td><td style="padding: 4px 8px; color: #666;">%s</td></tr>
`, html.EscapeString(it.File), html.EscapeString(it.Status), html.EscapeString(it.Reason), html.EscapeString(it.ArchiveKey))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoices flagged for manual review</h2>
  <p>Batch <code>%s</code> contains invoices that could not be processed automatically.</p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><th align="left">File</th><th align="left">Status</th><th align="left">Reason</th><th align="left">Archive</th></tr>
%s  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Umlage - Utility Invoice Processing</p>
</body>
</html>`, html.EscapeString(notice.BatchID), rows.String())
}
