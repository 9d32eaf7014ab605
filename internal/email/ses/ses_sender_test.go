package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlage/internal/port"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, f.err
}

var notice = port.ReviewNotice{
	BatchID: "b-1",
	Items: []port.ReviewItem{
		{File: "wohnung.pdf", Status: "validation_failed", Reason: "invoice is for a single apartment", ArchiveKey: "review/b-1/0-wohnung.pdf"},
		{File: "<x>.pdf", Status: "address_unmatched", Reason: "Address not matched"},
	},
}

func TestNotifyReview_SendsOneMailToAllReviewers(t *testing.T) {
	fake := &fakeSES{}
	n := newNotifier(fake, "noreply@umlage.local", "Umlage", []string{"a@example.com", "b@example.com"})

	require.NoError(t, n.NotifyReview(context.Background(), notice))

	require.NotNil(t, fake.input)
	assert.Equal(t, "Umlage <noreply@umlage.local>", *fake.input.FromEmailAddress)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "2 invoice(s) need manual review (batch b-1)", *fake.input.Content.Simple.Subject.Data)
}

func TestNotifyReview_WrapsError(t *testing.T) {
	n := newNotifier(&fakeSES{err: errors.New("throttled")}, "a@b", "U", []string{"r@x"})

	err := n.NotifyReview(context.Background(), notice)

	assert.ErrorContains(t, err, "SES SendEmail: throttled")
}

func TestBuildReviewBodies(t *testing.T) {
	text := buildReviewText(notice)
	assert.Contains(t, text, "- wohnung.pdf [validation_failed]: invoice is for a single apartment (archived as review/b-1/0-wohnung.pdf)\n")
	assert.Contains(t, text, "- <x>.pdf [address_unmatched]: Address not matched\n")

	body := buildReviewHTML(notice)
	assert.Contains(t, body, "&lt;x&gt;.pdf")
	assert.NotContains(t, body, "<x>.pdf")
	assert.Contains(t, body, "<code>b-1</code>")
}

func TestNewSESNotifier_RequiresReviewers(t *testing.T) {
	_, err := NewSESNotifier("eu-central-1", "a@b", "U", nil)
	assert.Error(t, err)
}
