package resty

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"

	"github.com/fwojciec/lintview"
	"github.com/go-resty/resty/v2"
)

// DefaultFeedbackURL receives feedback submissions.
const DefaultFeedbackURL = "https://edulint.com/store_feedback"

var _ lintview.FeedbackSender = (*FeedbackSender)(nil)

// FeedbackSender posts feedback as gzip-compressed JSON.
type FeedbackSender struct {
	client *resty.Client
	url    string
}

// NewFeedbackSender creates a sender posting to url.
func NewFeedbackSender(client *resty.Client, url string) *FeedbackSender {
	if url == "" {
		url = DefaultFeedbackURL
	}
	return &FeedbackSender{client: client, url: url}
}

func (s *FeedbackSender) Submit(ctx context.Context, fb *lintview.Feedback) error {
	data, err := fb.JSON()
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compress feedback: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress feedback: %w", err)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Content-Encoding", "gzip").
		SetBody(buf.Bytes()).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("submit feedback: server responded %s", resp.Status())
	}
	return nil
}
