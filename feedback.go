package lintview

import (
	"cmp"
	"encoding/json"
	"slices"
	"time"
)

// FeedbackFormatVersion identifies the layout of submitted feedback.
const FeedbackFormatVersion = 1

// FeedbackGroup is the group every reported message belongs to.
const FeedbackGroup = "Improvement suggestions"

// MessageFeedback is the user's verdict on one distinct message.
type MessageFeedback struct {
	Helpful   bool   `json:"helpful"`
	Confusing bool   `json:"confusing"`
	Message   string `json:"message"`
	Group     string `json:"group"`
	Code      string `json:"code"`
}

// Feedback is a submission describing how useful reported messages were.
type Feedback struct {
	FormatVersion int               `json:"feedback_format_version"`
	Versions      map[string]string `json:"versions,omitempty"` // Tool name -> version
	Messages      []MessageFeedback `json:"message_feedback"`
	Comments      string            `json:"comments"`
	Snapshots     []*Snapshot       `json:"snapshots,omitempty"`
}

// NewFeedback collects the distinct (code, message) pairs found in
// snapshots, ordered by message.
func NewFeedback(snapshots []*Snapshot) *Feedback {
	type pair struct{ code, message string }
	seen := make(map[pair]bool)
	var msgs []MessageFeedback
	for _, s := range snapshots {
		for _, f := range s.Findings {
			p := pair{f.Code, f.Headline()}
			if seen[p] {
				continue
			}
			seen[p] = true
			msgs = append(msgs, MessageFeedback{Message: p.message, Group: FeedbackGroup, Code: p.code})
		}
	}
	slices.SortFunc(msgs, func(a, b MessageFeedback) int {
		return cmp.Or(cmp.Compare(a.Message, b.Message), cmp.Compare(a.Code, b.Code))
	})
	return &Feedback{
		FormatVersion: FeedbackFormatVersion,
		Messages:      msgs,
		Snapshots:     snapshots,
	}
}

// Mark records a verdict for every message with the given code. It reports
// whether any message matched.
func (f *Feedback) Mark(code string, helpful, confusing bool) bool {
	found := false
	for i := range f.Messages {
		if f.Messages[i].Code == code {
			f.Messages[i].Helpful = helpful
			f.Messages[i].Confusing = confusing
			found = true
		}
	}
	return found
}

// LastTimestamp returns the timestamp of the newest included snapshot.
func (f *Feedback) LastTimestamp() time.Time {
	var last time.Time
	for _, s := range f.Snapshots {
		if s.Timestamp.After(last) {
			last = s.Timestamp
		}
	}
	return last
}

// JSON renders the submission as indented JSON.
func (f *Feedback) JSON() ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
