package lintview_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/lintview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeedback(t *testing.T) {
	t.Parallel()

	early := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	snapshots := []*lintview.Snapshot{
		{Timestamp: late, Findings: []lintview.Finding{
			{Code: "C0103", Message: "variable name x"},
			{Code: "R1714", Message: "consider using in\ndetails"},
		}},
		{Timestamp: early, Findings: []lintview.Finding{
			{Code: "C0103", Message: "variable name x"},
			{Code: "W0611", Message: "unused import os"},
		}},
	}

	fb := lintview.NewFeedback(snapshots)

	require.Len(t, fb.Messages, 3)
	assert.Equal(t, "consider using in", fb.Messages[0].Message)
	assert.Equal(t, "unused import os", fb.Messages[1].Message)
	assert.Equal(t, "variable name x", fb.Messages[2].Message)
	assert.Equal(t, lintview.FeedbackGroup, fb.Messages[0].Group)
	assert.Equal(t, late, fb.LastTimestamp())

	t.Run("marks messages by code", func(t *testing.T) {
		t.Parallel()

		fb := lintview.NewFeedback(snapshots)

		assert.True(t, fb.Mark("W0611", true, false))
		assert.False(t, fb.Mark("E999", true, false))
		assert.True(t, fb.Messages[1].Helpful)
	})

	t.Run("encodes format version", func(t *testing.T) {
		t.Parallel()

		fb := lintview.NewFeedback(nil)
		fb.Comments = "thanks"

		data, err := fb.JSON()
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.InDelta(t, 1, decoded["feedback_format_version"], 0)
		assert.Equal(t, "thanks", decoded["comments"])
	})
}
