package jsonl

import (
	"path/filepath"
	"time"
)

// FeedbackLog records when feedback about a main file was last submitted.
type FeedbackLog struct {
	path string
}

type feedbackRecord struct {
	MainFile    string    `json:"main_file"`
	SubmittedAt time.Time `json:"submitted_at"`
	LastSeen    time.Time `json:"last_seen"` // Timestamp of the newest snapshot included
}

// NewFeedbackLog creates a log stored in dir.
func NewFeedbackLog(dir string) *FeedbackLog {
	return &FeedbackLog{path: filepath.Join(dir, "feedback.jsonl")}
}

// Record notes that feedback covering snapshots up to lastSeen was sent.
func (l *FeedbackLog) Record(mainFile string, submittedAt, lastSeen time.Time) error {
	return appendRecord(l.path, feedbackRecord{
		MainFile:    filepath.Clean(mainFile),
		SubmittedAt: submittedAt,
		LastSeen:    lastSeen,
	})
}

// LastSeen returns the newest snapshot timestamp already covered by feedback
// for mainFile, or the zero time if none was sent.
func (l *FeedbackLog) LastSeen(mainFile string) (time.Time, error) {
	records, err := load[feedbackRecord](l.path)
	if err != nil {
		return time.Time{}, err
	}
	var last time.Time
	for _, r := range records {
		if r.MainFile == filepath.Clean(mainFile) && r.LastSeen.After(last) {
			last = r.LastSeen
		}
	}
	return last, nil
}
