package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	assert.Empty(t, FormatRelativeTime(time.Time{}))
	assert.Contains(t, FormatRelativeTime(time.Now().Add(-72*time.Hour)), "ago")
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestStatusClass(t *testing.T) {
	tests := map[string]string{
		"Pending":     "status-pending",
		"In Progress": "status-progress",
		"Completed":   "status-done",
		"whatever":    "status-other",
		"":            "status-other",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusClass(status), status)
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "You can't update this task.", string(Message("You can't update this task.")))
	assert.Equal(t, "&lt;b&gt;&amp;&#34;", string(Message(`<b>&"`)))
}
