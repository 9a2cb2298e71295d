package components

import (
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
)

// FormatRelativeTime formats a time.Time as a relative time string like "3 days ago"
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timediff.TimeDiff(t)
}

// FormatCount formats a count with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// StatusClass maps a task status label to a css modifier.
// Labels are free-form, anything unknown gets the neutral style.
func StatusClass(status string) string {
	switch strings.ToLower(status) {
	case "pending":
		return "status-pending"
	case "in progress":
		return "status-progress"
	case "completed", "done":
		return "status-done"
	default:
		return "status-other"
	}
}

var messageEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
)

// Message escapes a flash message for element content.
// Apostrophes are kept literal so messages read the same in the page source.
func Message(s string) template.HTML {
	return template.HTML(messageEscaper.Replace(s)) //nolint:gosec
}

// FuncMap returns the helpers available in page templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"relativeTime": FormatRelativeTime,
		"count":        FormatCount,
		"statusClass":  StatusClass,
		"message":      Message,
	}
}
