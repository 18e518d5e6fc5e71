package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	short := "buy milk"
	assert.Equal(t, short, Preview(short))

	long := strings.Repeat("a", 250)
	got := Preview(long)
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)

	// Truncation counts runes, not bytes.
	cyrillic := strings.Repeat("ж", 201)
	assert.Equal(t, strings.Repeat("ж", 200)+"...", Preview(cyrillic))
}

func TestReminderEmail(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	at := time.Date(2024, 5, 1, 13, 30, 0, 0, msk)

	subject, htmlBody, textBody := ReminderEmail("ivan", "standup", "daily at ten", at)

	assert.Equal(t, "Reminder: standup", subject)

	// Rendered in UTC regardless of the stored zone.
	assert.Contains(t, htmlBody, "01/05/2024 10:30")
	assert.Contains(t, textBody, "01/05/2024 10:30")

	assert.Contains(t, htmlBody, "ivan")
	assert.Contains(t, htmlBody, "standup")
	assert.Contains(t, textBody, "daily at ten")
}

func TestReminderEmail_EscapesHTML(t *testing.T) {
	_, htmlBody, textBody := ReminderEmail("ivan", `<script>alert("x")</script>`, "safe", time.Now())

	assert.NotContains(t, htmlBody, "<script>")
	assert.Contains(t, htmlBody, "&lt;script&gt;")
	assert.Contains(t, textBody, `<script>alert("x")</script>`)
}

func TestWelcomeEmail(t *testing.T) {
	subject, htmlBody, textBody := WelcomeEmail("ivan", "ivan@example.com")

	assert.Equal(t, "Welcome to Smart Notes!", subject)
	assert.Contains(t, htmlBody, "ivan@example.com")
	assert.Contains(t, textBody, "ivan@example.com")
}
