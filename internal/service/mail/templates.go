package mail

import (
	"fmt"
	"html"
	"time"
)

// contentPreviewLimit caps how much note content goes into an email body.
const contentPreviewLimit = 200

// Preview truncates note content for display, appending an ellipsis
// marker when anything was cut off.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= contentPreviewLimit {
		return content
	}
	return string(runes[:contentPreviewLimit]) + "..."
}

// ReminderEmail builds the subject and both bodies for a due-note
// notification. The reminder time is rendered in UTC.
func ReminderEmail(username, title, content string, reminderAt time.Time) (subject, htmlBody, textBody string) {
	reminderStr := reminderAt.UTC().Format("02/01/2006 15:04")
	preview := Preview(content)

	subject = fmt.Sprintf("Reminder: %s", title)

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="background-color: #FF9800; color: white; padding: 20px; text-align: center;">Note reminder</h1>
    <p>Hello <strong>%s</strong>,</p>
    <p>You have a reminder from one of your notes:</p>
    <div style="background-color: #FFF3E0; padding: 10px; text-align: center; font-weight: bold;">Reminder time: %s</div>
    <div style="background-color: white; border-left: 4px solid #FF9800; padding: 15px; margin: 20px 0;">
      <div style="font-size: 18px; font-weight: bold;">%s</div>
      <div style="color: #666; white-space: pre-wrap;">%s</div>
    </div>
    <p>Have a great day!</p>
  </div>
</body>
</html>`,
		html.EscapeString(username), reminderStr, html.EscapeString(title), html.EscapeString(preview))

	textBody = fmt.Sprintf(`Note reminder

Hello %s,

You have a reminder from one of your notes:

Reminder time: %s

Title: %s

Content:
%s

Have a great day!
`, username, reminderStr, title, preview)

	return subject, htmlBody, textBody
}

// WelcomeEmail builds the message sent right after registration.
func WelcomeEmail(username, email string) (subject, htmlBody, textBody string) {
	subject = "Welcome to Smart Notes!"

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="background-color: #4CAF50; color: white; padding: 20px; text-align: center;">Welcome to Smart Notes!</h1>
    <p>Hello <strong>%s</strong>,</p>
    <p>Your account has been created with the email address <strong>%s</strong>.</p>
    <p>You can now:</p>
    <ul>
      <li>Create and manage your notes</li>
      <li>Organize notes into folders</li>
      <li>Tag and search quickly</li>
      <li>Share notes with other people</li>
    </ul>
    <p>Enjoy!</p>
  </div>
</body>
</html>`,
		html.EscapeString(username), html.EscapeString(email))

	textBody = fmt.Sprintf(`Welcome to Smart Notes!

Hello %s,

Your account has been created with the email address %s.

You can now:
- Create and manage your notes
- Organize notes into folders
- Tag and search quickly
- Share notes with other people

Enjoy!
`, username, email)

	return subject, htmlBody, textBody
}
