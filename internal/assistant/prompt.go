package assistant

import (
	"fmt"
	"time"
)

// routePrompt asks the model to classify a query into agent names. The
// response is requested as a JSON object with an "agents" array.
func routePrompt(query string) string {
	return fmt.Sprintf(`Analyze this query: "%s"
Determine which agent(s) should handle it:
- calendar_create: Create calendar event (e.g. "schedule a meeting", "create event")
- calendar_list: List calendar events (e.g. "show my events", "list meetings")
- email: Send email (e.g. "send email", "compose message")

Return JSON with array of required agents.
Example outputs:
- "schedule a meeting tomorrow" -> {"agents": ["calendar_create"]}
- "send email to john@example.com" -> {"agents": ["email"]}
- "show my next 5 events" -> {"agents": ["calendar_list"]}`, query)
}

// eventPrompt asks the model for a structured event extraction. The example
// at the end counters a systematic bias of mis-converting PM end times.
func eventPrompt(now time.Time, query string) string {
	return fmt.Sprintf(`Current time: %s IST
Parse this event: "%s"
IMPORTANT: Pay careful attention to time ranges. If a time range like "from X to Y" is specified, make sure to capture both the start and end times correctly.

Return JSON with:
- summary: event title (e.g. "Meeting with Om")
- date: the date in YYYY-MM-DD format. For relative dates like "tomorrow", calculate based on current date.
- start_time: start time in HH:MM format (24-hour)
- end_time: end time in HH:MM format (24-hour), default to 1 hour after start time if not specified
- location: location of the event (e.g. "Innovation Hub", "Conference Room 3"), or empty string if not specified
- attendees: list of people attending the event (names or roles), or empty array if not specified
- description: any additional details about the event, or empty string if not specified

For example, if the query is "Schedule a project kickoff meeting on 22nd March from 4 PM to 6 PM at the Innovation Hub",
the end_time should be "18:00" (not "17:00").`, now.Format("2006-01-02 03:04 PM"), query)
}

// countPrompt asks the model for the number of events a listing query wants.
func countPrompt(query string) string {
	return fmt.Sprintf(`From '%s' extract number of events to show. Default is 10. Return just the number.`, query)
}

// subjectPrompt asks the model for a short email subject line.
func subjectPrompt(query string) string {
	return fmt.Sprintf(`Based on this request: "%s"
Write a short, professional email subject line (under 10 words).
Return only the subject line text, nothing else.`, query)
}

// bodyPrompt asks the model for a complete professional email body.
func bodyPrompt(query, recipient, subject, contentInfo, signature string) string {
	return fmt.Sprintf(`Generate a professional email based on this request: "%s"

From the request, I understand:
- Recipient: %s
- Subject: %s
- Content relates to: %s

Create a concise, professional email that:
1. Has an appropriate greeting
2. Clearly communicates the main message
3. Includes a professional closing
4. Ends with: "Best regards,\n%s"

Format your response as the complete email body only, ready to send.`, query, recipient, subject, contentInfo, signature)
}
