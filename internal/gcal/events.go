package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	TimeZone    string
}

// CreatedEvent identifies an inserted calendar event.
type CreatedEvent struct {
	ID       string
	HTMLLink string
}

// EventItem represents a single upcoming event returned by a list call.
type EventItem struct {
	ID        string
	Summary   string
	Location  string
	StartTime time.Time
	EndTime   time.Time
	AllDay    bool
}

// Insert creates a new event and returns its ID and browser link.
func (c *Client) Insert(calendarID string, input EventInput) (CreatedEvent, error) {
	if c.service == nil {
		return CreatedEvent{}, fmt.Errorf("calendar service not initialized")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.StartTime.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndTime.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
	}

	created, err := c.service.Events.Insert(calendarID, event).Do()
	if err != nil {
		return CreatedEvent{}, fmt.Errorf("failed to create event: %w", err)
	}

	return CreatedEvent{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

// ListUpcoming returns up to maxResults single events between now and
// now+horizon, ordered by start time.
func (c *Client) ListUpcoming(calendarID string, maxResults int64, horizon time.Duration) ([]EventItem, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	now := time.Now().UTC()
	events, err := c.service.Events.List(calendarID).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(horizon).Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	result := make([]EventItem, 0, len(events.Items))
	for _, item := range events.Items {
		if item == nil || item.Status == "cancelled" {
			continue
		}

		event := EventItem{
			ID:       item.Id,
			Summary:  item.Summary,
			Location: item.Location,
		}

		startTime, endTime, allDay, parseErr := parseEventTimes(item)
		if parseErr != nil {
			// Skip malformed events rather than failing the whole request.
			continue
		}
		event.StartTime = startTime
		event.EndTime = endTime
		event.AllDay = allDay

		result = append(result, event)
	}

	return result, nil
}

func parseEventTimes(item *calendar.Event) (time.Time, time.Time, bool, error) {
	if item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event is missing start or end")
	}

	// All-day events use Date instead of DateTime.
	if item.Start.Date != "" {
		startDate, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day start date: %w", err)
		}
		endDate, err := time.Parse("2006-01-02", item.End.Date)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day end date: %w", err)
		}
		return startDate, endDate, true, nil
	}

	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event datetime is missing")
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return startTime, endTime, false, nil
}
