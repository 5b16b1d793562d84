// Package gcal is the Google Calendar backend.
package gcal

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/HamzterDev/Calender/internal/domain"
)

// Client talks to one Google calendar through the Calendar v3 API.
type Client struct {
	service    *calendar.Service
	calendarID string
	timezone   *time.Location
}

// NewClient builds a client from an authorized-user token file. tokenFile
// may be empty, in which case the candidate paths are searched.
func NewClient(ctx context.Context, tokenFile, calendarID string, tz *time.Location) (*Client, error) {
	if tokenFile == "" {
		var err error
		tokenFile, err = FindTokenFile(TokenPaths)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Client{
		service:    service,
		calendarID: calendarID,
		timezone:   tz,
	}, nil
}

// Create inserts the event and returns the identifier assigned by the
// service. All-day events travel as date-only start/end (end exclusive);
// timed events as instants tagged with the configured zone.
func (c *Client) Create(ctx context.Context, event *domain.CalendarEvent) (string, error) {
	googleEvent := &calendar.Event{
		Summary: event.Title,
	}

	if event.AllDay {
		googleEvent.Start = &calendar.EventDateTime{
			Date: event.Start.Format("2006-01-02"),
		}
		googleEvent.End = &calendar.EventDateTime{
			Date: event.End.Format("2006-01-02"),
		}
	} else {
		googleEvent.Start = &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: c.timezone.String(),
		}
		googleEvent.End = &calendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: c.timezone.String(),
		}
	}

	created, err := c.service.Events.Insert(c.calendarID, googleEvent).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}

	return created.Id, nil
}

// List returns the events in [from, to), recurring events expanded into
// individual occurrences, ordered by start time server-side.
func (c *Client) List(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	resp, err := c.service.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]domain.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		event, err := fromGoogleEvent(item)
		if err != nil {
			log.Printf("Skipping event %s: %v", item.Id, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// Delete removes the event with the given identifier.
func (c *Client) Delete(ctx context.Context, eventID string) error {
	if err := c.service.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func fromGoogleEvent(item *calendar.Event) (domain.CalendarEvent, error) {
	event := domain.CalendarEvent{
		ID:    item.Id,
		Title: item.Summary,
	}

	if item.Start == nil {
		return event, fmt.Errorf("no start field")
	}

	var err error
	if item.Start.DateTime != "" {
		event.StartRaw = item.Start.DateTime
		event.Start, err = time.Parse(time.RFC3339, item.Start.DateTime)
	} else {
		event.StartRaw = item.Start.Date
		event.AllDay = true
		event.Start, err = time.Parse("2006-01-02", item.Start.Date)
	}
	if err != nil {
		return event, fmt.Errorf("parse start %q: %w", event.StartRaw, err)
	}

	if item.End != nil {
		switch {
		case item.End.DateTime != "":
			event.End, err = time.Parse(time.RFC3339, item.End.DateTime)
			if err != nil {
				return event, fmt.Errorf("parse end %q: %w", item.End.DateTime, err)
			}
		case item.End.Date != "":
			event.End, err = time.Parse("2006-01-02", item.End.Date)
			if err != nil {
				return event, fmt.Errorf("parse end %q: %w", item.End.Date, err)
			}
		}
	}

	return event, nil
}
