// Package caldav is the CalDAV calendar backend, usable against iCloud
// or any standard CalDAV collection.
package caldav

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"github.com/HamzterDev/Calender/internal/domain"
)

// DefaultURL is the Apple iCloud CalDAV endpoint.
const DefaultURL = "https://caldav.icloud.com"

// Client talks to one CalDAV calendar collection.
type Client struct {
	baseURL      string
	username     string
	password     string
	calendarPath string

	client *caldav.Client
}

// NewClient creates a CalDAV client for the given collection path.
func NewClient(baseURL, username, password, calendarPath string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL:      baseURL,
		username:     username,
		password:     password,
		calendarPath: calendarPath,
	}
}

func (c *Client) connect() (*caldav.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: c.username,
			password: c.password,
		},
		Timeout: 30 * time.Second,
	}

	client, err := caldav.NewClient(httpClient, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	c.client = client
	return client, nil
}

type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

// Create puts a new UID-named .ics object into the collection and
// returns the UID as the event identifier.
func (c *Client) Create(ctx context.Context, event *domain.CalendarEvent) (string, error) {
	client, err := c.connect()
	if err != nil {
		return "", err
	}

	uid := generateUID()
	cal := eventToICS(uid, event)

	if _, err := client.PutCalendarObject(ctx, c.objectPath(uid), cal); err != nil {
		return "", fmt.Errorf("put event: %w", err)
	}

	return uid, nil
}

// List queries VEVENTs overlapping [from, to) and maps them to domain
// events.
func (c *Client) List(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: from,
					End:   to,
				},
			},
		},
	}

	objects, err := client.QueryCalendar(ctx, c.calendarPath, query)
	if err != nil {
		return nil, fmt.Errorf("query calendar: %w", err)
	}

	var events []domain.CalendarEvent
	for _, obj := range objects {
		event, err := parseCalendarObject(&obj)
		if err != nil {
			continue // skip invalid objects
		}
		events = append(events, event)
	}

	return events, nil
}

// Delete removes the .ics object for the given UID.
func (c *Client) Delete(ctx context.Context, eventID string) error {
	client, err := c.connect()
	if err != nil {
		return err
	}

	if err := client.RemoveAll(ctx, c.objectPath(eventID)); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (c *Client) objectPath(uid string) string {
	path := c.calendarPath
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path + uid + ".ics"
}

func parseCalendarObject(obj *caldav.CalendarObject) (domain.CalendarEvent, error) {
	var event domain.CalendarEvent

	if obj.Data == nil {
		return event, fmt.Errorf("no data in calendar object")
	}

	for _, comp := range obj.Data.Children {
		if comp.Name != ical.CompEvent {
			continue
		}

		if prop := comp.Props.Get(ical.PropUID); prop != nil {
			event.ID = prop.Value
		}
		if prop := comp.Props.Get(ical.PropSummary); prop != nil {
			event.Title = prop.Value
		}

		if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				event.Start = t
			}
			if prop.Params.Get(ical.ParamValue) == string(ical.ValueDate) {
				event.AllDay = true
			}
		}
		if prop := comp.Props.Get(ical.PropDateTimeEnd); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				event.End = t
			}
		}

		break // one VEVENT per object
	}

	if event.AllDay {
		event.StartRaw = event.Start.Format("2006-01-02")
	} else {
		event.StartRaw = event.Start.UTC().Format(time.RFC3339)
	}

	return event, nil
}

func eventToICS(uid string, event *domain.CalendarEvent) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//CalendarBot//CalDAV//EN")

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, uid)
	vevent.Props.SetText(ical.PropSummary, event.Title)
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	if event.AllDay {
		vevent.Props.SetDate(ical.PropDateTimeStart, event.Start)
		vevent.Props.SetDate(ical.PropDateTimeEnd, event.End)
	} else {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, event.Start.UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, event.End.UTC())
	}

	cal.Children = append(cal.Children, vevent.Component)
	return cal
}

func generateUID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x-%x-%x-%x-%x@calendarbot", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
