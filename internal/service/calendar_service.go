package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/HamzterDev/Calender/internal/domain"
	"github.com/HamzterDev/Calender/internal/session"
)

// CalendarProvider is the narrow remote-calendar contract: create, list
// in a time range, delete by identifier.
type CalendarProvider interface {
	Create(ctx context.Context, event *domain.CalendarEvent) (string, error)
	List(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
	Delete(ctx context.Context, eventID string) error
}

// CalendarService executes parsed operation requests against the remote
// calendar and keeps the per-chat session listings consistent.
type CalendarService struct {
	provider CalendarProvider
	cache    *session.Cache
	timezone *time.Location
}

func NewCalendarService(provider CalendarProvider, cache *session.Cache, tz *time.Location) *CalendarService {
	if tz == nil {
		tz = time.UTC
	}
	return &CalendarService{
		provider: provider,
		cache:    cache,
		timezone: tz,
	}
}

// Timezone returns the fixed interpretation/display zone.
func (s *CalendarService) Timezone() *time.Location {
	return s.timezone
}

// Add creates the event remotely and returns it with the assigned ID.
func (s *CalendarService) Add(ctx context.Context, req domain.AddEvent) (*domain.CalendarEvent, error) {
	event := &domain.CalendarEvent{
		Title:  req.Title,
		Start:  req.Start,
		End:    req.End,
		AllDay: req.AllDay,
	}

	id, err := s.provider.Create(ctx, event)
	if err != nil {
		return nil, &domain.RemoteCalendarError{Op: "create", Err: err}
	}

	event.ID = id
	return event, nil
}

// ListMonth lists the events of one calendar month and replaces the
// chat's session listing with the (possibly empty) result.
func (s *CalendarService) ListMonth(ctx context.Context, chatID int64, month, year int) ([]domain.CalendarEvent, error) {
	from, to := MonthRange(month, year)

	events, err := s.providerList(ctx, from, to)
	if err != nil {
		return nil, err
	}

	s.cache.Replace(chatID, events)
	return events, nil
}

// ListRange lists events between from and to without touching any
// session listing. Used by scheduled digests.
func (s *CalendarService) ListRange(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	return s.providerList(ctx, from, to)
}

func (s *CalendarService) providerList(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	events, err := s.provider.List(ctx, from, to)
	if err != nil {
		return nil, &domain.RemoteCalendarError{Op: "list", Err: err}
	}

	// The server orders by start time, but its ordering key and the
	// returned start representation are not identical; normalize by the
	// literal start value (ISO 8601 compares lexicographically).
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartRaw < events[j].StartRaw
	})

	return events, nil
}

// Delete removes the event at the 1-based position of the chat's last
// listing. The position is resolved against that listing as it stood,
// never against a re-fetch, and the cache entry is only removed after
// the remote delete succeeds.
func (s *CalendarService) Delete(ctx context.Context, chatID int64, position int) (*domain.CalendarEvent, error) {
	event, ok := s.cache.Get(chatID, position)
	if !ok {
		return nil, fmt.Errorf("position %d: %w", position, domain.ErrNotFound)
	}

	if err := s.provider.Delete(ctx, event.ID); err != nil {
		return nil, &domain.RemoteCalendarError{Op: "delete", Err: err}
	}

	// A newer listing may have replaced the slot while the remote call
	// was in flight; Remove revalidates the ID and no-ops in that case.
	s.cache.Remove(chatID, position, event.ID)
	return &event, nil
}

// MonthRange returns the half-open UTC range covering one calendar
// month: [first-of-month 00:00, first-of-next-month 00:00). December
// rolls over to January of the following year.
func MonthRange(month, year int) (from, to time.Time) {
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	return from, to
}

// FormatEventList renders a numbered listing, timed entries converted
// into the configured zone.
func (s *CalendarService) FormatEventList(events []domain.CalendarEvent) string {
	var sb strings.Builder
	for i, e := range events {
		fmt.Fprintf(&sb, "%d. 📌 %s - %s\n", i+1, e.FormatStart(s.timezone), e.Title)
	}
	return sb.String()
}
