package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HamzterDev/Calender/internal/domain"
	"github.com/HamzterDev/Calender/internal/session"
)

// fakeProvider records calls and serves canned results.
type fakeProvider struct {
	createID  string
	createErr error
	created   []*domain.CalendarEvent

	listResult []domain.CalendarEvent
	listErr    error
	listCalls  [][2]time.Time

	deleteErr error
	deleted   []string
}

func (f *fakeProvider) Create(_ context.Context, event *domain.CalendarEvent) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, event)
	return f.createID, nil
}

func (f *fakeProvider) List(_ context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	f.listCalls = append(f.listCalls, [2]time.Time{from, to})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeProvider) Delete(_ context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func newService(p *fakeProvider) (*CalendarService, *session.Cache) {
	cache := session.New()
	return NewCalendarService(p, cache, time.UTC), cache
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		month, year int
		from, to    time.Time
	}{
		{1, 2026, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{11, 2026, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
		// December rolls over to January of the next year.
		{12, 2026, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		from, to := MonthRange(tt.month, tt.year)
		if !from.Equal(tt.from) {
			t.Errorf("MonthRange(%d, %d) from = %v, want %v", tt.month, tt.year, from, tt.from)
		}
		if !to.Equal(tt.to) {
			t.Errorf("MonthRange(%d, %d) to = %v, want %v", tt.month, tt.year, to, tt.to)
		}
	}
}

func TestAdd(t *testing.T) {
	p := &fakeProvider{createID: "ev123"}
	svc, _ := newService(p)

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	event, err := svc.Add(context.Background(), domain.AddEvent{
		Title:  "X",
		Start:  start,
		End:    start.AddDate(0, 0, 1),
		AllDay: true,
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if event.ID != "ev123" {
		t.Errorf("ID = %q, want %q", event.ID, "ev123")
	}
	if len(p.created) != 1 {
		t.Fatalf("created %d events, want 1", len(p.created))
	}
	if !p.created[0].AllDay {
		t.Error("provider got AllDay = false, want true")
	}
}

func TestAddRemoteFailure(t *testing.T) {
	p := &fakeProvider{createErr: errors.New("quota exceeded")}
	svc, _ := newService(p)

	_, err := svc.Add(context.Background(), domain.AddEvent{Title: "X"})

	var remoteErr *domain.RemoteCalendarError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error = %v, want RemoteCalendarError", err)
	}
	if remoteErr.Op != "create" {
		t.Errorf("Op = %q, want %q", remoteErr.Op, "create")
	}
}

func TestListMonthSortsAndCaches(t *testing.T) {
	p := &fakeProvider{
		listResult: []domain.CalendarEvent{
			{ID: "b", StartRaw: "2026-01-10T09:00:00+07:00"},
			{ID: "a", StartRaw: "2026-01-05"},
			{ID: "c", StartRaw: "2026-01-20T18:00:00+07:00"},
		},
	}
	svc, cache := newService(p)

	events, err := svc.ListMonth(context.Background(), 42, 1, 2026)
	if err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}

	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if events[i].ID != want {
			t.Errorf("events[%d].ID = %q, want %q", i, events[i].ID, want)
		}
	}

	if cache.Len(42) != 3 {
		t.Errorf("cache Len = %d, want 3", cache.Len(42))
	}

	// The query range is the half-open month.
	if len(p.listCalls) != 1 {
		t.Fatalf("provider list calls = %d, want 1", len(p.listCalls))
	}
	wantFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !p.listCalls[0][0].Equal(wantFrom) || !p.listCalls[0][1].Equal(wantTo) {
		t.Errorf("list range = %v..%v, want %v..%v", p.listCalls[0][0], p.listCalls[0][1], wantFrom, wantTo)
	}
}

func TestListMonthEmptyClearsCache(t *testing.T) {
	p := &fakeProvider{listResult: []domain.CalendarEvent{{ID: "a", StartRaw: "2026-01-05"}}}
	svc, cache := newService(p)

	if _, err := svc.ListMonth(context.Background(), 42, 1, 2026); err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}

	p.listResult = nil
	events, err := svc.ListMonth(context.Background(), 42, 2, 2026)
	if err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d, want 0", len(events))
	}
	if cache.Len(42) != 0 {
		t.Errorf("cache Len = %d, want 0 (cleared)", cache.Len(42))
	}
}

func TestListRangeDoesNotTouchCache(t *testing.T) {
	p := &fakeProvider{listResult: []domain.CalendarEvent{{ID: "a", StartRaw: "2026-01-05"}}}
	svc, cache := newService(p)

	if _, err := svc.ListMonth(context.Background(), 42, 1, 2026); err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}

	p.listResult = []domain.CalendarEvent{
		{ID: "x", StartRaw: "2026-02-01"},
		{ID: "y", StartRaw: "2026-02-02"},
	}
	if _, err := svc.ListRange(context.Background(), time.Now(), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("ListRange error: %v", err)
	}

	if cache.Len(42) != 1 {
		t.Errorf("cache Len = %d, want 1 (ListRange must not replace listings)", cache.Len(42))
	}
	got, _ := cache.Get(42, 1)
	if got.ID != "a" {
		t.Errorf("cache entry = %q, want %q", got.ID, "a")
	}
}

func TestDeleteOutOfBounds(t *testing.T) {
	p := &fakeProvider{listResult: []domain.CalendarEvent{
		{ID: "a", StartRaw: "2026-01-05"},
		{ID: "b", StartRaw: "2026-01-06"},
	}}
	svc, _ := newService(p)

	if _, err := svc.ListMonth(context.Background(), 42, 1, 2026); err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}

	for _, pos := range []int{0, -1, 3} {
		_, err := svc.Delete(context.Background(), 42, pos)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Delete(%d) error = %v, want ErrNotFound", pos, err)
		}
	}

	if len(p.deleted) != 0 {
		t.Errorf("remote delete calls = %d, want 0", len(p.deleted))
	}
}

func TestDeleteWithoutListing(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newService(p)

	_, err := svc.Delete(context.Background(), 42, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	p := &fakeProvider{listResult: []domain.CalendarEvent{
		{ID: "a", StartRaw: "2026-01-05"},
		{ID: "b", StartRaw: "2026-01-06"},
		{ID: "c", StartRaw: "2026-01-07"},
	}}
	svc, cache := newService(p)

	if _, err := svc.ListMonth(context.Background(), 42, 1, 2026); err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}

	event, err := svc.Delete(context.Background(), 42, 2)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	if event.ID != "b" {
		t.Errorf("deleted ID = %q, want %q", event.ID, "b")
	}
	if len(p.deleted) != 1 || p.deleted[0] != "b" {
		t.Errorf("remote deletes = %v, want [b]", p.deleted)
	}
	if cache.Len(42) != 2 {
		t.Errorf("cache Len = %d, want 2", cache.Len(42))
	}

	// Positions shift down so a follow-up delete stays consistent.
	got, _ := cache.Get(42, 2)
	if got.ID != "c" {
		t.Errorf("position 2 = %q after delete, want %q", got.ID, "c")
	}
}

func TestDeleteRemoteFailureLeavesCache(t *testing.T) {
	p := &fakeProvider{listResult: []domain.CalendarEvent{
		{ID: "a", StartRaw: "2026-01-05"},
		{ID: "b", StartRaw: "2026-01-06"},
	}}
	svc, cache := newService(p)

	if _, err := svc.ListMonth(context.Background(), 42, 1, 2026); err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}

	p.deleteErr = errors.New("network down")
	_, err := svc.Delete(context.Background(), 42, 1)

	var remoteErr *domain.RemoteCalendarError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error = %v, want RemoteCalendarError", err)
	}
	if cache.Len(42) != 2 {
		t.Errorf("cache Len = %d, want 2 (untouched on remote failure)", cache.Len(42))
	}
}

func TestAddThenShowRoundTrip(t *testing.T) {
	p := &fakeProvider{createID: "ev1"}
	svc, _ := newService(p)

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Add(context.Background(), domain.AddEvent{
		Title:  "X",
		Start:  start,
		End:    start.AddDate(0, 0, 1),
		AllDay: true,
	}); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	// Remote now returns the created event for the month listing.
	p.listResult = []domain.CalendarEvent{{
		ID:       "ev1",
		Title:    "X",
		Start:    start,
		AllDay:   true,
		StartRaw: "2026-01-05",
	}}

	events, err := svc.ListMonth(context.Background(), 42, 1, 2026)
	if err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "X" || !events[0].AllDay {
		t.Fatalf("round trip listing = %+v, want one all-day event titled X", events)
	}

	line := svc.FormatEventList(events)
	if !strings.Contains(line, "05/01/2026") || !strings.Contains(line, "X") {
		t.Errorf("FormatEventList = %q, want date 05/01/2026 and title X", line)
	}
}

func TestFormatEventListTimedUsesTimezone(t *testing.T) {
	tz := time.FixedZone("ICT", 7*60*60)
	svc := NewCalendarService(&fakeProvider{}, session.New(), tz)

	events := []domain.CalendarEvent{{
		ID:    "a",
		Title: "Standup",
		Start: time.Date(2026, 1, 5, 2, 0, 0, 0, time.UTC), // 09:00 ICT
	}}

	got := svc.FormatEventList(events)
	want := "1. 📌 05/01/2026 09:00 - Standup\n"
	if got != want {
		t.Errorf("FormatEventList = %q, want %q", got, want)
	}
}
