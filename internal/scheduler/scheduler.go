package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/HamzterDev/Calender/config"
	"github.com/HamzterDev/Calender/internal/service"
)

type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler sends the daily agenda digest: the rest of the current
// month's events, once a day, to the configured chat. Listings go
// through ListRange so they never disturb a pending delete-by-position.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	calendar *service.CalendarService
	sender   MessageSender
}

func New(cfg *config.Config, calendar *service.CalendarService) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Timezone))

	return &Scheduler{
		cron:     c,
		cfg:      cfg,
		calendar: calendar,
	}
}

func (s *Scheduler) SetSender(sender MessageSender) {
	s.sender = sender
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.DigestTime == "" {
		return nil // digest disabled
	}

	spec, err := cronSpec(s.cfg.DigestTime)
	if err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(spec, s.sendDigest); err != nil {
		return fmt.Errorf("add digest job: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (TZ: %s, digest: %s)", s.cfg.Timezone, s.cfg.DigestTime)

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// digestRange covers [today 00:00, first of next month 00:00), both
// bounds in now's zone so the day boundary is local midnight.
func digestRange(now time.Time) (from, to time.Time) {
	from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return from, to
}

// cronSpec turns "HH:MM" into a daily cron expression.
func cronSpec(hhmm string) (string, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("bad DIGEST_TIME %q: want HH:MM", hhmm)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("bad DIGEST_TIME %q: want HH:MM", hhmm)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

func (s *Scheduler) sendDigest() {
	if s.sender == nil {
		return
	}

	now := time.Now().In(s.cfg.Timezone)
	from, to := digestRange(now)

	events, err := s.calendar.ListRange(context.Background(), from, to)
	if err != nil {
		log.Printf("Digest listing failed: %v", err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 Agenda for the rest of %02d/%d\n", now.Month(), now.Year()))
	if len(events) == 0 {
		sb.WriteString("📭 No events")
	} else {
		sb.WriteString(s.calendar.FormatEventList(events))
	}

	if err := s.sender.SendMessage(s.cfg.DigestChatID, sb.String()); err != nil {
		log.Printf("Error sending digest to %d: %v", s.cfg.DigestChatID, err)
	}
}
