package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/HamzterDev/Calender/config"
	"github.com/HamzterDev/Calender/internal/bot"
	"github.com/HamzterDev/Calender/internal/clients/caldav"
	"github.com/HamzterDev/Calender/internal/clients/gcal"
	"github.com/HamzterDev/Calender/internal/scheduler"
	"github.com/HamzterDev/Calender/internal/service"
	"github.com/HamzterDev/Calender/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A missing credential artifact aborts startup; it is never handled
	// per-command.
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to init calendar provider: %v", err)
	}

	cache := session.New()
	calendarSvc := service.NewCalendarService(provider, cache, cfg.Timezone)

	tgBot, err := bot.New(cfg, calendarSvc)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	sched := scheduler.New(cfg, calendarSvc)
	sched.SetSender(tgBot)

	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	go func() {
		if err := tgBot.Start(ctx); err != nil {
			log.Printf("Bot error: %v", err)
		}
	}()

	log.Println("CalendarBot started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	cancel()
	sched.Stop()

	log.Println("CalendarBot stopped")
}

func newProvider(ctx context.Context, cfg *config.Config) (service.CalendarProvider, error) {
	switch cfg.Provider {
	case config.ProviderCalDAV:
		return caldav.NewClient(cfg.CalDAVURL, cfg.CalDAVUsername, cfg.CalDAVPassword, cfg.CalendarID), nil
	default:
		return gcal.NewClient(ctx, cfg.GoogleTokenFile, cfg.CalendarID, cfg.Timezone)
	}
}
