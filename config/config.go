package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in CALENDAR_PROVIDER.
const (
	ProviderGoogle = "google"
	ProviderCalDAV = "caldav"
)

type Config struct {
	BotToken string
	Timezone *time.Location

	Provider   string
	CalendarID string

	// Google backend
	GoogleTokenFile string // empty means search the candidate paths

	// CalDAV backend
	CalDAVURL      string
	CalDAVUsername string
	CalDAVPassword string

	// Daily agenda digest; disabled when DigestTime is empty
	DigestTime   string
	DigestChatID int64
}

func Load() (*Config, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Asia/Bangkok"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	provider := os.Getenv("CALENDAR_PROVIDER")
	if provider == "" {
		provider = ProviderGoogle
	}
	if provider != ProviderGoogle && provider != ProviderCalDAV {
		return nil, fmt.Errorf("unsupported CALENDAR_PROVIDER %q", provider)
	}

	calendarID := os.Getenv("CALENDAR_ID")
	if calendarID == "" {
		calendarID = "primary"
	}

	digestTime := os.Getenv("DIGEST_TIME")
	var digestChatID int64
	if digestTime != "" {
		digestChatID, err = strconv.ParseInt(os.Getenv("DIGEST_CHAT_ID"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DIGEST_CHAT_ID is required when DIGEST_TIME is set")
		}
	}

	return &Config{
		BotToken:        token,
		Timezone:        tz,
		Provider:        provider,
		CalendarID:      calendarID,
		GoogleTokenFile: os.Getenv("GOOGLE_TOKEN_FILE"),
		CalDAVURL:       os.Getenv("CALDAV_URL"),
		CalDAVUsername:  os.Getenv("CALDAV_USERNAME"),
		CalDAVPassword:  os.Getenv("CALDAV_PASSWORD"),
		DigestTime:      digestTime,
		DigestChatID:    digestChatID,
	}, nil
}
