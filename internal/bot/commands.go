package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/HamzterDev/Calender/internal/command"
	"github.com/HamzterDev/Calender/internal/domain"
)

const helpText = `📅 Calendar Auto-Bot

🟢 /add task
🟢 /add task | dd/mm/yyyy
🟢 /add task | dd/mm/yyyy HH:MM

🟢 /show MM/YYYY
🟢 /delete <number>
🟢 /help`

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())

	req, err := command.Parse(cmd, args, time.Now().In(b.calendar.Timezone()), b.calendar.Timezone())
	if err != nil {
		b.SendMessage(chatID, errorMessage(cmd, err))
		return
	}

	ctx := context.Background()

	switch r := req.(type) {
	case domain.AddEvent:
		b.cmdAdd(ctx, chatID, r)
	case domain.ListEvents:
		b.cmdShow(ctx, chatID, r)
	case domain.DeleteEvent:
		b.cmdDelete(ctx, chatID, r)
	case domain.Help:
		b.SendMessage(chatID, helpText)
	}
}

func (b *Bot) cmdAdd(ctx context.Context, chatID int64, req domain.AddEvent) {
	event, err := b.calendar.Add(ctx, req)
	if err != nil {
		b.SendMessage(chatID, errorMessage("add", err))
		return
	}

	b.SendMessage(chatID, fmt.Sprintf("✅ Added: %s (%s)", event.Title, event.FormatStart(b.calendar.Timezone())))
}

func (b *Bot) cmdShow(ctx context.Context, chatID int64, req domain.ListEvents) {
	events, err := b.calendar.ListMonth(ctx, chatID, req.Month, req.Year)
	if err != nil {
		b.SendMessage(chatID, errorMessage("show", err))
		return
	}

	if len(events) == 0 {
		b.SendMessage(chatID, "📭 No events")
		return
	}

	text := fmt.Sprintf("📅 Events for %02d/%d\n", req.Month, req.Year)
	text += b.calendar.FormatEventList(events)
	b.SendMessage(chatID, text)
}

func (b *Bot) cmdDelete(ctx context.Context, chatID int64, req domain.DeleteEvent) {
	event, err := b.calendar.Delete(ctx, chatID, req.Position)
	if err != nil {
		b.SendMessage(chatID, errorMessage("delete", err))
		return
	}

	b.SendMessage(chatID, "✅ Deleted: "+event.Title)
}

// errorMessage maps the error taxonomy to short, distinct replies.
func errorMessage(cmd string, err error) string {
	var dateErr *domain.DateFormatError
	var numErr *domain.InvalidNumberError
	var remoteErr *domain.RemoteCalendarError

	switch {
	case errors.Is(err, domain.ErrMissingArgument):
		return usage(cmd)
	case errors.As(err, &dateErr):
		return "❌ Bad date: use dd/mm/yyyy or dd/mm/yyyy HH:MM"
	case errors.As(err, &numErr):
		return "❌ Not a number. Use /delete <number> from the last /show"
	case errors.Is(err, domain.ErrNotFound):
		return "❌ No event with that number"
	case errors.As(err, &remoteErr):
		return "❌ Calendar error: " + remoteErr.Err.Error()
	default:
		return "❌ " + usage(cmd)
	}
}

func usage(cmd string) string {
	switch cmd {
	case "add":
		return "Use /add task | date [time]"
	case "show":
		return "Use /show MM/YYYY"
	case "delete":
		return "Use /delete <number>"
	default:
		return helpText
	}
}
