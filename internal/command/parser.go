// Package command turns a command name plus its argument text into a
// typed operation request.
package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/HamzterDev/Calender/internal/domain"
)

// dateGrammar is one accepted date/time shape. Grammars are tried in
// order; the first that parses the whole input wins.
type dateGrammar struct {
	name   string
	layout string
	allDay bool
}

var dateGrammars = []dateGrammar{
	{name: "date", layout: "2/1/2006", allDay: true},
	{name: "datetime", layout: "2/1/2006 15:04", allDay: false},
}

// Parse maps a command name and its whitespace-joined argument text to a
// Request. now supplies the default start for /add without a date; loc is
// the zone timed events are interpreted in.
func Parse(cmd, args string, now time.Time, loc *time.Location) (domain.Request, error) {
	args = strings.TrimSpace(args)

	switch cmd {
	case "add":
		return parseAdd(args, now, loc)
	case "show":
		return parseShow(args)
	case "delete":
		return parseDelete(args)
	default:
		return domain.Help{}, nil
	}
}

func parseAdd(args string, now time.Time, loc *time.Location) (domain.Request, error) {
	if args == "" {
		return nil, domain.ErrMissingArgument
	}

	title, dateText, hasDate := strings.Cut(args, "|")
	title = strings.TrimSpace(title)

	if !hasDate {
		// No date given: timed event starting now.
		return domain.AddEvent{
			Title: title,
			Start: now,
			End:   now.Add(time.Hour),
		}, nil
	}

	dateText = strings.TrimSpace(dateText)
	start, grammar, err := parseDate(dateText, loc)
	if err != nil {
		return nil, err
	}

	if grammar.allDay {
		return domain.AddEvent{
			Title:  title,
			Start:  start,
			End:    start.AddDate(0, 0, 1), // exclusive end date
			AllDay: true,
		}, nil
	}

	return domain.AddEvent{
		Title: title,
		Start: start,
		End:   start.Add(time.Hour),
	}, nil
}

// parseDate tries each grammar in order and returns the first full match.
func parseDate(text string, loc *time.Location) (time.Time, dateGrammar, error) {
	for _, g := range dateGrammars {
		t, err := time.ParseInLocation(g.layout, text, loc)
		if err == nil {
			return t, g, nil
		}
	}
	return time.Time{}, dateGrammar{}, &domain.DateFormatError{Input: text}
}

func parseShow(args string) (domain.Request, error) {
	if args == "" {
		return nil, domain.ErrMissingArgument
	}

	monthStr, yearStr, ok := strings.Cut(args, "/")
	if !ok {
		return nil, fmt.Errorf("bad month argument %q: want MM/YYYY", args)
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, fmt.Errorf("bad month argument %q: %w", args, err)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("bad month argument %q: %w", args, err)
	}

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("bad month argument %q: month must be 1-12", args)
	}
	if year < 1000 || year > 9999 {
		return nil, fmt.Errorf("bad month argument %q: year must be 4 digits", args)
	}

	return domain.ListEvents{Month: month, Year: year}, nil
}

func parseDelete(args string) (domain.Request, error) {
	if args == "" {
		return nil, domain.ErrMissingArgument
	}

	n, err := strconv.Atoi(args)
	if err != nil {
		return nil, &domain.InvalidNumberError{Input: args}
	}

	return domain.DeleteEvent{Position: n}, nil
}
