// Command ridemap-admin moderates events and video suggestions. The shared
// admin secret comes from RIDEMAP_ADMIN_KEY (or a .env file).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dnbonthebike/ridemap/internal/client"
	"github.com/dnbonthebike/ridemap/internal/config"
	"github.com/dnbonthebike/ridemap/internal/model"
)

const usage = `usage: ridemap-admin <command> [args]

commands:
  list [status]              all events, optionally only pending/approved/rejected
  pending                    events awaiting moderation
  approve <event-id>         approve an event
  reject <event-id>          reject an event
  delete <event-id>          delete an event
  suggestions                pending video suggestions
  approve-suggestion <id>    accept a suggestion (copies the URL onto the event)
  reject-suggestion <id>     decline a suggestion
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if cfg.API.AdminKey == "" {
		fatal(errors.New("RIDEMAP_ADMIN_KEY is not set"))
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	admin := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}).Admin(cfg.API.AdminKey)
	ctx := context.Background()

	switch cmd := os.Args[1]; cmd {
	case "list":
		err = listEvents(ctx, admin.AllEvents, os.Args[2:])
	case "pending":
		err = listEvents(ctx, admin.PendingEvents, nil)
	case "approve":
		err = withID(os.Args[2:], cmd, func(id int64) error {
			return admin.ApproveEvent(ctx, id)
		})
	case "reject":
		err = withID(os.Args[2:], cmd, func(id int64) error {
			return admin.RejectEvent(ctx, id)
		})
	case "delete":
		err = withID(os.Args[2:], cmd, func(id int64) error {
			return admin.DeleteEvent(ctx, id)
		})
	case "suggestions":
		err = listSuggestions(ctx, admin)
	case "approve-suggestion":
		err = withID(os.Args[2:], cmd, func(id int64) error {
			return admin.ApproveSuggestion(ctx, id)
		})
	case "reject-suggestion":
		err = withID(os.Args[2:], cmd, func(id int64) error {
			return admin.RejectSuggestion(ctx, id)
		})
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	if errors.Is(err, client.ErrInvalidAdminKey) {
		fmt.Fprintln(os.Stderr, "ridemap-admin: the admin key was rejected; check RIDEMAP_ADMIN_KEY")
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "ridemap-admin:", err)
	os.Exit(1)
}

func withID(args []string, cmd string, fn func(id int64) error) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ridemap-admin %s <id>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	if err := fn(id); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func listEvents(ctx context.Context, fetch func(context.Context) ([]model.Event, error), args []string) error {
	var statusTab model.EventStatus
	if len(args) > 0 {
		statusTab = model.EventStatus(args[0])
		if !statusTab.IsValid() {
			return fmt.Errorf("invalid status %q: want pending, approved, or rejected", args[0])
		}
	}

	events, err := fetch(ctx)
	if err != nil {
		return err
	}
	if statusTab != "" {
		kept := events[:0]
		for _, e := range events {
			if e.Status == statusTab {
				kept = append(kept, e)
			}
		}
		events = kept
	}
	if len(events) == 0 {
		fmt.Println("no events")
		return nil
	}
	for _, e := range events {
		place := e.LocationName
		if e.Country != nil {
			place += ", " + *e.Country
		}
		fmt.Printf("#%-4d %-8s %s  %s  (%s)\n",
			e.ID, e.Status, e.EventDate.Format("2006-01-02"), e.Title, place)
	}
	return nil
}

func listSuggestions(ctx context.Context, admin *client.Admin) error {
	suggestions, err := admin.Suggestions(ctx)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Println("no pending suggestions")
		return nil
	}
	for _, s := range suggestions {
		fmt.Printf("#%-4d event #%d (%s): %s\n", s.ID, s.EventID, s.EventTitle, s.VideoURL)
	}
	return nil
}
