// Command ridemap is the public CLI for the event map: list and filter
// events, sort by proximity, export calendar entries, submit events and
// video suggestions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dnbonthebike/ridemap/internal/client"
	"github.com/dnbonthebike/ridemap/internal/config"
	"github.com/dnbonthebike/ridemap/internal/controller"
	"github.com/dnbonthebike/ridemap/internal/geo"
	"github.com/dnbonthebike/ridemap/internal/geocode"
	"github.com/dnbonthebike/ridemap/internal/geoloc"
	"github.com/dnbonthebike/ridemap/internal/ical"
	"github.com/dnbonthebike/ridemap/internal/model"
)

const usage = `usage: ridemap <command> [flags]

commands:
  list     list events (filter with -country, -organizer, -time, -near)
  show     print the details of a single event
  options  show the filterable countries and organizers
  ics      export an event as an .ics calendar file
  submit   submit a new event (pending until approved)
  suggest  suggest a video for an event
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

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	c := client.New(client.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})
	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		err = runList(ctx, c, cfg, os.Args[2:])
	case "show":
		err = runShow(ctx, c, os.Args[2:])
	case "options":
		err = runOptions(ctx, c)
	case "ics":
		err = runICS(ctx, c, os.Args[2:])
	case "submit":
		err = runSubmit(ctx, c, cfg, os.Args[2:])
	case "suggest":
		err = runSuggest(ctx, c, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "ridemap:", err)
	os.Exit(1)
}

func runList(ctx context.Context, c *client.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	country := fs.String("country", "", "exact country filter")
	organizer := fs.String("organizer", "", "exact organizer filter")
	timeFilter := fs.String("time", string(model.TimeUpcoming), "upcoming, past, or all")
	near := fs.String("near", "", "lat,lng to sort by distance")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tf := model.TimeFilter(*timeFilter)
	if !tf.IsValid() {
		return fmt.Errorf("invalid -time %q: want upcoming, past, or all", *timeFilter)
	}

	var locator geoloc.Provider
	if *near != "" {
		p, err := parsePoint(*near)
		if err != nil {
			return err
		}
		locator = geoloc.Fixed{Point: p}
	}

	ctrl := controller.New(controller.Config{
		Source:  c,
		Locator: locator,
		GeolocOptions: geoloc.Options{
			Timeout:      cfg.Geolocation.Timeout,
			MaximumAge:   cfg.Geolocation.MaximumAge,
			HighAccuracy: cfg.Geolocation.HighAccuracy,
		},
	})
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	ctrl.SetCountry(*country)
	ctrl.SetOrganizer(*organizer)
	ctrl.SetTimeFilter(tf)
	if locator != nil {
		if err := ctrl.NearMe(ctx); err != nil {
			return err
		}
	}

	events := ctrl.Events()
	if len(events) == 0 {
		fmt.Println("no events match")
		return nil
	}
	for _, e := range events {
		printEvent(e)
	}
	upcoming, past := ctrl.Counts()
	fmt.Printf("\n%d shown (%d upcoming, %d past in total)\n", len(events), upcoming, past)
	return nil
}

func printEvent(e model.Event) {
	line := fmt.Sprintf("#%-4d %s  %s", e.ID, e.EventDate.Format("2006-01-02 15:04"), e.Title)
	place := e.LocationName
	if e.Country != nil {
		place += ", " + *e.Country
	}
	line += "  (" + place + ")"
	if e.Distance != nil {
		line += fmt.Sprintf("  %.1f km", *e.Distance)
	}
	if e.VideoURL != nil {
		line += "  [video]"
	}
	fmt.Println(line)
}

func runShow(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ridemap show <event-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	events, err := c.Events(ctx)
	if err != nil {
		return err
	}
	for _, e := range events {
		if e.ID != id {
			continue
		}
		fmt.Printf("%s\n", e.Title)
		fmt.Printf("  when:      %s\n", e.EventDate.Format("2006-01-02 15:04 MST"))
		place := e.LocationName
		if e.Country != nil {
			place += ", " + *e.Country
		}
		fmt.Printf("  where:     %s (%.4f, %.4f)\n", place, e.Latitude, e.Longitude)
		fmt.Printf("  organizer: %s\n", e.Organizer)
		if e.Description != nil {
			fmt.Printf("  about:     %s\n", *e.Description)
		}
		if e.EventLink != nil {
			fmt.Printf("  link:      %s\n", *e.EventLink)
		}
		if e.VideoURL != nil {
			if embed, ok := model.YouTubeEmbedURL(*e.VideoURL); ok {
				fmt.Printf("  video:     %s\n", embed)
			} else {
				fmt.Printf("  video:     %s\n", *e.VideoURL)
			}
		}
		return nil
	}
	return fmt.Errorf("event %d not found", id)
}

func runOptions(ctx context.Context, c *client.Client) error {
	ctrl := controller.New(controller.Config{Source: c})
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	countries, organizers := ctrl.Options()
	fmt.Println("countries: ", strings.Join(countries, ", "))
	fmt.Println("organizers:", strings.Join(organizers, ", "))
	return nil
}

func runICS(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("ics", flag.ExitOnError)
	out := fs.String("o", "", "output file (default: derived from the title)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ridemap ics [-o file] <event-id>")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", fs.Arg(0))
	}

	events, err := c.Events(ctx)
	if err != nil {
		return err
	}
	for _, e := range events {
		if e.ID != id {
			continue
		}
		name := *out
		if name == "" {
			name = ical.Filename(e.Title)
		}
		if err := os.WriteFile(name, ical.Encode(e), 0o644); err != nil {
			return fmt.Errorf("write calendar file: %w", err)
		}
		fmt.Println("wrote", name)
		return nil
	}
	return fmt.Errorf("event %d not found", id)
}

func runSubmit(ctx context.Context, c *client.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	title := fs.String("title", "", "event title")
	organizer := fs.String("organizer", "", "organizer name")
	location := fs.String("location", "", "location name")
	country := fs.String("country", "", "country")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	at := fs.String("at", "", "place search query; geocoded when -lat/-lng are omitted")
	date := fs.String("date", "", "event date, RFC 3339")
	link := fs.String("link", "", "event link")
	desc := fs.String("desc", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eventDate, err := time.Parse(time.RFC3339, *date)
	if err != nil {
		return fmt.Errorf("invalid -date %q: want RFC 3339, e.g. 2026-09-01T19:00:00Z", *date)
	}

	req := &model.CreateEventRequest{
		Title:        *title,
		Organizer:    *organizer,
		LocationName: *location,
		EventDate:    eventDate,
	}
	// Only set coordinates that were actually given, so a missing pin is
	// reported as such instead of defaulting to (0, 0).
	provided := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { provided[f.Name] = true })
	if provided["lat"] {
		req.Latitude = lat
	}
	if provided["lng"] {
		req.Longitude = lng
	}
	if *country != "" {
		req.Country = country
	}

	if *at != "" && (req.Latitude == nil || req.Longitude == nil) {
		gc := geocode.New(geocode.Config{
			BaseURL:     cfg.Geocoding.BaseURL,
			AccessToken: cfg.Geocoding.AccessToken,
		})
		place, err := gc.Forward(ctx, *at)
		if err != nil {
			return fmt.Errorf("could not geocode %q: %w", *at, err)
		}
		req.Latitude = &place.Point.Lat
		req.Longitude = &place.Point.Lng
		if req.LocationName == "" {
			req.LocationName = place.Name
		}
		// Reverse lookup auto-fills the country; failures are non-fatal.
		if req.Country == nil {
			if rev, err := gc.Reverse(ctx, place.Point); err == nil && rev.Country != "" {
				req.Country = &rev.Country
			}
		}
	}
	if *link != "" {
		req.EventLink = link
	}
	if *desc != "" {
		req.Description = desc
	}

	created, err := c.CreateEvent(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("submitted event #%d (%s), awaiting approval\n", created.ID, created.Title)
	return nil
}

func runSuggest(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ridemap suggest <event-id> <video-url>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}
	if err := c.SuggestVideo(ctx, id, args[1]); err != nil {
		return err
	}
	fmt.Println("suggestion submitted, awaiting review")
	return nil
}

func parsePoint(s string) (geo.Point, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return geo.Point{}, fmt.Errorf("invalid -near %q: want lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude in -near %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude in -near %q", s)
	}
	return geo.Point{Lat: lat, Lng: lng}, nil
}
