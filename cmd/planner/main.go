// Command planner is a terminal client for the planner API — the CLI
// counterpart of the mobile app. It remembers the active trip id in a local
// cache file so subcommands can be run without repeating the trip id.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/plannerhq/planner/client"
	"github.com/plannerhq/planner/client/tripcache"
)

const usage = `usage: planner <command> [flags]

commands:
  create        create a trip and make it the active trip
  trip          show the active trip
  update        change the active trip's destination or dates
  confirm       follow the active trip's confirmation link
  invite        invite a guest by email
  participants  list the active trip's participants
  activity      add an activity to the active trip
  activities    list activities grouped by day
  link          attach a reference link to the active trip
  links         list the active trip's links
  guest         show or confirm a participant by id
  forget        drop the locally cached trip id

The API base URL is taken from --api or the PLANNER_API_URL environment
variable (default http://localhost:8080).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app := &app{
		cache: tripcache.New(),
		args:  os.Args[2:],
	}

	var err error
	switch os.Args[1] {
	case "create":
		err = app.create(ctx)
	case "trip":
		err = app.trip(ctx)
	case "update":
		err = app.update(ctx)
	case "confirm":
		err = app.confirm(ctx)
	case "invite":
		err = app.invite(ctx)
	case "participants":
		err = app.participants(ctx)
	case "activity":
		err = app.activity(ctx)
	case "activities":
		err = app.activities(ctx)
	case "link":
		err = app.link(ctx)
	case "links":
		err = app.links(ctx)
	case "guest":
		err = app.guest(ctx)
	case "forget":
		err = app.forget()
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "planner: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "planner:", err)
		os.Exit(1)
	}
}

type app struct {
	cache *tripcache.Store
	args  []string
}

// flagSet builds the per-command FlagSet with the shared --api flag.
func (a *app) flagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	api := fs.String("api", defaultAPI(), "planner API base URL")
	return fs, api
}

func defaultAPI() string {
	if v := os.Getenv("PLANNER_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// activeTrip returns the cached trip id or an instructive error.
func (a *app) activeTrip() (string, error) {
	id, ok, err := a.cache.Get()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no active trip — run \"planner create\" first")
	}
	return id, nil
}

func (a *app) create(ctx context.Context) error {
	fs, api := a.flagSet("create")
	destination := fs.String("destination", "", "where the trip goes (required)")
	starts := fs.String("starts", "", "start timestamp, RFC 3339 (required)")
	ends := fs.String("ends", "", "end timestamp, RFC 3339 (required)")
	ownerName := fs.String("owner-name", "", "trip owner's name (required)")
	ownerEmail := fs.String("owner-email", "", "trip owner's email (required)")
	invite := fs.StringArray("invite", nil, "guest email to invite (repeatable)")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	startsAt, err := time.Parse(time.RFC3339, *starts)
	if err != nil {
		return fmt.Errorf("--starts: %w", err)
	}
	endsAt, err := time.Parse(time.RFC3339, *ends)
	if err != nil {
		return fmt.Errorf("--ends: %w", err)
	}

	tripID, err := client.New(*api, nil).CreateTrip(ctx, client.CreateTripRequest{
		Destination:    *destination,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		OwnerName:      *ownerName,
		OwnerEmail:     *ownerEmail,
		EmailsToInvite: *invite,
	})
	if err != nil {
		return err
	}

	if err := a.cache.Save(tripID); err != nil {
		return err
	}
	fmt.Printf("created trip %s (now active)\n", tripID)
	fmt.Println("a confirmation link has been emailed to the owner")
	return nil
}

func (a *app) trip(ctx context.Context) error {
	fs, api := a.flagSet("trip")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	trip, err := client.New(*api, nil).GetTrip(ctx, id)
	if err != nil {
		return err
	}

	status := "draft"
	if trip.IsConfirmed {
		status = "confirmed"
	}
	fmt.Printf("%s  %s\n", trip.ID, trip.Destination)
	fmt.Printf("  %s — %s  [%s]\n", trip.StartsAt.Format("Jan 2, 2006"), trip.EndsAt.Format("Jan 2, 2006"), status)
	return nil
}

func (a *app) update(ctx context.Context) error {
	fs, api := a.flagSet("update")
	destination := fs.String("destination", "", "new destination (required)")
	starts := fs.String("starts", "", "new start timestamp, RFC 3339 (required)")
	ends := fs.String("ends", "", "new end timestamp, RFC 3339 (required)")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	startsAt, err := time.Parse(time.RFC3339, *starts)
	if err != nil {
		return fmt.Errorf("--starts: %w", err)
	}
	endsAt, err := time.Parse(time.RFC3339, *ends)
	if err != nil {
		return fmt.Errorf("--ends: %w", err)
	}

	trip, err := client.New(*api, nil).UpdateTrip(ctx, id, client.UpdateTripRequest{
		Destination: *destination,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	})
	if err != nil {
		return err
	}

	fmt.Printf("updated trip %s: %s, %s — %s\n", trip.ID, trip.Destination,
		trip.StartsAt.Format("Jan 2, 2006"), trip.EndsAt.Format("Jan 2, 2006"))
	return nil
}

func (a *app) confirm(ctx context.Context) error {
	fs, api := a.flagSet("confirm")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	webURL, err := client.New(*api, nil).ConfirmTrip(ctx, id)
	if err != nil {
		return err
	}

	fmt.Println("trip confirmed — invitation emails are on their way to the guests")
	fmt.Println("web view:", webURL)
	return nil
}

func (a *app) invite(ctx context.Context) error {
	fs, api := a.flagSet("invite")
	email := fs.String("email", "", "guest email to invite (required)")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	participantID, err := client.New(*api, nil).Invite(ctx, id, *email)
	if err != nil {
		return err
	}

	fmt.Printf("invited %s (participant %s)\n", *email, participantID)
	return nil
}

func (a *app) participants(ctx context.Context) error {
	fs, api := a.flagSet("participants")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	participants, err := client.New(*api, nil).GetParticipants(ctx, id)
	if err != nil {
		return err
	}

	for _, p := range participants {
		marker := " "
		if p.IsConfirmed {
			marker = "✓"
		}
		name := p.Name
		if name == "" {
			name = "(pending)"
		}
		role := ""
		if p.IsOwner {
			role = "  owner"
		}
		fmt.Printf("%s %-24s %s%s\n", marker, name, p.Email, role)
	}
	return nil
}

func (a *app) activity(ctx context.Context) error {
	fs, api := a.flagSet("activity")
	title := fs.String("title", "", "activity title (required)")
	at := fs.String("at", "", "when it happens, RFC 3339 (required)")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	occursAt, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}

	activityID, err := client.New(*api, nil).CreateActivity(ctx, id, *title, occursAt)
	if err != nil {
		return err
	}

	fmt.Printf("added activity %s\n", activityID)
	return nil
}

func (a *app) activities(ctx context.Context) error {
	fs, api := a.flagSet("activities")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	schedule, err := client.New(*api, nil).GetActivities(ctx, id)
	if err != nil {
		return err
	}

	for _, day := range schedule {
		fmt.Println(day.Date.Format("Monday, Jan 2"))
		if len(day.Activities) == 0 {
			fmt.Println("  —")
			continue
		}
		for _, act := range day.Activities {
			fmt.Printf("  %s  %s\n", act.OccursAt.Format("15:04"), act.Title)
		}
	}
	return nil
}

func (a *app) link(ctx context.Context) error {
	fs, api := a.flagSet("link")
	title := fs.String("title", "", "link title (required)")
	linkURL := fs.String("url", "", "link URL (required)")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	linkID, err := client.New(*api, nil).CreateLink(ctx, id, *title, *linkURL)
	if err != nil {
		return err
	}

	fmt.Printf("added link %s\n", linkID)
	return nil
}

func (a *app) links(ctx context.Context) error {
	fs, api := a.flagSet("links")
	if err := fs.Parse(a.args); err != nil {
		return err
	}

	id, err := a.activeTrip()
	if err != nil {
		return err
	}

	links, err := client.New(*api, nil).GetLinks(ctx, id)
	if err != nil {
		return err
	}

	for _, l := range links {
		fmt.Printf("%-24s %s\n", l.Title, l.URL)
	}
	return nil
}

// guest covers the invited-guest side of the flow: inspect a participant by
// the id from the invitation link, and optionally confirm attendance.
func (a *app) guest(ctx context.Context) error {
	fs, api := a.flagSet("guest")
	participantID := fs.String("id", "", "participant id from the invitation link (required)")
	name := fs.String("name", "", "confirm attendance under this name")
	email := fs.String("email", "", "confirm attendance with this email")
	if err := fs.Parse(a.args); err != nil {
		return err
	}
	if *participantID == "" {
		return fmt.Errorf("--id is required")
	}

	c := client.New(*api, nil)

	if *name != "" || *email != "" {
		if err := c.ConfirmParticipant(ctx, *participantID, *name, *email); err != nil {
			return err
		}
		fmt.Println("attendance confirmed")
		return nil
	}

	p, err := c.GetParticipant(ctx, *participantID)
	if err != nil {
		return err
	}
	status := "invited"
	if p.IsConfirmed {
		status = "confirmed"
	}
	displayName := p.Name
	if displayName == "" {
		displayName = "(no name yet)"
	}
	fmt.Printf("%s  %s  [%s]\n", displayName, p.Email, status)
	return nil
}

func (a *app) forget() error {
	if err := a.cache.Remove(); err != nil {
		return err
	}
	fmt.Println("active trip forgotten")
	return nil
}
