package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/MalleshPillai/creation-2k26-nexus/cache"
	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
	"github.com/MalleshPillai/creation-2k26-nexus/internal"
	"github.com/MalleshPillai/creation-2k26-nexus/observability"
	"github.com/MalleshPillai/creation-2k26-nexus/projection"
	"github.com/MalleshPillai/creation-2k26-nexus/repositories"
	"github.com/MalleshPillai/creation-2k26-nexus/services"
	"github.com/MalleshPillai/creation-2k26-nexus/sink"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Portal terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// session is the demo identity provider: one fixed signed-in user per run,
// switched between scenarios to show the anonymous paths too.
type session struct {
	user *domain.UserID
}

func (s *session) CurrentUser() *domain.UserID { return s.user }

func (s *session) signIn(id domain.UserID) { s.user = &id }
func (s *session) signOut()                { s.user = nil }

// run wires the full stack over BadgerDB, seeds a small symposium, and walks
// the registration and messaging flows end to end. Centralizing errors here
// keeps defers (database close) running before exit.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := observability.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := gateway.Open(config.BadgerFilepath, config.BadgerInMemory)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & services
	gw := gateway.NewBadgerGateway(db, gateway.PortalSchema(), logger)
	events := repositories.NewEventRepository(gw, logger)
	incharges := repositories.NewInchargeRepository(gw, logger)
	messages := repositories.NewMessageRepository(gw, logger, config.MessagePageSize, config.AllMessagesPageSize)
	registrations := repositories.NewRegistrationRepository(gw, logger)
	profiles := repositories.NewProfileRepository(gw, logger)

	assembler := projection.NewAssembler(profiles, events, logger)
	store := cache.NewStore(logger)
	notifier := sink.NewCollectingNotifier()
	identity := &session{}

	eventService := services.NewEventService(events, incharges, store, identity, logger)
	messageService := services.NewMessageService(messages, assembler, store, identity, notifier, logger)
	registrationService := services.NewRegistrationService(registrations, assembler, store, identity, notifier, logger)

	if err := seed(ctx, gw); err != nil {
		return exitRuntime, fmt.Errorf("seeding failed: %w", err)
	}

	// 4. Walk the flows
	banner("Events")
	details, err := eventService.Events(ctx)
	if err != nil {
		return exitRuntime, err
	}
	renderEvents(details)

	banner("Registration (anonymous, then signed in twice)")
	identity.signOut()
	if _, err := registrationService.Register(ctx, "e1"); err != nil {
		return exitRuntime, err
	}
	identity.signIn("u2")
	if _, err := registrationService.Register(ctx, "e1"); err != nil {
		return exitRuntime, err
	}
	// Second attempt is absorbed as already-registered, not an error.
	if _, err := registrationService.Register(ctx, "e1"); err != nil {
		return exitRuntime, err
	}
	renderNotifications(notifier.Drain())

	banner("In-charge dashboard (u1 runs Code Sprint)")
	identity.signIn("u1")
	mine, err := eventService.MyInchargeEvent(ctx)
	if err != nil {
		return exitRuntime, err
	}
	if mine != nil {
		eventID := mine.ID
		if _, err := messageService.Send(ctx, domain.SendMessageCommand{
			Content: "Round 1 starts at 3pm in Lab 2. Bring your college ID.",
			EventID: &eventID,
			Kind:    domain.KindEventUpdate,
		}); err != nil {
			return exitRuntime, err
		}
		if _, err := messageService.Send(ctx, domain.SendMessageCommand{
			Content:  "Welcome to Creation 2K26! Registrations close at noon.",
			Kind:     domain.KindGlobal,
			IsGlobal: true,
		}); err != nil {
			return exitRuntime, err
		}
	}
	renderNotifications(notifier.Drain())

	banner("Messages for Code Sprint")
	views, err := messageService.EventMessages(ctx, "e1")
	if err != nil {
		return exitRuntime, err
	}
	renderMessages(views)

	banner("Global announcements")
	global, err := messageService.GlobalMessages(ctx)
	if err != nil {
		return exitRuntime, err
	}
	renderMessages(global)

	banner("Participants of Code Sprint")
	regs, err := registrationService.EventRegistrations(ctx, "e1")
	if err != nil {
		return exitRuntime, err
	}
	renderRegistrations(regs)

	logger.Info("Portal demo finished")
	return exitOK, nil
}

func seed(ctx context.Context, gw *gateway.BadgerGateway) error {
	rules := "• Teams of two\n• Three timed rounds\n• Any language allowed"
	docs := map[string][]map[string]any{
		gateway.CollectionEvents: {
			{"id": "e1", "name": "Code Sprint", "description": "Timed coding rounds", "rules": rules, "category": "technical", "icon_name": "Code2", "accent_color": "#6C5CE7"},
			{"id": "e2", "name": "Treasure Hunt", "description": "Campus-wide clue trail", "category": "non_technical", "icon_name": "Map", "accent_color": "#00B894"},
			{"id": "e3", "name": "Bug Bash", "description": "Find the planted bugs", "category": "technical", "icon_name": "Bug", "accent_color": "#D63031"},
		},
		gateway.CollectionProfiles: {
			{"id": "u1", "name": "Asha", "email": "asha@college.edu", "department": "CSE"},
			{"id": "u2", "name": "Ravi", "email": "ravi@college.edu", "department": "ECE"},
		},
		gateway.CollectionIncharges: {
			{"id": "ic1", "user_id": "u1", "event_id": "e1", "name": "Asha"},
		},
	}
	for collection, rows := range docs {
		for _, row := range rows {
			if err := gw.Insert(ctx, collection, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func banner(title string) {
	fmt.Println()
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" " + title + " "))
}

func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderEvents(details []domain.EventDetail) {
	table := newTable([]string{"", "Name", "Category", "In-charges", "Rules"})
	for _, d := range details {
		incharges := lo.Map(d.Incharges, func(i domain.StudentIncharge, _ int) string { return i.Name })
		table.Append([]string{
			glyph(d.Icon()),
			d.Name,
			string(d.Category),
			strings.Join(incharges, ", "),
			fmt.Sprintf("%d rules", len(d.RuleLines())),
		})
	}
	table.Render()
}

func renderMessages(views []domain.MessageView) {
	table := newTable([]string{"At", "Sender", "Kind", "Event", "Content"})
	for _, v := range views {
		sender := "(unknown)"
		if v.Sender != nil {
			sender = v.Sender.Name
		}
		event := ""
		if v.Event != nil {
			event = v.Event.Name
		}
		table.Append([]string{
			v.CreatedAt.Format(time.Kitchen),
			sender,
			string(v.Kind),
			event,
			v.Content,
		})
	}
	table.Render()
}

func renderRegistrations(views []domain.RegistrationView) {
	table := newTable([]string{"At", "Participant", "Department"})
	for _, v := range views {
		name, department := "(unknown)", ""
		if v.Participant != nil {
			name = v.Participant.Name
			department = v.Participant.Department
		}
		table.Append([]string{v.CreatedAt.Format(time.Kitchen), name, department})
	}
	table.Render()
}

func renderNotifications(notifications []sink.Notification) {
	for _, n := range notifications {
		line := fmt.Sprintf("%s: %s", n.Title, n.Detail)
		switch n.Kind {
		case contract.NotifySuccess:
			color.Green.Println(line)
		case contract.NotifyError:
			color.Red.Println(line)
		default:
			color.Yellow.Println(line)
		}
	}
}

// glyph resolves an icon reference to a terminal glyph. The mapping is
// exhaustive over the names the icon set carries; anything else renders the
// fallback dot.
func glyph(icon domain.IconRef) string {
	if !icon.Known {
		return "•"
	}
	switch icon.Name {
	case "Code2":
		return "⌨"
	case "Cpu":
		return "🖥"
	case "Bug":
		return "🐞"
	case "Lightbulb":
		return "💡"
	case "Gamepad2":
		return "🎮"
	case "Music":
		return "🎵"
	case "Palette":
		return "🎨"
	case "Camera":
		return "📷"
	case "Mic":
		return "🎤"
	case "Trophy":
		return "🏆"
	default:
		return "•"
	}
}
