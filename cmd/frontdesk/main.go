// cmd/frontdesk/main.go
//
// Entry point for the front-desk operator console.
//
// Flow:
// 1. Initialize the .frontdesk directory in the working directory
// 2. Load the project config and the hotel dataset
// 3. Start the voice event bridge (when enabled)
// 4. Run the TUI until the operator quits

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harborview/frontdesk/internal/config"
	"github.com/harborview/frontdesk/internal/console"
	"github.com/harborview/frontdesk/internal/hotel"
	"github.com/harborview/frontdesk/internal/logbook"
	"github.com/harborview/frontdesk/internal/tui"
	"github.com/harborview/frontdesk/internal/voice"
)

func main() {
	demo := flag.Bool("demo", false, "replay a scripted voice session against the AI pane")
	flag.Parse()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitFrontdeskDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .frontdesk directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dataset, err := loadDataset(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading hotel dataset: %v\n", err)
		os.Exit(1)
	}
	directory := hotel.NewDirectory(dataset)
	store := console.NewStore(directory)

	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening logbook: %v\n", err)
		os.Exit(1)
	}
	lb.Info("Console starting for %s", cfg.Project.HotelName)

	router := voice.NewRouter(store, voice.RouterWithLogger(lb))

	settings := voice.SettingsFromConfig(cfg)
	var server *voice.Server
	if settings.Enabled {
		server = voice.NewServer(settings, voice.WithProcessor(router), voice.WithLogger(lb))
		if err := server.Start(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting event bridge: %v\n", err)
			os.Exit(1)
		}
		lb.Info("Event bridge listening on %s", server.Addr())
	} else {
		lb.Info("Event bridge disabled")
	}

	if *demo {
		go replayDemoSession(router)
	}

	p := tea.NewProgram(
		tui.NewApp(cfg, store, router, lb),
		tea.WithAltScreen(),
	)
	_, runErr := p.Run()

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := server.Shutdown(ctx); err != nil {
			lb.Warn("Event bridge shutdown: %v", err)
		}
		cancel()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", runErr)
		os.Exit(1)
	}
}

func loadDataset(cfg *config.Config) (hotel.Dataset, error) {
	path := cfg.DatasetPath()
	if path == "" {
		return hotel.SeedDataset(), nil
	}
	return hotel.LoadDataset(path)
}

// replayDemoSession drives the AI pane with a short scripted conversation so
// the console can be exercised without a live voice transport.
func replayDemoSession(router *voice.Router) {
	type step struct {
		delay time.Duration
		event voice.Event
	}
	script := []step{
		{1 * time.Second, voice.Event{Type: voice.EventConnected}},
		{2 * time.Second, voice.Event{Type: voice.EventUserTranscript, Text: "Hi, I'd like to check in, the name is John Smith."}},
		{2 * time.Second, voice.Event{
			Type:         voice.EventFunctionCall,
			FunctionName: "update_checkin_form",
			Args:         map[string]any{"guest_name": "John Smith", "reservation_number": "res-1"},
		}},
		{4 * time.Second, voice.Event{Type: voice.EventUserTranscript, Text: "Do you have a deluxe room free next weekend?"}},
		{2 * time.Second, voice.Event{
			Type:         voice.EventFunctionCall,
			FunctionName: "search_availability",
			Args:         map[string]any{"check_in_date": "+3", "check_out_date": "+5", "room_type": "deluxe"},
		}},
		{4 * time.Second, voice.Event{Type: voice.EventAssistantTranscript, Text: "I can also note a late checkout for you."}},
		{2 * time.Second, voice.Event{
			Type:         voice.EventFunctionCall,
			FunctionName: "create_special_request",
			Args:         map[string]any{"room_number": "101", "request_type": "late_checkout", "details": "Flight leaves at 6pm"},
		}},
	}
	for _, s := range script {
		time.Sleep(s.delay)
		router.HandleEvent(s.event)
	}
}
