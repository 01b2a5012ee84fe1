// Package tui renders the dual-pane operator console. It follows The Elm
// Architecture the same way the rest of the charm ecosystem does: all state
// transitions happen inside Update, which bubbletea runs as a single message
// loop — user keys and inbound voice notices are serialized onto it, so every
// transition sees the result of the previous one.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harborview/frontdesk/internal/config"
	"github.com/harborview/frontdesk/internal/console"
	"github.com/harborview/frontdesk/internal/hotel"
	"github.com/harborview/frontdesk/internal/logbook"
	"github.com/harborview/frontdesk/internal/voice"
)

// workflowOrder fixes the tab order shown in both panes.
var workflowOrder = []console.Workflow{
	console.WorkflowCheckIn,
	console.WorkflowAvailability,
	console.WorkflowModification,
	console.WorkflowSpecialRequest,
}

var workflowTitles = map[console.Workflow]string{
	console.WorkflowCheckIn:        "Check-In",
	console.WorkflowAvailability:   "Availability",
	console.WorkflowModification:   "Modification",
	console.WorkflowSpecialRequest: "Special Request",
}

// noticeMsg wraps an inbound voice notice for the update loop.
type noticeMsg struct {
	notice voice.Notice
}

// field identifies one editable slot in the manual pane.
type field struct {
	label  string
	value  func(console.Tree) string
	commit func(*App, string)
}

// App is the main application model; it holds everything the console needs to
// render and mutate.
type App struct {
	config  *config.Config
	store   *console.Store
	router  *voice.Router
	logbook *logbook.Logbook

	input       textinput.Model
	fieldIndex  int
	editing     bool
	resultIndex int

	width     int
	height    int
	statusMsg string
}

// NewApp wires the console model together.
func NewApp(cfg *config.Config, store *console.Store, router *voice.Router, lb *logbook.Logbook) *App {
	input := textinput.New()
	input.CharLimit = 120
	input.Width = 32
	return &App{
		config:    cfg,
		store:     store,
		router:    router,
		logbook:   lb,
		input:     input,
		statusMsg: "Ready",
	}
}

// Init starts the cursor blink and the voice notice listener.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.listenForNotices())
}

// listenForNotices blocks on the router's notice channel and feeds each
// notice back into the update loop.
func (a *App) listenForNotices() tea.Cmd {
	if a.router == nil {
		return nil
	}
	ch := a.router.Notices()
	return func() tea.Msg {
		notice, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg{notice: notice}
	}
}

// Update is called for every message bubbletea delivers.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case noticeMsg:
		a.handleNotice(msg.notice)
		return a, a.listenForNotices()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.editing {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleNotice(notice voice.Notice) {
	switch notice.Type {
	case voice.EventFunctionCall:
		if notice.Result.Success {
			a.statusMsg = fmt.Sprintf("AI: %s", notice.Result.Message)
			a.logInfo("Voice update applied: %s", notice.Result.Message)
		} else {
			a.statusMsg = fmt.Sprintf("AI rejected: %s", notice.Result.Message)
			a.logWarn("Voice update rejected: %s", notice.Result.Message)
		}
	case voice.EventConnected:
		a.statusMsg = "Voice assistant connected"
		a.logInfo("Voice transport connected")
	case voice.EventDisconnected:
		a.statusMsg = "Voice assistant disconnected"
		a.logInfo("Voice transport disconnected")
	case voice.EventError:
		conn := a.router.Connection()
		a.statusMsg = fmt.Sprintf("Voice error: %s", conn.ErrMessage)
		a.logError("Voice transport error: %s", conn.ErrMessage)
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Keys that work regardless of editing state.
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+p", "ctrl+shift+p":
		a.pullFromAI()
		return a, nil
	case "ctrl+r":
		a.store.Reset()
		a.stopEditing()
		a.resultIndex = 0
		a.statusMsg = "Workspaces reset"
		a.logInfo("Both panes reset to initial state")
		return a, nil
	}

	if a.editing {
		switch key {
		case "enter":
			a.commitField()
			return a, nil
		case "esc":
			a.stopEditing()
			a.statusMsg = "Edit cancelled"
			return a, nil
		default:
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			return a, cmd
		}
	}

	switch key {
	case "q", "esc":
		if key == "q" {
			return a, tea.Quit
		}
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		a.store.SetWorkflow(console.PaneManual, workflowOrder[idx])
		a.fieldIndex = 0
		a.resultIndex = 0
		a.statusMsg = fmt.Sprintf("Workflow: %s", workflowTitles[workflowOrder[idx]])
	case "tab":
		fields := a.currentFields()
		if len(fields) > 0 {
			a.fieldIndex = (a.fieldIndex + 1) % len(fields)
		}
	case "shift+tab":
		fields := a.currentFields()
		if len(fields) > 0 {
			a.fieldIndex = (a.fieldIndex - 1 + len(fields)) % len(fields)
		}
	case "enter":
		a.startEditing()
	case "up", "k":
		if a.resultIndex > 0 {
			a.resultIndex--
		}
	case "down", "j":
		if a.resultIndex < a.resultCount()-1 {
			a.resultIndex++
		}
	case " ":
		a.selectResult()
	case "e":
		if a.manualTree().Workflow == console.WorkflowModification {
			editMode := !a.manualTree().ModificationUI.EditMode
			a.store.SetModificationEditMode(console.PaneManual, editMode)
			a.fieldIndex = 0
			if editMode {
				a.statusMsg = "Edit mode on"
			} else {
				a.statusMsg = "Edit mode off"
			}
		}
	case "s":
		if a.manualTree().Workflow == console.WorkflowSpecialRequest {
			a.store.SubmitSpecialRequest(console.PaneManual)
			tree := a.manualTree()
			a.statusMsg = fmt.Sprintf("Special request filed (%s)", tree.SpecialRequest.RequestID)
			a.logInfo("Special request filed: %s", tree.SpecialRequest.RequestID)
		}
	}
	return a, nil
}

func (a *App) pullFromAI() {
	if !a.store.AIReady() {
		a.statusMsg = "AI data not ready"
		return
	}
	a.store.PullFromAI()
	a.stopEditing()
	a.resultIndex = 0
	a.statusMsg = "Pulled AI workspace into manual pane"
	a.logInfo("Pulled AI workspace into manual pane")
}

func (a *App) manualTree() console.Tree {
	return a.store.Snapshot(console.PaneManual)
}

func (a *App) startEditing() {
	fields := a.currentFields()
	if len(fields) == 0 {
		return
	}
	if a.fieldIndex >= len(fields) {
		a.fieldIndex = 0
	}
	f := fields[a.fieldIndex]
	a.input.SetValue(f.value(a.manualTree()))
	a.input.CursorEnd()
	a.input.Focus()
	a.editing = true
	a.statusMsg = fmt.Sprintf("Editing %s", f.label)
}

func (a *App) stopEditing() {
	a.editing = false
	a.input.Blur()
	a.input.SetValue("")
}

func (a *App) commitField() {
	fields := a.currentFields()
	if a.fieldIndex >= len(fields) {
		a.stopEditing()
		return
	}
	f := fields[a.fieldIndex]
	value := strings.TrimSpace(a.input.Value())
	f.commit(a, value)
	a.stopEditing()
}

// currentFields lists the editable slots for the manual pane's active
// workflow. Modification swaps its field set while the edit buffer is open.
func (a *App) currentFields() []field {
	tree := a.manualTree()
	switch tree.Workflow {
	case console.WorkflowCheckIn:
		return []field{
			{
				label: "guest search",
				value: func(t console.Tree) string { return t.CheckInUI.SearchQuery },
				commit: func(app *App, v string) {
					results := app.store.Directory().SearchReservations(v)
					app.store.SetCheckInSearch(console.PaneManual, v, results)
					app.resultIndex = 0
					app.statusMsg = fmt.Sprintf("%d reservation(s) match %q", len(results), v)
				},
			},
		}
	case console.WorkflowAvailability:
		return []field{
			{
				label:  "check-in date",
				value:  func(t console.Tree) string { return t.AvailabilityUI.Filters.CheckInDate },
				commit: func(app *App, v string) { app.applyAvailabilityPatch(console.FilterPatch{CheckInDate: v}) },
			},
			{
				label:  "check-out date",
				value:  func(t console.Tree) string { return t.AvailabilityUI.Filters.CheckOutDate },
				commit: func(app *App, v string) { app.applyAvailabilityPatch(console.FilterPatch{CheckOutDate: v}) },
			},
			{
				label:  "room type",
				value:  func(t console.Tree) string { return string(t.AvailabilityUI.Filters.RoomType) },
				commit: func(app *App, v string) { app.applyAvailabilityPatch(console.FilterPatch{RoomType: hotel.RoomType(v)}) },
			},
			{
				label:  "min price",
				value:  func(t console.Tree) string { return t.AvailabilityUI.Filters.MinPrice },
				commit: func(app *App, v string) { app.applyAvailabilityPatch(console.FilterPatch{MinPrice: v}) },
			},
			{
				label:  "max price",
				value:  func(t console.Tree) string { return t.AvailabilityUI.Filters.MaxPrice },
				commit: func(app *App, v string) { app.applyAvailabilityPatch(console.FilterPatch{MaxPrice: v}) },
			},
		}
	case console.WorkflowModification:
		if tree.ModificationUI.EditMode {
			return []field{
				{
					label: "new check-in date",
					value: func(t console.Tree) string { return t.ModificationUI.Edited.CheckInDate },
					commit: func(app *App, v string) {
						app.store.MergeModificationEdit(console.PaneManual, console.ReservationEdit{CheckInDate: v})
						app.statusMsg = "Edit buffer updated"
					},
				},
				{
					label: "new check-out date",
					value: func(t console.Tree) string { return t.ModificationUI.Edited.CheckOutDate },
					commit: func(app *App, v string) {
						app.store.MergeModificationEdit(console.PaneManual, console.ReservationEdit{CheckOutDate: v})
						app.statusMsg = "Edit buffer updated"
					},
				},
				{
					label: "special requests",
					value: func(t console.Tree) string { return t.ModificationUI.Edited.SpecialRequests },
					commit: func(app *App, v string) {
						app.store.MergeModificationEdit(console.PaneManual, console.ReservationEdit{SpecialRequests: v})
						app.statusMsg = "Edit buffer updated"
					},
				},
			}
		}
		return []field{
			{
				label: "reservation search",
				value: func(t console.Tree) string { return t.ModificationUI.SearchQuery },
				commit: func(app *App, v string) {
					results := app.store.Directory().SearchReservations(v)
					app.store.SetModificationSearch(console.PaneManual, v, results)
					app.resultIndex = 0
					app.statusMsg = fmt.Sprintf("%d reservation(s) match %q", len(results), v)
				},
			},
		}
	case console.WorkflowSpecialRequest:
		return []field{
			{
				label: "room number",
				value: func(t console.Tree) string { return t.SpecialRequestUI.RoomNumber },
				commit: func(app *App, v string) {
					app.store.UpdateSpecialRequest(console.PaneManual, console.RequestPatch{RoomNumber: v})
					app.statusMsg = "Request form updated"
				},
			},
			{
				label: "request type",
				value: func(t console.Tree) string { return t.SpecialRequestUI.RequestType },
				commit: func(app *App, v string) {
					app.store.UpdateSpecialRequest(console.PaneManual, console.RequestPatch{RequestType: v})
					app.statusMsg = "Request form updated"
				},
			},
			{
				label: "details",
				value: func(t console.Tree) string { return t.SpecialRequestUI.Details },
				commit: func(app *App, v string) {
					app.store.UpdateSpecialRequest(console.PaneManual, console.RequestPatch{Details: v})
					app.statusMsg = "Request form updated"
				},
			},
		}
	}
	return nil
}

// applyAvailabilityPatch merges one filter edit, re-runs the room query, and
// applies the manual-only price refinements before storing the result list.
func (a *App) applyAvailabilityPatch(patch console.FilterPatch) {
	a.store.SetAvailabilityFilters(console.PaneManual, patch)
	filters := a.manualTree().AvailabilityUI.Filters
	rooms := a.store.Directory().FindAvailableRooms(filters.CheckInDate, filters.CheckOutDate, filters.RoomType)
	rooms = filterRoomsByPrice(rooms, filters.MinPrice, filters.MaxPrice)
	a.store.SetFilteredRooms(console.PaneManual, rooms)
	a.statusMsg = fmt.Sprintf("%d room(s) available", len(rooms))
}

func filterRoomsByPrice(rooms []hotel.Room, minPrice, maxPrice string) []hotel.Room {
	min, hasMin := parsePrice(minPrice)
	max, hasMax := parsePrice(maxPrice)
	if !hasMin && !hasMax {
		return rooms
	}
	var out []hotel.Room
	for _, room := range rooms {
		if hasMin && room.PricePerNight < min {
			continue
		}
		if hasMax && room.PricePerNight > max {
			continue
		}
		out = append(out, room)
	}
	return out
}

func parsePrice(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	var price float64
	if _, err := fmt.Sscanf(value, "%f", &price); err != nil {
		return 0, false
	}
	return price, true
}

func (a *App) resultCount() int {
	tree := a.manualTree()
	switch tree.Workflow {
	case console.WorkflowCheckIn:
		return len(tree.CheckInUI.FilteredReservations)
	case console.WorkflowModification:
		return len(tree.ModificationUI.FilteredReservations)
	}
	return 0
}

// selectResult promotes the highlighted search result to the selection.
func (a *App) selectResult() {
	tree := a.manualTree()
	switch tree.Workflow {
	case console.WorkflowCheckIn:
		results := tree.CheckInUI.FilteredReservations
		if a.resultIndex < len(results) {
			res := results[a.resultIndex]
			a.store.SelectCheckInReservation(console.PaneManual, &res)
			a.statusMsg = fmt.Sprintf("Selected %s", res.ID)
		}
	case console.WorkflowModification:
		results := tree.ModificationUI.FilteredReservations
		if a.resultIndex < len(results) {
			res := results[a.resultIndex]
			a.store.SelectModificationReservation(console.PaneManual, &res)
			a.statusMsg = fmt.Sprintf("Selected %s", res.ID)
		}
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}
