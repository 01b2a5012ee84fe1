package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harborview/frontdesk/internal/console"
	"github.com/harborview/frontdesk/internal/hotel"
)

// View renders the full console: header, the two workflow panes side by
// side, the transcript strip, the log tail, and the status footer.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 120
	}
	paneWidth := (width - 6) / 2

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render(fmt.Sprintf("⌂ %s — FRONT DESK", strings.ToUpper(a.config.Project.HotelName)))

	manual := a.store.Snapshot(console.PaneManual)
	ai := a.store.Snapshot(console.PaneAI)

	manualBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5B8DEF")).
		Padding(0, 1).
		Width(max(30, paneWidth)).
		Render(a.renderPane(manual, "MANUAL", true, paneWidth-4))
	aiBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(30, paneWidth)).
		Render(a.renderPane(ai, a.aiPaneTitle(), false, paneWidth-4))
	body := lipgloss.JoinHorizontal(lipgloss.Top, manualBox, aiBox)

	sections := []string{header, body}
	if strip := a.renderTranscript(); strip != "" {
		sections = append(sections, strip)
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter())
	return strings.Join(sections, "\n")
}

func (a *App) aiPaneTitle() string {
	title := "AI ASSISTANT"
	if a.router == nil {
		return title
	}
	conn := a.router.Connection()
	switch {
	case conn.Connected:
		return title + " · connected"
	case conn.Connecting:
		return title + " · connecting"
	default:
		return title + " · offline"
	}
}

func (a *App) renderPane(tree console.Tree, title string, isManual bool, width int) string {
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(title)

	tabs := a.renderTabs(tree.Workflow)

	var content string
	switch tree.Workflow {
	case console.WorkflowCheckIn:
		content = a.renderCheckIn(tree, isManual)
	case console.WorkflowAvailability:
		content = a.renderAvailability(tree, isManual)
	case console.WorkflowModification:
		content = a.renderModification(tree, isManual)
	case console.WorkflowSpecialRequest:
		content = a.renderSpecialRequest(tree, isManual)
	}

	meta := ""
	if !isManual && a.store.AIReady() {
		meta = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Render("● update ready · ctrl+p to pull")
	}

	sections := []string{head, tabs, "", content}
	if meta != "" {
		sections = append(sections, "", meta)
	}
	return lipgloss.NewStyle().Width(max(28, width)).Render(strings.Join(sections, "\n"))
}

func (a *App) renderTabs(active console.Workflow) string {
	var tabs []string
	for i, wf := range workflowOrder {
		label := fmt.Sprintf("%d·%s", i+1, workflowTitles[wf])
		if wf == active {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD166")).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

// renderField shows one labeled value; in the manual pane the focused field
// gets a marker and, while editing, the live input view.
func (a *App) renderField(label, value string, isManual bool, index int) string {
	marker := "  "
	if isManual && !a.editing && index == a.fieldIndex {
		marker = "▸ "
	}
	if isManual && a.editing && index == a.fieldIndex {
		return fmt.Sprintf("▸ %s: %s", label, a.input.View())
	}
	if value == "" {
		value = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Render("—")
	}
	return fmt.Sprintf("%s%s: %s", marker, label, value)
}

func (a *App) renderCheckIn(tree console.Tree, isManual bool) string {
	lines := []string{
		a.renderField("Guest search", tree.CheckInUI.SearchQuery, isManual, 0),
	}
	if len(tree.CheckInUI.FilteredReservations) > 0 {
		lines = append(lines, "", "Matches:")
		lines = append(lines, a.renderReservationList(tree.CheckInUI.FilteredReservations, isManual)...)
	}
	if sel := tree.CheckInUI.Selected; sel != nil {
		lines = append(lines, "",
			lipgloss.NewStyle().Bold(true).Render("Check-in form"),
			fmt.Sprintf("  Reservation: %s", sel.ID),
			fmt.Sprintf("  Guest:       %s", tree.CheckIn.GuestName),
			fmt.Sprintf("  Room:        %s", tree.CheckIn.RoomNumber),
			fmt.Sprintf("  Dates:       %s → %s", sel.CheckInDate, sel.CheckOutDate),
		)
	} else if tree.CheckIn.GuestName != "" || tree.CheckIn.ReservationNumber != "" {
		lines = append(lines, "",
			lipgloss.NewStyle().Bold(true).Render("Check-in form"),
			fmt.Sprintf("  Reservation: %s", tree.CheckIn.ReservationNumber),
			fmt.Sprintf("  Guest:       %s", tree.CheckIn.GuestName),
			fmt.Sprintf("  Room:        %s", tree.CheckIn.RoomNumber),
		)
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderAvailability(tree console.Tree, isManual bool) string {
	f := tree.AvailabilityUI.Filters
	lines := []string{
		a.renderField("Check-in", f.CheckInDate, isManual, 0),
		a.renderField("Check-out", f.CheckOutDate, isManual, 1),
		a.renderField("Room type", string(f.RoomType), isManual, 2),
		a.renderField("Min price", f.MinPrice, isManual, 3),
		a.renderField("Max price", f.MaxPrice, isManual, 4),
	}
	if len(tree.AvailabilityUI.FilteredRooms) > 0 {
		lines = append(lines, "", fmt.Sprintf("Available rooms (%d):", len(tree.AvailabilityUI.FilteredRooms)))
		for _, room := range tree.AvailabilityUI.FilteredRooms {
			lines = append(lines, fmt.Sprintf("  %s  %-8s  $%.0f/night", room.RoomNumber, room.RoomType, room.PricePerNight))
		}
	} else if f.CheckInDate != "" || f.CheckOutDate != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("No rooms match the filters"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderModification(tree console.Tree, isManual bool) string {
	ui := tree.ModificationUI
	var lines []string
	if ui.EditMode {
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD166")).Render("EDITING"),
			a.renderField("New check-in", ui.Edited.CheckInDate, isManual, 0),
			a.renderField("New check-out", ui.Edited.CheckOutDate, isManual, 1),
			a.renderField("Special requests", ui.Edited.SpecialRequests, isManual, 2),
		)
	} else {
		lines = append(lines, a.renderField("Reservation search", ui.SearchQuery, isManual, 0))
		if len(ui.FilteredReservations) > 0 {
			lines = append(lines, "", "Matches:")
			lines = append(lines, a.renderReservationList(ui.FilteredReservations, isManual)...)
		}
	}
	if sel := ui.Selected; sel != nil {
		guestName := ""
		if sel.Guest != nil {
			guestName = sel.Guest.Name
		}
		lines = append(lines, "",
			lipgloss.NewStyle().Bold(true).Render("Reservation"),
			fmt.Sprintf("  %s · %s", sel.ID, guestName),
			fmt.Sprintf("  Current: %s → %s", sel.CheckInDate, sel.CheckOutDate),
		)
		if tree.Modification.Modifications.DatesChanged {
			lines = append(lines, fmt.Sprintf("  Requested: %s → %s",
				tree.Modification.NewCheckInDate, tree.Modification.NewCheckOutDate))
		}
		if isManual && !ui.EditMode {
			lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("  e → edit dates"))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderSpecialRequest(tree console.Tree, isManual bool) string {
	ui := tree.SpecialRequestUI
	lines := []string{
		a.renderField("Room number", ui.RoomNumber, isManual, 0),
		a.renderField("Request type", ui.RequestType, isManual, 1),
		a.renderField("Details", ui.Details, isManual, 2),
	}
	if tree.SpecialRequest.RequestCreated {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Render(
				fmt.Sprintf("✓ Filed as %s", tree.SpecialRequest.RequestID)))
	} else if isManual {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("s → submit request"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderReservationList(reservations []hotel.Reservation, isManual bool) []string {
	var lines []string
	for i, res := range reservations {
		guestName := ""
		if res.Guest != nil {
			guestName = res.Guest.Name
		}
		roomNumber := ""
		if res.Room != nil {
			roomNumber = res.Room.RoomNumber
		}
		line := fmt.Sprintf("%s  %-18s room %s  %s", res.ID, guestName, roomNumber, res.CheckInDate)
		if isManual && i == a.resultIndex {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD166")).Render("› " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return lines
}

func (a *App) renderTranscript() string {
	if a.router == nil {
		return ""
	}
	conn := a.router.Connection()
	if conn.Transcript == "" && conn.ErrMessage == "" {
		return ""
	}
	var lines []string
	if conn.Transcript != "" {
		lines = append(lines, conn.Transcript)
	}
	if conn.ErrMessage != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(fmt.Sprintf("⚠ %s", conn.ErrMessage)))
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("TRANSCRIPT")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(head + "\n" + strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderFooter() string {
	hints := "1-4 workflow · tab field · enter edit · space select · e edit · s submit · ctrl+p pull · ctrl+r reset · q quit"
	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	hintLine := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Render(hints)
	return status + "\n" + hintLine
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
