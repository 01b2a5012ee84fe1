package voice

import (
	"fmt"
	"sync"
	"time"

	"github.com/harborview/frontdesk/internal/console"
	"github.com/harborview/frontdesk/internal/hotel"
)

const defaultNoticeCapacity = 64

// functionWorkflows maps the four recognized function-call names to workflow
// kinds. Anything else is answered with an "unknown function" result.
var functionWorkflows = map[string]console.Workflow{
	"update_checkin_form":    console.WorkflowCheckIn,
	"search_availability":    console.WorkflowAvailability,
	"modify_reservation":     console.WorkflowModification,
	"create_special_request": console.WorkflowSpecialRequest,
}

var successMessages = map[console.Workflow]string{
	console.WorkflowCheckIn:        "Check-in form updated",
	console.WorkflowAvailability:   "Availability search updated",
	console.WorkflowModification:   "Reservation modification updated",
	console.WorkflowSpecialRequest: "Special request created",
}

// dateFields lists the argument keys holding spoken date expressions per
// workflow; the router resolves them to YYYY-MM-DD before dispatch.
var dateFields = map[console.Workflow][]string{
	console.WorkflowAvailability: {"check_in_date", "check_out_date"},
	console.WorkflowModification: {"new_check_in_date", "new_check_out_date"},
}

// Notice tells the UI that an inbound event changed something worth
// repainting.
type Notice struct {
	Type   EventType
	Result DispatchResult
}

// Router translates transport events into console operations and connection
// state. It owns no derivation logic; the store re-derives UI state itself.
type Router struct {
	store  *console.Store
	logger Logger
	clock  func() time.Time

	mu      sync.RWMutex
	conn    ConnectionState
	notices chan Notice
}

// RouterOption customizes router construction.
type RouterOption func(*Router)

// RouterWithLogger injects a logger for dispatch diagnostics.
func RouterWithLogger(logger Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// RouterWithClock lets tests control relative-date resolution.
func RouterWithClock(clock func() time.Time) RouterOption {
	return func(r *Router) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// RouterWithNoticeCapacity overrides the notice channel buffer size.
func RouterWithNoticeCapacity(capacity int) RouterOption {
	return func(r *Router) {
		if capacity > 0 {
			r.notices = make(chan Notice, capacity)
		}
	}
}

// NewRouter builds a router bound to the given store.
func NewRouter(store *console.Store, opts ...RouterOption) *Router {
	r := &Router{
		store:   store,
		clock:   func() time.Time { return time.Now().UTC() },
		notices: make(chan Notice, defaultNoticeCapacity),
		conn:    ConnectionState{Connecting: true},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Notices exposes the repaint channel the UI listens on.
func (r *Router) Notices() <-chan Notice {
	return r.notices
}

// Connection returns a copy of the current transport link state.
func (r *Router) Connection() ConnectionState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conn
}

// HandleEvent satisfies EventProcessor: it routes one transport event and
// answers with a structured result. It never panics and never raises.
func (r *Router) HandleEvent(event Event) DispatchResult {
	var result DispatchResult
	switch event.Type {
	case EventFunctionCall:
		result = r.Dispatch(event.FunctionName, event.Args)
	case EventUserTranscript, EventAssistantTranscript:
		// Both sources overwrite the one displayed line; neither appends.
		r.setConnection(func(c *ConnectionState) {
			if event.Text == "" {
				return
			}
			c.Transcript = event.Text
		})
		result = DispatchResult{Success: true, Message: "Transcript updated"}
	case EventConnected:
		r.setConnection(func(c *ConnectionState) {
			c.Connected = true
			c.Connecting = false
			c.ErrMessage = ""
		})
		result = DispatchResult{Success: true, Message: "Connected"}
	case EventDisconnected:
		r.setConnection(func(c *ConnectionState) {
			c.Connected = false
			c.Connecting = false
		})
		result = DispatchResult{Success: true, Message: "Disconnected"}
	case EventError:
		message := event.Message
		if message == "" {
			message = "Connection error"
		}
		r.setConnection(func(c *ConnectionState) {
			c.ErrMessage = message
			c.Connecting = false
		})
		result = DispatchResult{Success: true, Message: "Error recorded"}
	default:
		result = DispatchResult{Success: false, Message: fmt.Sprintf("Unknown event type: %s", event.Type)}
	}
	r.notify(Notice{Type: event.Type, Result: result})
	return result
}

// Dispatch maps a function-call name to the corresponding workflow update.
// Unknown names produce a failure result and leave both trees unchanged.
func (r *Router) Dispatch(functionName string, args map[string]any) DispatchResult {
	workflow, ok := functionWorkflows[functionName]
	if !ok {
		r.logf("voice: unknown function call %q", functionName)
		return DispatchResult{Success: false, Message: fmt.Sprintf("Unknown function: %s", functionName)}
	}
	args = r.resolveDates(workflow, args)
	if err := r.store.ApplyAIUpdate(workflow, args); err != nil {
		r.logf("voice: apply %s update: %v", workflow, err)
		return DispatchResult{Success: false, Message: err.Error()}
	}
	return DispatchResult{Success: true, Message: successMessages[workflow]}
}

// resolveDates rewrites spoken date expressions ("tomorrow", "next friday")
// to YYYY-MM-DD on a copy of the args. Unresolvable values pass through
// unchanged.
func (r *Router) resolveDates(workflow console.Workflow, args map[string]any) map[string]any {
	keys := dateFields[workflow]
	if len(keys) == 0 || len(args) == 0 {
		return args
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	today := r.clock()
	for _, key := range keys {
		raw, ok := out[key].(string)
		if !ok || raw == "" {
			continue
		}
		if resolved := hotel.ResolveDate(raw, today); resolved != "" {
			out[key] = resolved
		}
	}
	return out
}

func (r *Router) setConnection(fn func(*ConnectionState)) {
	r.mu.Lock()
	fn(&r.conn)
	r.mu.Unlock()
}

// notify hands a notice to the UI without ever blocking the transport; on
// overflow the oldest pending notice is dropped.
func (r *Router) notify(notice Notice) {
	select {
	case r.notices <- notice:
	default:
		select {
		case <-r.notices:
		default:
		}
		select {
		case r.notices <- notice:
		default:
		}
	}
}

func (r *Router) logf(format string, args ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
