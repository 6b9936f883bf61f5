package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// View is a navigation target
type View string

const (
	ViewLogin    View = "/login"
	ViewRegister View = "/register"
	ViewProducts View = "/"
)

// Navigator moves the user between views
type Navigator interface {
	Navigate(view View)
}

// Notification is a titled, user-facing message (a toast in the browser build)
type Notification struct {
	Title       string
	Description string
}

func (n Notification) String() string {
	if n.Description == "" {
		return n.Title
	}
	return fmt.Sprintf("%s: %s", n.Title, n.Description)
}

// Notifier surfaces notifications to the user
type Notifier interface {
	Notify(n Notification)
}

// Router is a Navigator that remembers the current view
type Router struct {
	mu      sync.RWMutex
	current View
}

var _ Navigator = (*Router)(nil)

func NewRouter(start View) *Router {
	return &Router{current: start}
}

func (r *Router) Navigate(view View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != view {
		log.Debug().Str("from", string(r.current)).Str("to", string(view)).Msg("navigate")
	}
	r.current = view
}

func (r *Router) Current() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// WriterNotifier prints notifications, one per line
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Notifier = (*WriterNotifier)(nil)

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	log.Debug().Str("title", notification.Title).Msg("notification")
	fmt.Fprintln(n.w, notification.String())
}
