package uifake

import (
	"sync"

	"github.com/jrsteele09/go-invoice-client/ui"
)

var (
	_ ui.Navigator = (*FakeNavigator)(nil)
	_ ui.Notifier  = (*FakeNotifier)(nil)
)

// FakeNavigator records every navigation
type FakeNavigator struct {
	lock  sync.Mutex
	views []ui.View
}

func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{}
}

func (n *FakeNavigator) Navigate(view ui.View) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.views = append(n.views, view)
}

func (n *FakeNavigator) Views() []ui.View {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]ui.View(nil), n.views...)
}

// Last returns the most recent view, or "" when nothing navigated
func (n *FakeNavigator) Last() ui.View {
	n.lock.Lock()
	defer n.lock.Unlock()
	if len(n.views) == 0 {
		return ""
	}
	return n.views[len(n.views)-1]
}

// FakeNotifier records every notification
type FakeNotifier struct {
	lock          sync.Mutex
	notifications []ui.Notification
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) Notify(notification ui.Notification) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.notifications = append(n.notifications, notification)
}

func (n *FakeNotifier) Notifications() []ui.Notification {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]ui.Notification(nil), n.notifications...)
}
