// Package notify shows desktop notifications for events the user should
// hear about even when the canvas is not in front: saves and edits of the
// kanshi file made by other programs.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/monitoradlo/monitoradlo-go/internal/events"
)

const (
	appName       = "monitoradlo"
	busName       = "org.freedesktop.Notifications"
	objectPath    = "/org/freedesktop/Notifications"
	notifyMethod  = "org.freedesktop.Notifications.Notify"
	expireTimeout = int32(5000) // ms
)

// Notifier shows a notification.
type Notifier interface {
	Notify(summary, body string) error
}

// Nop discards notifications.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(string, string) error { return nil }

// DBus sends notifications to the desktop's notification daemon over the
// session bus. Each notification replaces the previous one.
type DBus struct {
	mu       sync.Mutex
	conn     *dbus.Conn
	replaces uint32
}

// NewDBus connects to the session bus.
func NewDBus() (*DBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return &DBus{conn: conn}, nil
}

// Notify implements Notifier.
func (d *DBus) Notify(summary, body string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	obj := d.conn.Object(busName, dbus.ObjectPath(objectPath))
	call := obj.Call(notifyMethod, 0,
		appName,
		d.replaces,
		"video-display", // icon
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		expireTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err == nil {
		d.replaces = id
	}
	return nil
}

// Close disconnects from the bus.
func (d *DBus) Close() error {
	return d.conn.Close()
}

// Subscriber is the part of the event bus Watch needs.
type Subscriber interface {
	Subscribe(id string) <-chan events.Event
	Unsubscribe(id string)
}

// Message returns the notification for ev, if it deserves one.
func Message(ev events.Event) (summary, body string, ok bool) {
	file := filepath.Base(ev.State.ConfigPath)
	switch ev.Kind {
	case events.KindSaved:
		return "Display layout saved",
			fmt.Sprintf("%d profiles written to %s", len(ev.State.Config.Profiles), file), true
	case events.KindLoaded:
		return "Display configuration reloaded",
			fmt.Sprintf("%s was changed by another program", file), true
	case events.KindConflict:
		return "Display configuration changed on disk",
			fmt.Sprintf("%s was changed by another program. Your unsaved edits were kept; load to discard them.", file), true
	}
	return "", "", false
}

// Watch forwards notable events from bus to n until ctx is cancelled.
func Watch(ctx context.Context, bus Subscriber, n Notifier) {
	id := "notify-" + uuid.New().String()
	ch := bus.Subscribe(id)
	defer bus.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			summary, body, ok := Message(ev)
			if !ok {
				continue
			}
			if err := n.Notify(summary, body); err != nil {
				slog.Warn("notify: sending notification failed", "err", err)
			}
		}
	}
}
