package store

import (
	"sort"

	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
)

// NotificationFeed is the per-user notification collection streamed over the
// notify channel. The unread count is always recomputed from the items, never
// maintained incrementally.
type NotificationFeed struct {
	store *Store[models.Notification]
}

func NewNotificationFeed() *NotificationFeed {
	return &NotificationFeed{
		store: New(func(n models.Notification) string { return n.ID }),
	}
}

func (f *NotificationFeed) Add(n models.Notification) {
	f.store.Append(n)
}

func (f *NotificationFeed) MarkRead(id string) bool {
	return f.store.Update(id, func(n models.Notification) models.Notification {
		n.IsRead = true
		return n
	})
}

// MarkInactive removes the notification from the feed; the row itself stays
// in the database.
func (f *NotificationFeed) MarkInactive(id string) bool {
	return f.store.Remove(id)
}

// Active returns the feed sorted newest first. Timestamp-descending is the
// single canonical sort applied everywhere a feed is rendered.
func (f *NotificationFeed) Active() []models.Notification {
	items := f.store.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// Unread recounts unread notifications from scratch.
func (f *NotificationFeed) Unread() int {
	count := 0
	for _, n := range f.store.Items() {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (f *NotificationFeed) Len() int {
	return f.store.Len()
}
