package store

import (
	"testing"
	"time"

	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/stretchr/testify/assert"
)

func seedFeed() *NotificationFeed {
	f := NewNotificationFeed()
	base := time.Now()
	f.Add(models.Notification{ID: "n1", Message: "oldest", CreatedAt: base.Add(-2 * time.Hour)})
	f.Add(models.Notification{ID: "n2", Message: "middle", CreatedAt: base.Add(-time.Hour)})
	f.Add(models.Notification{ID: "n3", Message: "newest", CreatedAt: base})
	return f
}

func TestActiveSortedNewestFirst(t *testing.T) {
	f := seedFeed()

	items := f.Active()
	assert.Len(t, items, 3)
	assert.Equal(t, "n3", items[0].ID)
	assert.Equal(t, "n1", items[2].ID)
}

func TestUnreadRecount(t *testing.T) {
	f := seedFeed()
	assert.Equal(t, 3, f.Unread())

	assert.True(t, f.MarkRead("n2"))
	assert.Equal(t, 2, f.Unread())

	// Marking everything read drives the count to zero.
	for _, n := range f.Active() {
		f.MarkRead(n.ID)
	}
	assert.Equal(t, 0, f.Unread())
}

func TestMarkInactiveRemoves(t *testing.T) {
	f := seedFeed()

	assert.True(t, f.MarkInactive("n1"))
	assert.False(t, f.MarkInactive("n1"))
	assert.Equal(t, 2, f.Len())
}

func TestDuplicatePushDoesNotDoubleCount(t *testing.T) {
	f := seedFeed()

	// A replayed event for an existing ID updates instead of duplicating.
	f.Add(models.Notification{ID: "n3", Message: "newest again", CreatedAt: time.Now()})
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 3, f.Unread())
}
