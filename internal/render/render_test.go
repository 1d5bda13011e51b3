package render

import (
	"strings"
	"testing"
	"time"

	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/stretchr/testify/assert"
)

func testMessage(createdAt time.Time) models.ChatMessage {
	return models.ChatMessage{
		ID:        "msg1",
		CreatedAt: createdAt,
		SenderID:  "u1",
		Content:   "hello there",
	}
}

func TestShowEditWithinWindow(t *testing.T) {
	now := time.Now()
	v := MessageView{
		Message: testMessage(now.Add(-60 * time.Second)),
		IsOwn:   true,
		Now:     now,
	}
	assert.True(t, v.ShowEdit())
}

func TestShowEditAfterWindow(t *testing.T) {
	now := time.Now()
	v := MessageView{
		Message: testMessage(now.Add(-121 * time.Second)),
		IsOwn:   true,
		Now:     now,
	}
	assert.False(t, v.ShowEdit())
}

func TestShowEditNeverForOthers(t *testing.T) {
	now := time.Now()
	v := MessageView{
		Message: testMessage(now),
		IsOwn:   false,
		Now:     now,
	}
	assert.False(t, v.ShowEdit())
}

func TestMessageFragmentOwnEditable(t *testing.T) {
	now := time.Now()
	sender := models.User{ID: "u1", Username: "alice", ProfileName: "Alice"}

	out, err := Message(MessageView{
		Message: testMessage(now.Add(-30 * time.Second)),
		Sender:  sender,
		IsOwn:   true,
		Now:     now,
	})
	assert.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `data-message-id="msg1"`)
	assert.Contains(t, html, `message-wrapper sent`)
	assert.Contains(t, html, `>Alice</a>`)
	assert.Contains(t, html, `edit-message-button`)
	assert.Contains(t, html, `>Pin</button>`)
}

func TestMessageFragmentExpiredHidesEdit(t *testing.T) {
	now := time.Now()

	out, err := Message(MessageView{
		Message: testMessage(now.Add(-10 * time.Minute)),
		Sender:  models.User{ID: "u1", Username: "alice"},
		IsOwn:   true,
		Now:     now,
	})
	assert.NoError(t, err)
	assert.NotContains(t, string(out), `edit-message-button`)
}

func TestMessageFragmentPinnedAndEdited(t *testing.T) {
	now := time.Now()
	msg := testMessage(now)
	msg.Edited = true

	out, err := Message(MessageView{
		Message:  msg,
		Sender:   models.User{ID: "u2", Username: "bob"},
		IsOwn:    false,
		IsPinned: true,
		Now:      now,
	})
	assert.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `message-wrapper received`)
	assert.Contains(t, html, `>Unpin</button>`)
	assert.Contains(t, html, `>Edited</div>`)
}

func TestMessageFragmentFileBlock(t *testing.T) {
	now := time.Now()
	msg := testMessage(now)
	msg.FileURL = "https://cdn.example.com/chat/abc/notes.txt"
	msg.FileSize = 2048

	out, err := Message(MessageView{
		Message: msg,
		Sender:  models.User{ID: "u1", Username: "alice"},
		Now:     now,
	})
	assert.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `>notes.txt</a>`)
	assert.Contains(t, html, `2.00 KB`)
}

func TestMessageFragmentReadMore(t *testing.T) {
	now := time.Now()
	sender := models.User{ID: "u1", Username: "alice", ProfileName: "Alice"}

	long := testMessage(now)
	long.Content = strings.Repeat("long story ", 40)

	out, err := Message(MessageView{Message: long, Sender: sender, Now: now})
	assert.NoError(t, err)
	assert.Contains(t, string(out), `message-content collapsed`)
	assert.Contains(t, string(out), `<button class="read-more-button">Read more</button>`)

	short, err := Message(MessageView{Message: testMessage(now), Sender: sender, Now: now})
	assert.NoError(t, err)
	assert.NotContains(t, string(short), "collapsed")
	assert.NotContains(t, string(short), "read-more-button")
}

func TestNotificationFragment(t *testing.T) {
	out, err := Notification(models.Notification{
		ID:      "n1",
		Message: `Alice sent you a <a href="/friends/">friend request</a>.`,
		IsRead:  false,
	})
	assert.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `data-notification-id="n1"`)
	assert.Contains(t, html, `notification unread`)
	// Server-produced markup passes through untouched.
	assert.Contains(t, html, `<a href="/friends/">friend request</a>`)
}

func TestNotificationFragmentRead(t *testing.T) {
	out, err := Notification(models.Notification{ID: "n2", Message: "plain", IsRead: true})
	assert.NoError(t, err)
	assert.NotContains(t, string(out), "unread")
}
