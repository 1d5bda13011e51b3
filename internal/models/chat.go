package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message editing is only allowed while the message is still fresh.
const EditWindow = 120 * time.Second

// ChatMessage is a private message between two users.
//
// "Clearing" a conversation never deletes rows: each side has its own hidden
// flag so one participant clearing their view leaves the other's history
// intact.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	SenderID    string `gorm:"index;type:text;not null" json:"sender_id"`
	RecipientID string `gorm:"index;type:text;not null" json:"recipient_id"`
	Content     string `gorm:"type:text" json:"content"`

	// Optional file attachment
	FileURL  string `gorm:"type:text" json:"file,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`

	Edited bool `gorm:"default:false" json:"edited"`

	SenderHidden    bool `gorm:"default:false" json:"-"`
	RecipientHidden bool `gorm:"default:false" json:"-"`

	// Users who pinned this message for themselves. The pinned set is always
	// served as a full snapshot, never maintained incrementally.
	PinnedBy []User `gorm:"many2many:message_pins;" json:"-"`

	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return
}

// Editable reports whether the message is still inside the edit window.
func (m *ChatMessage) Editable(now time.Time) bool {
	return now.Sub(m.CreatedAt) <= EditWindow
}

// HiddenFor reports whether the given viewer has cleared this message.
func (m *ChatMessage) HiddenFor(userID string) bool {
	if m.SenderID == userID {
		return m.SenderHidden
	}
	return m.RecipientHidden
}

// GlobalChatMessage is a message in the site-wide public chat.
type GlobalChatMessage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	SenderID string `gorm:"index;type:text;not null" json:"sender_id"`
	Content  string `gorm:"type:text;not null" json:"content"`

	Sender User `gorm:"foreignKey:SenderID" json:"-"`
}

func (m *GlobalChatMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return
}
