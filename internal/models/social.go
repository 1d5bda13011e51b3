package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "PENDING"
	FriendRequestAccepted FriendRequestStatus = "ACCEPTED"
	FriendRequestDeclined FriendRequestStatus = "DECLINED"
)

// UserBlock records that blocker no longer wants contact from blocked.
// Blocking is unidirectional; either direction prevents messaging.
type UserBlock struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	BlockerID string `gorm:"uniqueIndex:idx_blocker_blocked;type:text;not null" json:"blockerId"`
	Blocker   User   `gorm:"foreignKey:BlockerID" json:"-"`

	BlockedID string `gorm:"uniqueIndex:idx_blocker_blocked;type:text;not null" json:"blockedId"`
	Blocked   User   `gorm:"foreignKey:BlockedID" json:"blocked"`
}

func (b *UserBlock) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

// IsBlockedEitherWay reports whether a block exists in either direction
// between the two users.
func IsBlockedEitherWay(db *gorm.DB, a, b string) bool {
	var count int64
	db.Model(&UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count)
	return count > 0
}

type FriendRequest struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SenderID   string `gorm:"uniqueIndex:idx_sender_receiver;type:text;not null" json:"senderId"`
	Sender     User   `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID string `gorm:"uniqueIndex:idx_sender_receiver;type:text;not null" json:"receiverId"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"receiver"`

	Status FriendRequestStatus `gorm:"type:varchar(10);default:'PENDING'" json:"status"`
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// Friendship is a confirmed mutual link, created when a request is accepted.
// One row per pair; UserID < FriendID is kept normalized by the handler.
type Friendship struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID   string `gorm:"uniqueIndex:idx_user_friend;type:text;not null" json:"userId"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	FriendID string `gorm:"uniqueIndex:idx_user_friend;type:text;not null" json:"friendId"`
	Friend   User   `gorm:"foreignKey:FriendID" json:"friend"`
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
