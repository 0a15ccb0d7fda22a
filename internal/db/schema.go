package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
)

const NotificationTypeFriendRequest = "friend_request"

// UUIDModel gives a record a string UUID primary key assigned on insert.
type UUIDModel struct {
	ID string `gorm:"primaryKey;size:36"`
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	UUIDModel

	Name            string `gorm:"not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	SkillLevel      *string
	Batch           *string
	Gender          *string
	Points          int `gorm:"not null;default:0"`
	Streak          int `gorm:"not null;default:0"`
	TopicsCompleted int `gorm:"not null;default:0"`
	ProblemsSolved  int `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FriendEdge is a directed friend request. At most one non-rejected edge may
// exist per ordered (from, to) pair.
type FriendEdge struct {
	UUIDModel

	FromEmail   string     `gorm:"not null;uniqueIndex:idx_friend_edges_open,where:status <> 'rejected'"`
	ToEmail     string     `gorm:"not null;uniqueIndex:idx_friend_edges_open,where:status <> 'rejected';index"`
	Status      string     `gorm:"not null;size:16;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	RespondedAt *time.Time `gorm:"column:updated_at"`
}

type Notification struct {
	UUIDModel

	ToEmail   string    `gorm:"not null;index:idx_notifications_inbox"`
	FromEmail string    `gorm:"not null"`
	Type      string    `gorm:"not null;size:32"`
	Read      bool      `gorm:"not null;default:false;index:idx_notifications_inbox"`
	CreatedAt time.Time `gorm:"not null"`
}

type ProgressEntry struct {
	UUIDModel

	Email     string         `gorm:"not null;index"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (ProgressEntry) TableName() string {
	return "progress"
}

type HeartBeat struct {
	UUIDModel

	Email      string    `gorm:"uniqueIndex;not null"`
	LastSeenAt time.Time `gorm:"not null;index"`
}

type PasswordReset struct {
	UUIDModel

	Email     string    `gorm:"not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&User{},
		&FriendEdge{},
		&Notification{},
		&ProgressEntry{},
		&HeartBeat{},
		&PasswordReset{},
	}
}
