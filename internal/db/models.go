package db

import (
	"time"

	"gorm.io/gorm"
)

// User is an account holder. Profiles, IP history, and messages hang off it.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`

	// Badwords counts moderation rejections for this user's outgoing messages.
	Badwords int `gorm:"not null;default:0" json:"badwords"`

	Profiles []Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profiles,omitempty"`
	IPs      []IPHistory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"ips,omitempty"`
	Sent     []Message   `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Inbox    []Message   `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// IPHistory records the address an account was registered from.
// Rows are written in the same transaction as the owning User.
type IPHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IP        string    `gorm:"size:45;not null" json:"ip"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (IPHistory) TableName() string { return "ip_histories" }

// Profile is a pet profile owned by a User. Picture holds the object-storage key.
type Profile struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Picture string `gorm:"size:255;not null" json:"picture"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string { return "profiles" }

// Match is a directed swipe edge between two profiles. Removal is a soft
// delete; gorm.DeletedAt keeps soft-removed rows out of default queries.
// Deleting either side's profile cascades at the foreign-key level.
type Match struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	MatcherID uint     `gorm:"not null;index:idx_matcher_matchee,priority:1" json:"matcher_id"`
	MatcheeID uint     `gorm:"not null;index:idx_matcher_matchee,priority:2" json:"matchee_id"`
	Matcher   *Profile `gorm:"foreignKey:MatcherID;constraint:OnDelete:CASCADE" json:"matcher,omitempty"`
	Matchee   *Profile `gorm:"foreignKey:MatcheeID;constraint:OnDelete:CASCADE" json:"matchee,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Match) TableName() string { return "matches" }

// Message is a directed text message between two users, soft-deleted like Match.
type Message struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    uint   `gorm:"not null;index:idx_sender_recipient,priority:1" json:"sender_id"`
	RecipientID uint   `gorm:"not null;index:idx_sender_recipient,priority:2" json:"recipient_id"`
	Sender      *User  `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Recipient   *User  `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Message     string `gorm:"type:text;not null" json:"message"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Message) TableName() string { return "messages" }
