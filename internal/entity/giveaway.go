package entity

import "time"

type Giveaway struct {
	Base

	CommunityID string    `gorm:"index"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	// ChannelID and MessageID locate the public announcement post carrying
	// the join button. MessageID is set right after the post succeeds.
	ChannelID string
	MessageID string

	Title       string
	Prize       string
	WinnerCount int
	MinMessages int
	MinLevel    int

	StartTime time.Time
	EndTime   time.Time

	// Active is the sole finalization guard: it transitions true->false
	// exactly once and never back.
	Active bool
}

type GiveawayEntry struct {
	GiveawayID string   `gorm:"primaryKey"`
	Giveaway   Giveaway `gorm:"foreignKey:GiveawayID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	Won       bool
}

// GiveawayManagerRole grants giveaway management in one community to the
// holders of a guild role. Administrators always pass, with or without it.
type GiveawayManagerRole struct {
	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	RoleID    string
	UpdatedAt time.Time
}
