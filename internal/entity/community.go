package entity

type Community struct {
	Base

	Handle string `gorm:"unique"`
	Name   string

	// DiscordGuildID is the guild this community lives in. Channel and
	// message references stored on giveaways point into it.
	DiscordGuildID string `gorm:"unique"`
}
