package model

import "time"

type Giveaway struct {
	ID              string    `json:"id"`
	CommunityHandle string    `json:"community_handle"`
	ChannelID       string    `json:"channel_id"`
	MessageID       string    `json:"message_id"`
	Title           string    `json:"title"`
	Prize           string    `json:"prize"`
	WinnerCount     int       `json:"winner_count"`
	MinMessages     int       `json:"min_messages"`
	MinLevel        int       `json:"min_level"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Active          bool      `json:"active"`
}

type CreateGiveawayRequest struct {
	CommunityHandle string `json:"community_handle"`
	ChannelID       string `json:"channel_id"`
	Title           string `json:"title"`
	Prize           string `json:"prize"`
	Duration        string `json:"duration"`
	WinnerCount     int    `json:"winner_count"`
	MinMessages     int    `json:"min_messages"`
	MinLevel        int    `json:"min_level"`
}

type CreateGiveawayResponse struct {
	Giveaway Giveaway `json:"giveaway"`
}

type PreviewGiveawayRequest struct {
	Title       string `json:"title" form:"title"`
	Prize       string `json:"prize" form:"prize"`
	Duration    string `json:"duration" form:"duration"`
	WinnerCount int    `json:"winner_count" form:"winner_count"`
	MinMessages int    `json:"min_messages" form:"min_messages"`
	MinLevel    int    `json:"min_level" form:"min_level"`
}

type PreviewGiveawayResponse struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EndTime     time.Time `json:"end_time"`
}

type JoinGiveawayRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

type JoinGiveawayResponse struct {
	AlreadyJoined bool `json:"already_joined"`
}

type EndGiveawayRequest struct {
	CommunityHandle string `json:"community_handle"`
}

type EndGiveawayResponse struct {
	GiveawayID string `json:"giveaway_id"`
}

type RerollGiveawayRequest struct {
	GiveawayID string `json:"giveaway_id"`
}

type RerollGiveawayResponse struct {
	WinnerIDs []string `json:"winner_ids"`
}

type GetGiveawayRequest struct {
	CommunityHandle string `json:"community_handle" form:"community_handle"`
}

type GetGiveawayResponse struct {
	Giveaway         Giveaway `json:"giveaway"`
	ParticipantCount int64    `json:"participant_count"`
	TimeLeft         string   `json:"time_left"`
}

type SetGiveawayManagerRoleRequest struct {
	CommunityHandle string `json:"community_handle"`
	RoleID          string `json:"role_id"`
}

type SetGiveawayManagerRoleResponse struct{}
