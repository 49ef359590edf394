package discord

// Wire structures for the small part of the Discord REST and interaction
// API this bot touches.

const (
	ComponentTypeActionRow = 1
	ComponentTypeButton    = 2

	ButtonStyleSuccess   = 3
	ButtonStyleSecondary = 2

	// InteractionTypePing must be answered with PongResponse.
	InteractionTypePing            = 1
	InteractionTypeMessageComponent = 3

	// CallbackChannelMessage replies with an ephemeral message.
	CallbackPong           = 1
	CallbackChannelMessage = 4

	MessageFlagEphemeral = 1 << 6

	// PermissionAdministrator bit of a role permission bitset.
	PermissionAdministrator = 1 << 3
)

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type Button struct {
	Type     int    `json:"type"`
	Style    int    `json:"style"`
	Label    string `json:"label"`
	CustomID string `json:"custom_id"`
	Disabled bool   `json:"disabled,omitempty"`
}

type ActionRow struct {
	Type       int      `json:"type"`
	Components []Button `json:"components"`
}

// Message is both the create and edit payload. Components is not omitted on
// empty so an edit can strip the join button from a finished post.
type Message struct {
	Content    string      `json:"content,omitempty"`
	Embeds     []Embed     `json:"embeds,omitempty"`
	Components []ActionRow `json:"components"`
}

type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Permissions string `json:"permissions"`
}

type Member struct {
	RoleIDs []string `json:"roles"`
}

type Interaction struct {
	Type    int    `json:"type"`
	GuildID string `json:"guild_id"`
	Member  struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	} `json:"member"`
	Message struct {
		ID        string `json:"id"`
		ChannelID string `json:"channel_id"`
	} `json:"message"`
	Data struct {
		CustomID      string `json:"custom_id"`
		ComponentType int    `json:"component_type"`
	} `json:"data"`
}

type InteractionResponse struct {
	Type int                      `json:"type"`
	Data *InteractionResponseData `json:"data,omitempty"`
}

type InteractionResponseData struct {
	Content string `json:"content,omitempty"`
	Flags   int    `json:"flags,omitempty"`
}
