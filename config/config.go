package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Discord   DiscordConfigs
	Giveaway  GiveawayConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type DiscordConfigs struct {
	// APIEndpoint is overridable for tests, defaults to the public API.
	APIEndpoint          string
	BotToken             string
	InteractionPublicKey string
}

type GiveawayConfigs struct {
	// PollInterval bounds how late a due giveaway can be finalized.
	PollInterval time.Duration

	// EntryRetention is how long entries of a finished giveaway are kept
	// for reroll before the cleanup job removes them.
	EntryRetention time.Duration

	// ManagerKeywords enables the lenient role-name fallback of the
	// permission check. An empty list disables it.
	ManagerKeywords []string
}
