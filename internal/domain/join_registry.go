package domain

import "github.com/puzpuzpuz/xsync"

// JoinRegistry maps announcement message ids to giveaway ids so that button
// interactions can be routed without a database lookup. It is rebuilt from
// storage on startup.
type JoinRegistry struct {
	byMessageID *xsync.MapOf[string, string]
}

func NewJoinRegistry() *JoinRegistry {
	return &JoinRegistry{byMessageID: xsync.NewMapOf[string]()}
}

func (r *JoinRegistry) Register(messageID, giveawayID string) {
	r.byMessageID.Store(messageID, giveawayID)
}

func (r *JoinRegistry) Lookup(messageID string) (string, bool) {
	return r.byMessageID.Load(messageID)
}

func (r *JoinRegistry) Unregister(messageID string) {
	r.byMessageID.Delete(messageID)
}
