package testutil

import (
	"context"
	"sync"

	"github.com/maxovaroy/merlin-V2/internal/client"
	"github.com/maxovaroy/merlin-V2/internal/entity"
)

// MockAnnouncer records announcements. Behaviors can be overridden per test
// through the Func fields.
type MockAnnouncer struct {
	mutex sync.Mutex

	PostGiveawayFunc   func(ctx context.Context, giveaway *entity.Giveaway) (string, error)
	ResolveMessageFunc func(ctx context.Context, channelID, messageID string) error

	PostedGiveawayIDs    []string
	ClosedGiveawayIDs    []string
	AnnouncedWinnerIDs   map[string][]string
	NoParticipantsCalled []string
}

func NewMockAnnouncer() *MockAnnouncer {
	return &MockAnnouncer{AnnouncedWinnerIDs: map[string][]string{}}
}

func (m *MockAnnouncer) PostGiveaway(ctx context.Context, giveaway *entity.Giveaway) (string, error) {
	if m.PostGiveawayFunc != nil {
		return m.PostGiveawayFunc(ctx, giveaway)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.PostedGiveawayIDs = append(m.PostedGiveawayIDs, giveaway.ID)
	return "message-" + giveaway.ID, nil
}

func (m *MockAnnouncer) CloseGiveaway(ctx context.Context, giveaway *entity.Giveaway) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.ClosedGiveawayIDs = append(m.ClosedGiveawayIDs, giveaway.ID)
	return nil
}

func (m *MockAnnouncer) AnnounceWinners(
	ctx context.Context, giveaway *entity.Giveaway, winnerIDs []string,
) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.AnnouncedWinnerIDs[giveaway.ID] = append(m.AnnouncedWinnerIDs[giveaway.ID], winnerIDs...)
	return nil
}

func (m *MockAnnouncer) AnnounceNoParticipants(ctx context.Context, giveaway *entity.Giveaway) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.NoParticipantsCalled = append(m.NoParticipantsCalled, giveaway.ID)
	return nil
}

func (m *MockAnnouncer) ResolveMessage(ctx context.Context, channelID, messageID string) error {
	if m.ResolveMessageFunc != nil {
		return m.ResolveMessageFunc(ctx, channelID, messageID)
	}

	return nil
}

// MockRoleCaller treats user1 as administrator and assigns everyone else the
// roles configured in RolesByUserID.
type MockRoleCaller struct {
	AdminUserIDs  []string
	RolesByUserID map[string][]client.Role
}

func NewMockRoleCaller() *MockRoleCaller {
	return &MockRoleCaller{
		AdminUserIDs:  []string{"user1"},
		RolesByUserID: map[string][]client.Role{},
	}
}

func (m *MockRoleCaller) IsAdministrator(ctx context.Context, guildID, userID string) (bool, error) {
	for _, id := range m.AdminUserIDs {
		if id == userID {
			return true, nil
		}
	}

	return false, nil
}

func (m *MockRoleCaller) MemberRoles(ctx context.Context, guildID, userID string) ([]client.Role, error) {
	return m.RolesByUserID[userID], nil
}
