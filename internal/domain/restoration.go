package domain

import (
	"context"
	"errors"

	"github.com/maxovaroy/merlin-V2/internal/client"
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RestorationManager rebuilds in-memory giveaway state after a restart. Every
// active giveaway is checked against its announcement message. Giveaways whose
// announcement vanished are deactivated instead of re-registered, so a stale
// record can never collect enrollments again.
type RestorationManager struct {
	giveawayRepo repository.GiveawayRepository
	announcer    client.Announcer
	registry     *JoinRegistry
}

func NewRestorationManager(
	giveawayRepo repository.GiveawayRepository,
	announcer client.Announcer,
	registry *JoinRegistry,
) *RestorationManager {
	return &RestorationManager{
		giveawayRepo: giveawayRepo,
		announcer:    announcer,
		registry:     registry,
	}
}

func (m *RestorationManager) Restore(ctx context.Context) error {
	giveaways, err := m.giveawayRepo.GetAllActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load active giveaways: %v", err)
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for i := range giveaways {
		giveaway := giveaways[i]
		group.Go(func() error {
			return m.restoreOne(groupCtx, &giveaway)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Restored %d active giveaways", len(giveaways))
	return nil
}

func (m *RestorationManager) restoreOne(ctx context.Context, giveaway *entity.Giveaway) error {
	if giveaway.MessageID == "" {
		return m.deactivateStale(ctx, giveaway)
	}

	if err := m.announcer.ResolveMessage(ctx, giveaway.ChannelID, giveaway.MessageID); err != nil {
		xcontext.Logger(ctx).Warnf(
			"Announcement of giveaway %s is unreachable: %v", giveaway.ID, err)
		return m.deactivateStale(ctx, giveaway)
	}

	m.registry.Register(giveaway.MessageID, giveaway.ID)
	return nil
}

func (m *RestorationManager) deactivateStale(ctx context.Context, giveaway *entity.Giveaway) error {
	err := m.giveawayRepo.Deactivate(ctx, giveaway.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot deactivate stale giveaway %s: %v", giveaway.ID, err)
		return err
	}

	return nil
}
