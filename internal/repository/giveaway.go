package repository

import (
	"context"
	"time"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *entity.Giveaway) error
	GetByID(ctx context.Context, id string) (*entity.Giveaway, error)
	GetActiveByCommunityID(ctx context.Context, communityID string) (*entity.Giveaway, error)
	GetDue(ctx context.Context, now time.Time) ([]entity.Giveaway, error)
	GetAllActive(ctx context.Context) ([]entity.Giveaway, error)
	SetMessageID(ctx context.Context, id, messageID string) error
	Deactivate(ctx context.Context, id string) error
	AddEntry(ctx context.Context, entry *entity.GiveawayEntry) (bool, error)
	GetEntries(ctx context.Context, giveawayID string) ([]entity.GiveawayEntry, error)
	CountEntries(ctx context.Context, giveawayID string) (int64, error)
	MarkWinners(ctx context.Context, giveawayID string, userIDs []string) error
	DeleteEntries(ctx context.Context, giveawayID string) error
	DeleteEntriesBefore(ctx context.Context, cutoff time.Time) error
}

type giveawayRepository struct{}

func NewGiveawayRepository() *giveawayRepository {
	return &giveawayRepository{}
}

func (r *giveawayRepository) Create(ctx context.Context, giveaway *entity.Giveaway) error {
	return xcontext.DB(ctx).Create(giveaway).Error
}

func (r *giveawayRepository) GetByID(ctx context.Context, id string) (*entity.Giveaway, error) {
	result := entity.Giveaway{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *giveawayRepository) GetActiveByCommunityID(
	ctx context.Context, communityID string,
) (*entity.Giveaway, error) {
	result := entity.Giveaway{}
	err := xcontext.DB(ctx).
		Take(&result, "community_id=? AND active=?", communityID, true).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *giveawayRepository) GetDue(ctx context.Context, now time.Time) ([]entity.Giveaway, error) {
	result := []entity.Giveaway{}
	err := xcontext.DB(ctx).
		Find(&result, "active=? AND end_time<=?", true, now).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) GetAllActive(ctx context.Context) ([]entity.Giveaway, error) {
	result := []entity.Giveaway{}
	if err := xcontext.DB(ctx).Find(&result, "active=?", true).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) SetMessageID(ctx context.Context, id, messageID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Giveaway{}).
		Where("id=?", id).
		Update("message_id", messageID).Error
}

// Deactivate flips the active flag off. It returns gorm.ErrRecordNotFound
// when the giveaway was already inactive, which lets concurrent finalizers
// agree on a single winner of the flip.
func (r *giveawayRepository) Deactivate(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Giveaway{}).
		Where("id=? AND active=?", id, true).
		Update("active", false)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// AddEntry inserts an enrollment if absent. The returned flag tells whether
// a new row was actually written.
func (r *giveawayRepository) AddEntry(ctx context.Context, entry *entity.GiveawayEntry) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *giveawayRepository) GetEntries(
	ctx context.Context, giveawayID string,
) ([]entity.GiveawayEntry, error) {
	result := []entity.GiveawayEntry{}
	err := xcontext.DB(ctx).Find(&result, "giveaway_id=?", giveawayID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *giveawayRepository) CountEntries(ctx context.Context, giveawayID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.GiveawayEntry{}).
		Where("giveaway_id=?", giveawayID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *giveawayRepository) MarkWinners(ctx context.Context, giveawayID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Model(&entity.GiveawayEntry{}).
		Where("giveaway_id=? AND user_id IN (?)", giveawayID, userIDs).
		Update("won", true).Error
}

func (r *giveawayRepository) DeleteEntries(ctx context.Context, giveawayID string) error {
	return xcontext.DB(ctx).
		Where("giveaway_id=?", giveawayID).
		Delete(&entity.GiveawayEntry{}).Error
}

// DeleteEntriesBefore removes entry snapshots of giveaways that ended before
// the cutoff. Entries of still-active giveaways are never touched.
func (r *giveawayRepository) DeleteEntriesBefore(ctx context.Context, cutoff time.Time) error {
	return xcontext.DB(ctx).
		Where("giveaway_id IN (?)",
			xcontext.DB(ctx).
				Model(&entity.Giveaway{}).
				Select("id").
				Where("active=? AND end_time<?", false, cutoff),
		).
		Delete(&entity.GiveawayEntry{}).Error
}
