package repository

import (
	"context"
	"errors"
	"math"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/model"
	"github.com/maxovaroy/merlin-V2/pkg/crypto"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"github.com/maxovaroy/merlin-V2/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const xpLeaderboardKey = "leaderboard:xp"

type MessageTrackResult struct {
	User       entity.User
	LeveledUp  bool
	AuraGained int
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	AddMessage(ctx context.Context, userID string) (*MessageTrackResult, error)
	GetLeaderboard(ctx context.Context, offset, limit int) ([]model.LeaderboardEntry, error)
}

type userRepository struct {
	redisClient xredis.Client
}

func NewUserRepository(redisClient xredis.Client) *userRepository {
	return &userRepository{redisClient: redisClient}
}

func cacheKeyOfUser(id string) string {
	return "user:" + id
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := xcontext.DB(ctx).Create(user).Error; err != nil {
		return err
	}

	if err := r.redisClient.Del(ctx, cacheKeyOfUser(user.ID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate user cache: %v", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var cached entity.User
	err := r.redisClient.GetObj(ctx, cacheKeyOfUser(id), &cached)
	if err == nil {
		return &cached, nil
	}

	if !errors.Is(err, redis.Nil) {
		xcontext.Logger(ctx).Warnf("Cannot get user from cache: %v", err)
	}

	result := entity.User{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	if err := r.redisClient.SetObj(ctx, cacheKeyOfUser(id), result, xredis.DefaultExpiration); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache user: %v", err)
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	result := []entity.User{}
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// AddMessage records one chat message. XP grows by a flat ten points, the
// level follows floor(sqrt(xp/10))+1, and a level-up rolls bonus aura from a
// bracket that widens with the new level.
func (r *userRepository) AddMessage(ctx context.Context, userID string) (*MessageTrackResult, error) {
	user := entity.User{}
	if err := xcontext.DB(ctx).Take(&user, "id=?", userID).Error; err != nil {
		return nil, err
	}

	oldLevel := user.Level
	user.XP += 10
	user.Messages++
	user.Level = int(math.Sqrt(float64(user.XP/10))) + 1

	aura := 0
	if user.Level > oldLevel {
		aura = rollAura(user.Level)
		user.Aura += aura
	}

	err := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", userID).
		Updates(map[string]any{
			"xp":       user.XP,
			"messages": user.Messages,
			"level":    user.Level,
			"aura":     user.Aura,
		}).Error
	if err != nil {
		return nil, err
	}

	if err := r.redisClient.Del(ctx, cacheKeyOfUser(userID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate user cache: %v", err)
	}

	if err := r.redisClient.ZIncrBy(ctx, xpLeaderboardKey, 10, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update xp leaderboard: %v", err)
	}

	return &MessageTrackResult{
		User:       user,
		LeveledUp:  user.Level > oldLevel,
		AuraGained: aura,
	}, nil
}

func rollAura(level int) int {
	switch {
	case level <= 10:
		return 1 + crypto.RandIntn(100)
	case level <= 20:
		return 101 + crypto.RandIntn(200)
	case level <= 30:
		return 301 + crypto.RandIntn(200)
	default:
		return 501 + crypto.RandIntn(500)
	}
}

func (r *userRepository) GetLeaderboard(
	ctx context.Context, offset, limit int,
) ([]model.LeaderboardEntry, error) {
	members, err := r.redisClient.ZRevRangeWithScores(ctx, xpLeaderboardKey, offset, limit)
	if err != nil {
		return nil, err
	}

	entries := []model.LeaderboardEntry{}
	for _, member := range members {
		id, ok := member.Member.(string)
		if !ok {
			continue
		}

		entries = append(entries, model.LeaderboardEntry{
			UserID: id,
			XP:     int64(member.Score),
		})
	}

	return entries, nil
}
