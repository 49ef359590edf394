package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maxovaroy/merlin-V2/internal/client"
	"github.com/maxovaroy/merlin-V2/internal/common"
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/internal/model"
	"github.com/maxovaroy/merlin-V2/internal/repository"
	"github.com/maxovaroy/merlin-V2/pkg/dateutil"
	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
	"gorm.io/gorm"
)

type GiveawayDomain interface {
	Create(ctx context.Context, req *model.CreateGiveawayRequest) (*model.CreateGiveawayResponse, error)
	Preview(ctx context.Context, req *model.PreviewGiveawayRequest) (*model.PreviewGiveawayResponse, error)
	Join(ctx context.Context, req *model.JoinGiveawayRequest) (*model.JoinGiveawayResponse, error)
	End(ctx context.Context, req *model.EndGiveawayRequest) (*model.EndGiveawayResponse, error)
	Reroll(ctx context.Context, req *model.RerollGiveawayRequest) (*model.RerollGiveawayResponse, error)
	Get(ctx context.Context, req *model.GetGiveawayRequest) (*model.GetGiveawayResponse, error)
	SetManagerRole(ctx context.Context, req *model.SetGiveawayManagerRoleRequest) (*model.SetGiveawayManagerRoleResponse, error)

	// Finalize closes a due giveaway, draws winners, and announces the
	// outcome. Safe to call concurrently for the same giveaway.
	Finalize(ctx context.Context, giveawayID string) error
}

type giveawayDomain struct {
	giveawayRepo    repository.GiveawayRepository
	communityRepo   repository.CommunityRepository
	userRepo        repository.UserRepository
	managerVerifier *common.ManagerVerifier
	announcer       client.Announcer
	registry        *JoinRegistry
}

func NewGiveawayDomain(
	giveawayRepo repository.GiveawayRepository,
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	managerVerifier *common.ManagerVerifier,
	announcer client.Announcer,
	registry *JoinRegistry,
) *giveawayDomain {
	return &giveawayDomain{
		giveawayRepo:    giveawayRepo,
		communityRepo:   communityRepo,
		userRepo:        userRepo,
		managerVerifier: managerVerifier,
		announcer:       announcer,
		registry:        registry,
	}
}

func (d *giveawayDomain) Create(
	ctx context.Context, req *model.CreateGiveawayRequest,
) (*model.CreateGiveawayResponse, error) {
	if req.Title == "" || req.Prize == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title or prize")
	}

	if req.WinnerCount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Number of winners must be positive")
	}

	if req.MinMessages < 0 || req.MinLevel < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a negative eligibility gate")
	}

	duration, err := dateutil.ParseCompactDuration(req.Duration)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest,
			"Invalid duration %s, expected something like 1d6h30m", req.Duration)
	}

	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.managerVerifier.Verify(ctx, community, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	giveaway := &entity.Giveaway{
		Base:        entity.Base{ID: uuid.NewString()},
		CommunityID: community.ID,
		ChannelID:   req.ChannelID,
		Title:       req.Title,
		Prize:       req.Prize,
		WinnerCount: req.WinnerCount,
		MinMessages: req.MinMessages,
		MinLevel:    req.MinLevel,
		StartTime:   now,
		EndTime:     now.Add(duration),
		Active:      true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	_, err = d.giveawayRepo.GetActiveByCommunityID(ctx, community.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists,
			"There is already an active giveaway in this community")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check active giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.giveawayRepo.Create(ctx, giveaway); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create giveaway: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	messageID, err := d.announcer.PostGiveaway(ctx, giveaway)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot post giveaway announcement: %v", err)
		if deactivateErr := d.giveawayRepo.Deactivate(ctx, giveaway.ID); deactivateErr != nil {
			xcontext.Logger(ctx).Errorf("Cannot deactivate unannounced giveaway: %v", deactivateErr)
		}

		return nil, errorx.New(errorx.Unavailable, "Cannot announce the giveaway, please try again")
	}

	giveaway.MessageID = messageID
	if err := d.giveawayRepo.SetMessageID(ctx, giveaway.ID, messageID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save announcement message id: %v", err)
		return nil, errorx.Unknown
	}

	d.registry.Register(messageID, giveaway.ID)

	return &model.CreateGiveawayResponse{
		Giveaway: convertGiveaway(giveaway, community.Handle),
	}, nil
}

func (d *giveawayDomain) Preview(
	ctx context.Context, req *model.PreviewGiveawayRequest,
) (*model.PreviewGiveawayResponse, error) {
	if req.WinnerCount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Number of winners must be positive")
	}

	duration, err := dateutil.ParseCompactDuration(req.Duration)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest,
			"Invalid duration %s, expected something like 1d6h30m", req.Duration)
	}

	now := time.Now()
	giveaway := &entity.Giveaway{
		Title:       req.Title,
		Prize:       req.Prize,
		WinnerCount: req.WinnerCount,
		MinMessages: req.MinMessages,
		MinLevel:    req.MinLevel,
		StartTime:   now,
		EndTime:     now.Add(duration),
	}

	embed := client.GiveawayEmbed(giveaway)
	return &model.PreviewGiveawayResponse{
		Title:       embed.Title,
		Description: embed.Description,
		EndTime:     giveaway.EndTime,
	}, nil
}

func (d *giveawayDomain) Join(
	ctx context.Context, req *model.JoinGiveawayRequest,
) (*model.JoinGiveawayResponse, error) {
	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if !giveaway.Active {
		return nil, errorx.New(errorx.Unavailable, "This giveaway has already ended")
	}

	userID := xcontext.RequestUserID(ctx)
	if err := checkEligibility(ctx, d.userRepo, giveaway, userID); err != nil {
		return nil, err
	}

	inserted, err := d.giveawayRepo.AddEntry(ctx, &entity.GiveawayEntry{
		GiveawayID: giveaway.ID,
		UserID:     userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add giveaway entry: %v", err)
		return nil, errorx.Unknown
	}

	return &model.JoinGiveawayResponse{AlreadyJoined: !inserted}, nil
}

func (d *giveawayDomain) End(
	ctx context.Context, req *model.EndGiveawayRequest,
) (*model.EndGiveawayResponse, error) {
	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.managerVerifier.Verify(ctx, community, userID); err != nil {
		return nil, err
	}

	giveaway, err := d.giveawayRepo.GetActiveByCommunityID(ctx, community.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "No active giveaway in this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get active giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.Finalize(ctx, giveaway.ID); err != nil {
		return nil, err
	}

	return &model.EndGiveawayResponse{GiveawayID: giveaway.ID}, nil
}

func (d *giveawayDomain) Reroll(
	ctx context.Context, req *model.RerollGiveawayRequest,
) (*model.RerollGiveawayResponse, error) {
	giveaway, err := d.giveawayRepo.GetByID(ctx, req.GiveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return nil, errorx.Unknown
	}

	if giveaway.Active {
		return nil, errorx.New(errorx.Unavailable, "Cannot reroll a giveaway that is still running")
	}

	community, err := d.communityRepo.GetByID(ctx, giveaway.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.managerVerifier.Verify(ctx, community, userID); err != nil {
		return nil, err
	}

	entries, err := d.giveawayRepo.GetEntries(ctx, giveaway.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get giveaway entries: %v", err)
		return nil, errorx.Unknown
	}

	if len(entries) == 0 {
		return nil, errorx.New(errorx.NotFound, "No participant snapshot for this giveaway")
	}

	winnerIDs := pickWinners(entries, giveaway.WinnerCount)
	if err := d.giveawayRepo.MarkWinners(ctx, giveaway.ID, winnerIDs); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark rerolled winners: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.announcer.AnnounceWinners(ctx, giveaway, winnerIDs); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot announce rerolled winners: %v", err)
	}

	return &model.RerollGiveawayResponse{WinnerIDs: winnerIDs}, nil
}

func (d *giveawayDomain) Get(
	ctx context.Context, req *model.GetGiveawayRequest,
) (*model.GetGiveawayResponse, error) {
	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	giveaway, err := d.giveawayRepo.GetActiveByCommunityID(ctx, community.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "No active giveaway in this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get active giveaway: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.giveawayRepo.CountEntries(ctx, giveaway.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count giveaway entries: %v", err)
		return nil, errorx.Unknown
	}

	timeLeft := time.Until(giveaway.EndTime)
	if timeLeft < 0 {
		timeLeft = 0
	}

	return &model.GetGiveawayResponse{
		Giveaway:         convertGiveaway(giveaway, community.Handle),
		ParticipantCount: count,
		TimeLeft:         dateutil.FormatCompact(timeLeft),
	}, nil
}

func (d *giveawayDomain) SetManagerRole(
	ctx context.Context, req *model.SetGiveawayManagerRoleRequest,
) (*model.SetGiveawayManagerRoleResponse, error) {
	if req.RoleID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty role id")
	}

	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	// Only full administrators can change who the managers are.
	userID := xcontext.RequestUserID(ctx)
	isAdmin, err := d.managerVerifier.IsAdministrator(ctx, community, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check administrator permission: %v", err)
		return nil, errorx.Unknown
	}

	if !isAdmin {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	err = d.managerVerifier.SetManagerRole(ctx, &entity.GiveawayManagerRole{
		CommunityID: community.ID,
		RoleID:      req.RoleID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set giveaway manager role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetGiveawayManagerRoleResponse{}, nil
}

func (d *giveawayDomain) Finalize(ctx context.Context, giveawayID string) error {
	giveaway, err := d.giveawayRepo.GetByID(ctx, giveawayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found giveaway")
		}

		xcontext.Logger(ctx).Errorf("Cannot get giveaway: %v", err)
		return errorx.Unknown
	}

	// The flip decides which caller finalizes. Everyone else sees the
	// giveaway as already handled and backs off without an error.
	if err := d.giveawayRepo.Deactivate(ctx, giveaway.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot deactivate giveaway: %v", err)
		return errorx.Unknown
	}

	giveaway.Active = false
	d.registry.Unregister(giveaway.MessageID)

	if err := d.announcer.CloseGiveaway(ctx, giveaway); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot close giveaway announcement: %v", err)
	}

	entries, err := d.giveawayRepo.GetEntries(ctx, giveaway.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get giveaway entries: %v", err)
		return errorx.Unknown
	}

	if len(entries) == 0 {
		if err := d.announcer.AnnounceNoParticipants(ctx, giveaway); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot announce empty giveaway: %v", err)
		}

		return nil
	}

	winnerIDs := pickWinners(entries, giveaway.WinnerCount)
	if err := d.giveawayRepo.MarkWinners(ctx, giveaway.ID, winnerIDs); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark winners: %v", err)
		return errorx.Unknown
	}

	if err := d.announcer.AnnounceWinners(ctx, giveaway, winnerIDs); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot announce winners: %v", err)
	}

	return nil
}
