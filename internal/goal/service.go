package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/volition-os/volition-api/internal/auth"
	"github.com/volition-os/volition-api/internal/config"
)

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidID      = errors.New("invalid id format")
	ErrEmptyTitle     = errors.New("goal title must not be empty")
	ErrStatusConflict = errors.New("goal status conflict")
)

func statusErr(expected, actual GoalStatus) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrStatusConflict, expected, actual)
}

type GoalService interface {
	// Create inserts a fresh goal in QUARANTINE, the trial-period status.
	// Called by the stress-test orchestration on a PROCEED decision.
	Create(ctx context.Context, title string) (*Goal, error)
	FindAllByUser(ctx context.Context) ([]*Goal, error)
	FindByID(ctx context.Context, id string) (*Goal, error)
	BeginScoping(ctx context.Context, id string) (*Goal, error)
	SubmitScope(ctx context.Context, id string, dto SubmitScopeDTO) (*Goal, error)
	// Archive is the "give up" path: any non-terminal goal moves to FAILED.
	Archive(ctx context.Context, id string) (*Goal, error)
	DeleteByID(ctx context.Context, id string) error
}

type goalService struct {
	repo GoalRepository
}

func NewService(repo GoalRepository) GoalService {
	return &goalService{repo: repo}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

func (s *goalService) Create(ctx context.Context, title string) (*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create goal")
	if err != nil {
		return nil, err
	}

	if title == "" {
		return nil, ErrEmptyTitle
	}

	g := &Goal{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Status: StatusQuarantine,
	}
	if err := s.repo.Create(g); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created in quarantine")
	return g, nil
}

func (s *goalService) FindAllByUser(ctx context.Context) ([]*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list goals")
	if err != nil {
		return nil, err
	}
	return s.repo.FindAllByUserID(userID)
}

func (s *goalService) FindByID(ctx context.Context, id string) (*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "get goal")
	if err != nil {
		return nil, err
	}
	goalID, err := parseUUID(log, id, "goal")
	if err != nil {
		return nil, err
	}

	g, err := s.repo.FindOwned(goalID, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGoalNotFound
	}
	return g, nil
}

func (s *goalService) BeginScoping(ctx context.Context, id string) (*Goal, error) {
	log := config.WithContext(ctx)

	g, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusPendingScope {
		return nil, statusErr(StatusPendingScope, g.Status)
	}

	g.Status = StatusScoping
	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to begin scoping")
		return nil, err
	}
	return g, nil
}

func (s *goalService) SubmitScope(ctx context.Context, id string, dto SubmitScopeDTO) (*Goal, error) {
	log := config.WithContext(ctx)

	g, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusPendingScope && g.Status != StatusScoping {
		return nil, statusErr(StatusScoping, g.Status)
	}

	scope := &Scope{
		HoursPerWeek:     dto.HoursPerWeek,
		TechStack:        dto.TechStack,
		DefinitionOfDone: dto.DefinitionOfDone,
		BackgroundLevel:  dto.BackgroundLevel,
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	complexity := &Complexity{
		EstimatedTotalHours: dto.EstimatedTotalHours,
		ProjectedEndDate:    dto.ProjectedEndDate,
	}
	if err := complexity.Normalize(); err != nil {
		return nil, err
	}

	g.Scope = scope
	g.Complexity = complexity
	g.Status = StatusPlanning
	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to submit scope")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"goal_id": g.ID,
		"size":    complexity.Size,
	}).Info("Goal scoped, moved to planning")
	return g, nil
}

func (s *goalService) Archive(ctx context.Context, id string) (*Goal, error) {
	log := config.WithContext(ctx)

	g, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status.IsTerminal() {
		return nil, statusErr("non-terminal", g.Status)
	}

	g.Status = StatusFailed
	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to archive goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal archived")
	return g, nil
}

func (s *goalService) DeleteByID(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	g, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(g.ID); err != nil {
		log.WithError(err).Error("Failed to delete goal")
		return err
	}

	log.WithField("goal_id", g.ID).Info("Goal deleted with full subtree")
	return nil
}
