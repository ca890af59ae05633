package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/repository"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByRole(ctx context.Context, role string) ([]domain.User, error)
	SetJudgeNote(ctx context.Context, id, week, note string) error
}

// ContestantReview is one contestant as the judge view renders them:
// identity plus all twelve weeks, submitted or not.
type ContestantReview struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Weeks       []WeekEntry `json:"weeks"`
}

type ReviewService struct {
	repo ReviewRepository
}

func NewReviewService(repo ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
	}
}

func (s *ReviewService) ListContestants(ctx context.Context) ([]ContestantReview, error) {
	contestants, err := s.repo.FindByRole(ctx, domain.RoleContestant)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRole -> %w", err)
	}

	reviews := make([]ContestantReview, 0, len(contestants))
	for _, c := range contestants {
		reviews = append(reviews, ContestantReview{
			ID:          c.ID,
			Email:       c.Email,
			DisplayName: c.DisplayName,
			Weeks:       WeekEntries(c, true),
		})
	}

	return reviews, nil
}

// SaveNote attaches a judge note to one contestant-week. Only that single
// field path is written, so judges working on other weeks or contestants
// are never clobbered. An empty note clears the field.
func (s *ReviewService) SaveNote(ctx context.Context, contestantID, week, note string) error {
	week, err := domain.ParseWeekLabel(week)
	if err != nil {
		return err
	}

	if _, err = s.repo.FindByID(ctx, contestantID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.SetJudgeNote(ctx, contestantID, week, note); err != nil {
		return fmt.Errorf("s.repo.SetJudgeNote -> %w", err)
	}

	return nil
}
