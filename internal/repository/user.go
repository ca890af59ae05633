package repository

import (
	"context"
	"fmt"

	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrRoleNotFound    = dao.ErrRoleNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id string) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	FindByRole(ctx context.Context, role string) ([]dao.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	FindLegacyRole(ctx context.Context, id string) (string, error)
	MergeWeeklySubmission(ctx context.Context, id, week, log string, hasLog bool, images []dao.Image) error
	SetJudgeNote(ctx context.Context, id, week, note string) error
	RemoveImage(ctx context.Context, id string, img dao.Image) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role string) ([]domain.User, error) {
	found, err := r.dao.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) error {
	if err := r.dao.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return nil
}

func (r *UserRepository) FindLegacyRole(ctx context.Context, id string) (string, error) {
	role, err := r.dao.FindLegacyRole(ctx, id)
	if err != nil {
		return "", fmt.Errorf("r.dao.FindLegacyRole -> %w", err)
	}

	return role, nil
}

func (r *UserRepository) MergeWeeklySubmission(ctx context.Context, id string, sub domain.WeeklySubmission) error {
	images := make([]dao.Image, 0, len(sub.Images))
	for _, img := range sub.Images {
		images = append(images, dao.Image(img))
	}

	if err := r.dao.MergeWeeklySubmission(ctx, id, sub.Week, sub.Log, sub.HasLog, images); err != nil {
		return fmt.Errorf("r.dao.MergeWeeklySubmission -> %w", err)
	}

	return nil
}

func (r *UserRepository) SetJudgeNote(ctx context.Context, id, week, note string) error {
	if err := r.dao.SetJudgeNote(ctx, id, week, note); err != nil {
		return fmt.Errorf("r.dao.SetJudgeNote -> %w", err)
	}

	return nil
}

func (r *UserRepository) RemoveImage(ctx context.Context, id string, img domain.Image) error {
	if err := r.dao.RemoveImage(ctx, id, dao.Image(img)); err != nil {
		return fmt.Errorf("r.dao.RemoveImage -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	images := make([]domain.Image, 0, len(u.UploadedImages))
	for _, img := range u.UploadedImages {
		images = append(images, domain.Image(img))
	}

	return domain.User{
		ID:             u.ID,
		Email:          u.Email,
		Password:       u.Password,
		DisplayName:    u.DisplayName,
		Role:           u.Role,
		GrowLogs:       u.GrowLogs,
		UploadedImages: images,
		JudgeNotes:     u.JudgeNotes,
		SubmittedWeeks: u.SubmittedWeeks,
		JoinedAt:       u.JoinedAt,
		Active:         u.Active,
	}
}

func (r *UserRepository) daoToDomainAll(users []dao.User) []domain.User {
	converted := make([]domain.User, 0, len(users))
	for _, u := range users {
		converted = append(converted, r.daoToDomain(u))
	}

	return converted
}

func (r *UserRepository) domainToDAO(u domain.User) dao.User {
	images := make([]dao.Image, 0, len(u.UploadedImages))
	for _, img := range u.UploadedImages {
		images = append(images, dao.Image(img))
	}

	return dao.User{
		ID:             u.ID,
		Email:          u.Email,
		Password:       u.Password,
		DisplayName:    u.DisplayName,
		Role:           u.Role,
		GrowLogs:       u.GrowLogs,
		UploadedImages: images,
		JudgeNotes:     u.JudgeNotes,
		SubmittedWeeks: u.SubmittedWeeks,
		JoinedAt:       u.JoinedAt,
		Active:         u.Active,
	}
}
