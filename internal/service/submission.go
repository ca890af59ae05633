package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/imagestore"
)

var (
	ErrInvalidWeek     = domain.ErrInvalidWeek
	ErrEmptySubmission = errors.New("a submission needs a log entry or at least one image")
	ErrImageNotFound   = errors.New("image not found")
	ErrUploadFailed    = errors.New("image upload failed, please try again")
)

type SubmissionRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	MergeWeeklySubmission(ctx context.Context, id string, sub domain.WeeklySubmission) error
	RemoveImage(ctx context.Context, id string, img domain.Image) error
}

// ImageFile is one photo as received from the form.
type ImageFile struct {
	Filename string
	Data     []byte
}

// WeekEntry is a contestant's record for one week, as rendered by the
// gallery and review views.
type WeekEntry struct {
	Week      string         `json:"week"`
	Log       string         `json:"log"`
	HasLog    bool           `json:"has_log"`
	Images    []domain.Image `json:"images"`
	JudgeNote string         `json:"judge_note,omitempty"`
}

type SubmissionService struct {
	repo   SubmissionRepository
	images imagestore.Store
}

func NewSubmissionService(repo SubmissionRepository, images imagestore.Store) *SubmissionService {
	return &SubmissionService{
		repo:   repo,
		images: images,
	}
}

// Submit validates and applies one weekly submission. Images upload
// concurrently; if any of them fails the whole submission aborts and
// nothing is written, so submittedWeeks never marks content that is not
// there. The durable write is a single field-scoped merge: the week's log
// (last write wins), a union of image descriptors, and a union of the
// week label into submittedWeeks.
func (s *SubmissionService) Submit(ctx context.Context, userID, week, logText string, files []ImageFile) (WeekEntry, error) {
	week, err := domain.ParseWeekLabel(week)
	if err != nil {
		return WeekEntry{}, err
	}
	if logText == "" && len(files) == 0 {
		return WeekEntry{}, ErrEmptySubmission
	}

	uploads, err := s.uploadAll(ctx, files)
	if err != nil {
		return WeekEntry{}, fmt.Errorf("%w -> %v", ErrUploadFailed, err)
	}

	now := time.Now().UTC()
	images := make([]domain.Image, 0, len(uploads))
	for _, up := range uploads {
		images = append(images, domain.Image{
			URL:        up.URL,
			Week:       week,
			UploadedAt: now,
			DeleteHash: up.DeleteHash,
		})
	}

	sub := domain.WeeklySubmission{
		Week:   week,
		Log:    logText,
		HasLog: logText != "",
		Images: images,
	}
	if err = s.repo.MergeWeeklySubmission(ctx, userID, sub); err != nil {
		s.discardUploads(uploads)
		return WeekEntry{}, fmt.Errorf("s.repo.MergeWeeklySubmission -> %w", err)
	}

	return WeekEntry{
		Week:   week,
		Log:    logText,
		HasLog: sub.HasLog,
		Images: images,
	}, nil
}

func (s *SubmissionService) uploadAll(ctx context.Context, files []ImageFile) ([]imagestore.Upload, error) {
	uploads := make([]imagestore.Upload, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			up, err := s.images.Upload(gctx, file.Filename, file.Data)
			if err != nil {
				return fmt.Errorf("s.images.Upload(%q) -> %w", file.Filename, err)
			}
			uploads[i] = up

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.discardUploads(uploads)
		return nil, err
	}

	return uploads, nil
}

// discardUploads cleans up blobs from an aborted submission. Best effort:
// a leftover blob nothing references is the lesser failure.
func (s *SubmissionService) discardUploads(uploads []imagestore.Upload) {
	for _, up := range uploads {
		if up.URL == "" {
			continue
		}
		if err := s.images.Delete(context.Background(), up); err != nil {
			zap.L().Warn("failed to discard uploaded image",
				zap.String("url", up.URL),
				zap.Error(err))
		}
	}
}

// Gallery returns the user's own record grouped by week, weeks in numeric
// order, skipping weeks with neither a log nor images.
func (s *SubmissionService) Gallery(ctx context.Context, userID string) ([]WeekEntry, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return WeekEntries(user, false), nil
}

// DeleteImage removes one image identified by its URL. The backing blob
// goes first, then the exact descriptor is removed from the record; if the
// second step fails the record keeps a dangling URL, which is preferred
// over a record entry whose blob is gone.
func (s *SubmissionService) DeleteImage(ctx context.Context, userID, url string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	img, ok := domain.FindImageByURL(user.UploadedImages, url)
	if !ok {
		return ErrImageNotFound
	}

	if err = s.images.Delete(ctx, imagestore.Upload{URL: img.URL, DeleteHash: img.DeleteHash}); err != nil {
		return fmt.Errorf("s.images.Delete -> %w", err)
	}

	if err = s.repo.RemoveImage(ctx, userID, img); err != nil {
		return fmt.Errorf("s.repo.RemoveImage -> %w", err)
	}

	return nil
}

// WeekEntries flattens a user record into per-week entries. With allWeeks
// set, every competition week appears whether or not anything was
// submitted, which is how the review view renders contestants.
func WeekEntries(user domain.User, allWeeks bool) []WeekEntry {
	grouped := domain.ImagesByWeek(user.UploadedImages)

	var weeks []string
	if allWeeks {
		weeks = domain.WeekLabels()
	} else {
		seen := map[string]bool{}
		for week := range user.GrowLogs {
			seen[week] = true
		}
		for week := range grouped {
			seen[week] = true
		}
		for week := range seen {
			weeks = append(weeks, week)
		}
		sort.Slice(weeks, func(i, j int) bool {
			a, _ := strconv.Atoi(weeks[i])
			b, _ := strconv.Atoi(weeks[j])
			return a < b
		})
	}

	entries := make([]WeekEntry, 0, len(weeks))
	for _, week := range weeks {
		log, hasLog := user.GrowLogs[week]
		entries = append(entries, WeekEntry{
			Week:      week,
			Log:       log,
			HasLog:    hasLog,
			Images:    grouped[week],
			JudgeNote: user.JudgeNotes[week],
		})
	}

	return entries
}
