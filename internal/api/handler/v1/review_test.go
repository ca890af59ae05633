package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growoff/growoff-api/internal/api/handler/v1/response"
	"github.com/growoff/growoff-api/internal/service"
)

type fakeReviewService struct {
	saveErr error

	contestants []service.ContestantReview

	gotContestantID string
	gotWeek         string
	gotNote         string
}

func (f *fakeReviewService) ListContestants(_ context.Context) ([]service.ContestantReview, error) {
	return f.contestants, nil
}

func (f *fakeReviewService) SaveNote(_ context.Context, contestantID, week, note string) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	f.gotContestantID = contestantID
	f.gotWeek = week
	f.gotNote = note

	return nil
}

func newReviewRouter(svc ReviewService, callerID string) *gin.Engine {
	handler := NewReviewHandler(svc, usersFixture())

	router := gin.New()
	router.GET("/review/contestants", asUser(callerID), handler.HandleListContestants)
	router.PUT("/review/contestants/:userID/notes/:week", asUser(callerID), handler.HandleSaveNote)

	return router
}

func TestReviewHandler_HandleListContestants(t *testing.T) {
	svc := &fakeReviewService{contestants: []service.ContestantReview{
		{ID: "c1", Email: "grower@example.com", DisplayName: "grower"},
	}}

	t.Run("judge", func(t *testing.T) {
		rec := serve(newReviewRouter(svc, "j1"), httptest.NewRequest(http.MethodGet, "/review/contestants", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got []service.ContestantReview
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "c1", got[0].ID)
	})

	t.Run("admin", func(t *testing.T) {
		rec := serve(newReviewRouter(svc, "a1"), httptest.NewRequest(http.MethodGet, "/review/contestants", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("contestant", func(t *testing.T) {
		rec := serve(newReviewRouter(svc, "c1"), httptest.NewRequest(http.MethodGet, "/review/contestants", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestReviewHandler_HandleSaveNote(t *testing.T) {
	t.Run("saves the note", func(t *testing.T) {
		svc := &fakeReviewService{}
		router := newReviewRouter(svc, "j1")

		body := `{"note":"strong root development"}`
		req := httptest.NewRequest(http.MethodPut, "/review/contestants/c1/notes/3", strings.NewReader(body))

		rec := serve(router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "c1", svc.gotContestantID)
		assert.Equal(t, "3", svc.gotWeek)
		assert.Equal(t, "strong root development", svc.gotNote)
	})

	t.Run("zero-padded week is echoed in canonical form", func(t *testing.T) {
		svc := &fakeReviewService{}
		router := newReviewRouter(svc, "j1")

		req := httptest.NewRequest(http.MethodPut, "/review/contestants/c1/notes/07", strings.NewReader(`{"note":"x"}`))

		rec := serve(router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7", svc.gotWeek)

		var got response.NoteSavedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "7", got.Week)
	})

	t.Run("empty note clears the field", func(t *testing.T) {
		svc := &fakeReviewService{}
		router := newReviewRouter(svc, "j1")

		req := httptest.NewRequest(http.MethodPut, "/review/contestants/c1/notes/3", strings.NewReader(`{"note":""}`))

		rec := serve(router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, svc.gotNote)
	})

	t.Run("invalid week", func(t *testing.T) {
		svc := &fakeReviewService{saveErr: service.ErrInvalidWeek}
		router := newReviewRouter(svc, "j1")

		req := httptest.NewRequest(http.MethodPut, "/review/contestants/c1/notes/0", strings.NewReader(`{"note":"x"}`))

		rec := serve(router, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown contestant", func(t *testing.T) {
		svc := &fakeReviewService{saveErr: service.ErrUserNotFound}
		router := newReviewRouter(svc, "j1")

		req := httptest.NewRequest(http.MethodPut, "/review/contestants/ghost/notes/3", strings.NewReader(`{"note":"x"}`))

		rec := serve(router, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("contestant cannot write notes", func(t *testing.T) {
		router := newReviewRouter(&fakeReviewService{}, "c1")

		req := httptest.NewRequest(http.MethodPut, "/review/contestants/c1/notes/3", strings.NewReader(`{"note":"x"}`))

		rec := serve(router, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
