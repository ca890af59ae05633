package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growoff/growoff-api/internal/api/handler/v1/request"
	"github.com/growoff/growoff-api/internal/api/handler/v1/response"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/service"
)

type ReviewService interface {
	ListContestants(ctx context.Context) ([]service.ContestantReview, error)
	SaveNote(ctx context.Context, contestantID, week, note string) error
}

type ReviewHandler struct {
	svc  ReviewService
	uSvc UserService
}

func NewReviewHandler(svc ReviewService, uSvc UserService) *ReviewHandler {
	return &ReviewHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListContestants godoc
// @Summary      List all contestants for review
// @Description  Returns every contestant with their logs, images and judge notes for weeks 1-12.
// @Tags         review
// @Produce      json
// @Success      200  {array}   service.ContestantReview
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /review/contestants [get]
// @Security BearerAuth
func (h *ReviewHandler) HandleListContestants(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !isJudgeOrAdmin(user.Role) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a judge or admin", user.ID)))

		return
	}

	contestants, err := h.svc.ListContestants(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListContestants -> h.svc.ListContestants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, contestants)
}

// HandleSaveNote godoc
// @Summary      Save a judge note
// @Description  Writes the note for one contestant-week without touching any other field.
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        userID   path  string                   true  "contestant ID"
// @Param        week     path  string                   true  "week number, 1-12"
// @Param        request  body  request.SaveNoteRequest  true  "note text"
// @Success      200  {object}  response.NoteSavedResponse
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /review/contestants/{userID}/notes/{week} [put]
// @Security BearerAuth
func (h *ReviewHandler) HandleSaveNote(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !isJudgeOrAdmin(user.Role) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a judge or admin", user.ID)))

		return
	}

	var req request.SaveNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	contestantID := ctx.Param("userID")

	// Canonicalize here so the response echoes the stored label, not the
	// raw path param ("07" is stored and returned as "7").
	week, err := domain.ParseWeekLabel(ctx.Param("week"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err = h.svc.SaveNote(ctx.Request.Context(), contestantID, week, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWeek):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contestant", "userID", contestantID))
		default:
			err = fmt.Errorf("v1.HandleSaveNote -> h.svc.SaveNote -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NoteSavedResponse{
		Message:      "note saved",
		ContestantID: contestantID,
		Week:         week,
	})
}
