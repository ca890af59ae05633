package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growoff/growoff-api/internal/api/handler/v1/request"
	"github.com/growoff/growoff-api/internal/api/handler/v1/response"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/service"
)

// maxImageBytes caps one uploaded photo at 10 MiB, matching the image
// host's anonymous upload limit.
const maxImageBytes = 10 << 20

type SubmissionService interface {
	Submit(ctx context.Context, userID, week, logText string, files []service.ImageFile) (service.WeekEntry, error)
	Gallery(ctx context.Context, userID string) ([]service.WeekEntry, error)
	DeleteImage(ctx context.Context, userID, url string) error
}

type SubmissionHandler struct {
	svc  SubmissionService
	uSvc UserService
}

func NewSubmissionHandler(svc SubmissionService, uSvc UserService) *SubmissionHandler {
	return &SubmissionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmitWeek godoc
// @Summary      Submit a weekly entry
// @Description  Uploads the week's photos and merges the log entry into the contestant's record.
// @Tags         submissions
// @Accept       mpfd
// @Produce      json
// @Param        week      formData  string  true   "week number, 1-12"
// @Param        log_text  formData  string  false  "grow log text"
// @Param        images    formData  file    false  "photos (repeatable)"
// @Success      201  {object}  response.SubmissionResponse
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions [post]
// @Security BearerAuth
func (h *SubmissionHandler) HandleSubmitWeek(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if user.Role != domain.RoleContestant {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a contestant", user.ID)))

		return
	}

	var req request.SubmitWeekRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	files, err := readImageFiles(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	entry, err := h.svc.Submit(ctx.Request.Context(), user.ID, req.Week, req.LogText, files)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWeek), errors.Is(err, service.ErrEmptySubmission):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrUploadFailed):
			response.RenderErr(ctx, response.ErrBadGateway(service.ErrUploadFailed))
		default:
			err = fmt.Errorf("v1.HandleSubmitWeek -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.SubmissionResponse{
		Message: fmt.Sprintf("week %v submitted successfully", entry.Week),
		Entry:   entry,
	})
}

func readImageFiles(ctx *gin.Context) ([]service.ImageFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("ctx.MultipartForm -> %w", err)
	}

	var files []service.ImageFile
	for _, header := range form.File["images"] {
		if header.Size > maxImageBytes {
			return nil, fmt.Errorf("image %q exceeds the %d byte limit", header.Filename, maxImageBytes)
		}

		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("header.Open -> %w", err)
		}

		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll -> %w", err)
		}

		files = append(files, service.ImageFile{
			Filename: header.Filename,
			Data:     data,
		})
	}

	return files, nil
}
