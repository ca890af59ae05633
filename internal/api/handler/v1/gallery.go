package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growoff/growoff-api/internal/api/handler/v1/request"
	"github.com/growoff/growoff-api/internal/api/handler/v1/response"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/service"
)

type GalleryHandler struct {
	svc  SubmissionService
	uSvc UserService
}

func NewGalleryHandler(svc SubmissionService, uSvc UserService) *GalleryHandler {
	return &GalleryHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetGallery godoc
// @Summary      Get the contestant's own gallery
// @Description  Returns the caller's grow logs and images grouped by week.
// @Tags         gallery
// @Produce      json
// @Success      200  {object}  response.GalleryResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery [get]
// @Security BearerAuth
func (h *GalleryHandler) HandleGetGallery(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if user.Role != domain.RoleContestant {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a contestant", user.ID)))

		return
	}

	weeks, err := h.svc.Gallery(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetGallery -> h.svc.Gallery -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.GalleryResponse{
		DisplayName: user.DisplayName,
		Weeks:       weeks,
	})
}

// HandleDeleteImage godoc
// @Summary      Delete an uploaded image
// @Description  Removes the image from the image host and then from the contestant's record. Irreversible.
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Param        request  body  request.DeleteImageRequest  true  "image URL"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/images [delete]
// @Security BearerAuth
func (h *GalleryHandler) HandleDeleteImage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if user.Role != domain.RoleContestant {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a contestant", user.ID)))

		return
	}

	var req request.DeleteImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteImage(ctx.Request.Context(), user.ID, req.URL); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("image", "url", req.URL))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteImage -> h.svc.DeleteImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
