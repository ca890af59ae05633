package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/growoff/growoff-api/internal/domain"
)

// SubmitWeekRequest carries the non-file fields of the multipart
// submission form. Week bounds are re-checked by the service before any
// write; validating here keeps bad input from reaching the network at all.
type SubmitWeekRequest struct {
	Week    string `form:"week"`
	LogText string `form:"log_text"`
}

func (req *SubmitWeekRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Week, validation.Required),
		validation.Field(&req.LogText, validation.Length(0, 10000)),
	); err != nil {
		return err
	}

	if _, err := domain.ParseWeekLabel(req.Week); err != nil {
		return err
	}

	return nil
}

type DeleteImageRequest struct {
	URL string `json:"url"`
}

func (req *DeleteImageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.URL, validation.Required, is.URL),
	)
}

// SaveNoteRequest holds a judge's free-text note. An empty note is valid
// and clears the field.
type SaveNoteRequest struct {
	Note string `json:"note"`
}

func (req *SaveNoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Note, validation.Length(0, 10000)),
	)
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (req *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required,
			validation.In(domain.RoleAdmin, domain.RoleJudge, domain.RoleContestant, domain.RoleTech)),
	)
}
