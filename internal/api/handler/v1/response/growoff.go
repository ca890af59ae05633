package response

import "github.com/growoff/growoff-api/internal/service"

type GalleryResponse struct {
	DisplayName string              `json:"display_name"`
	Weeks       []service.WeekEntry `json:"weeks"`
}

type SubmissionResponse struct {
	Message string            `json:"message"`
	Entry   service.WeekEntry `json:"entry"`
}

type NoteSavedResponse struct {
	Message      string `json:"message"`
	ContestantID string `json:"contestant_id"`
	Week         string `json:"week"`
}

type RoleUpdatedResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

type RolesRepairedResponse struct {
	Message  string `json:"message"`
	Repaired int    `json:"repaired"`
}
