package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleJudge      = "judge"
	RoleContestant = "contestant"
	RoleTech       = "tech"
)

// Roles lists every assignable role, in the order the admin UI offers them.
var Roles = []string{RoleAdmin, RoleJudge, RoleContestant, RoleTech}

func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}

	return false
}

// User is the per-contestant record. GrowLogs and JudgeNotes are keyed by
// week label; UploadedImages is a flat list of descriptors so a single
// image can be removed by exact match rather than positional index.
type User struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	Password       string            `json:"-"`
	DisplayName    string            `json:"display_name"`
	Role           string            `json:"role"`
	GrowLogs       map[string]string `json:"grow_logs"`
	UploadedImages []Image           `json:"uploaded_images"`
	JudgeNotes     map[string]string `json:"judge_notes"`
	SubmittedWeeks []string          `json:"submitted_weeks"`
	JoinedAt       time.Time         `json:"joined_at"`
	Active         bool              `json:"active"`
}

// Image describes one uploaded photo. DeleteHash is the image host's
// deletion token and is never exposed to other roles.
type Image struct {
	URL        string    `json:"url"`
	Week       string    `json:"week"`
	UploadedAt time.Time `json:"uploaded_at"`
	DeleteHash string    `json:"-"`
}

// ImagesByWeek groups descriptors under their week label, preserving the
// stored order within each week.
func ImagesByWeek(images []Image) map[string][]Image {
	grouped := make(map[string][]Image)
	for _, img := range images {
		grouped[img.Week] = append(grouped[img.Week], img)
	}

	return grouped
}

// FindImageByURL locates the stored descriptor for the given URL.
func FindImageByURL(images []Image, url string) (Image, bool) {
	for _, img := range images {
		if img.URL == url {
			return img, true
		}
	}

	return Image{}, false
}

// WeeklySubmission is one editor submission after its images have been
// uploaded: the new log text (when HasLog) and the new descriptors to
// union into the record.
type WeeklySubmission struct {
	Week   string
	Log    string
	HasLog bool
	Images []Image
}
