// AngelaMos | 2026
// dto.go

package contact

// SubmitRequest carries no validate tags: the public form's error
// messages are fixed strings the service produces itself.
type SubmitRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListQuery struct {
	Status string
	Limit  int
	Offset int
}
