package models

// ListParams carries the recognized collection query parameters after
// validation applied defaults and range checks
type ListParams struct {
	Search  []string
	Sorting string
	Page    int
	Size    int
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
