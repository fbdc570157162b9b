package domain

type Notification struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Kind       string            `json:"kind"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}
