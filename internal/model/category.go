package model

// Category represents a spending category owned by the backend.
// The ID is server-assigned; the client never invents one.
type Category struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}
