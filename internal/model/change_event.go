package model

// ChangeAction describes what happened to a category.
type ChangeAction string

const (
	// ChangeCreate signals a category was created.
	ChangeCreate ChangeAction = "create"
	// ChangeUpdate signals a category was renamed.
	ChangeUpdate ChangeAction = "update"
	// ChangeDelete signals a category was deleted.
	ChangeDelete ChangeAction = "delete"
)

// ChangeEvent notifies other view models that server-side category data
// they cache locally may be stale. Events are fire-and-forget: there is
// no queue and no replay for late subscribers.
type ChangeEvent struct {
	Action     ChangeAction
	CategoryID int64
}
