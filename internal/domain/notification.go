package domain

type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = "default"
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification повторяет контракт всплывающего уведомления UI.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}
