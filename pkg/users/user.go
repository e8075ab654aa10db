package users

import "strings"

// User is the part of an account the mail listeners need.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Preferences Preferences `json:"preferences"`
}

// Preferences are the user's notification settings. A nil field means the
// user never chose, which counts as opted in.
type Preferences struct {
	EmailNotifications *bool `json:"emailNotifications,omitempty"`
}

// EmailOptedOut reports whether the user explicitly disabled email
// notifications.
func (u User) EmailOptedOut() bool {
	return u.Preferences.EmailNotifications != nil && !*u.Preferences.EmailNotifications
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}
