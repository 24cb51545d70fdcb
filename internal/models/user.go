package models

// User represents an account holder. Enrollments is a denormalized copy that
// is only refreshed when enrollments are explicitly recomputed.
type User struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	ShortName    string             `json:"short_name"`
	SortableName string             `json:"sortable_name"`
	LoginID      string             `json:"login_id"`
	PrimaryEmail string             `json:"primary_email"`
	Email        string             `json:"email"`
	AvatarURL    string             `json:"avatar_url,omitempty"`
	Bio          string             `json:"bio,omitempty"`
	Pronouns     string             `json:"pronouns,omitempty"`
	Locale       string             `json:"effective_locale"`
	Enrollments  []Enrollment       `json:"enrollments"`
	Permissions  *ContextPermission `json:"permissions,omitempty"`
}

// Basic returns the participant view of the user used by conversations.
func (u User) Basic() BasicUser {
	return BasicUser{
		ID:        u.ID,
		Name:      u.ShortName,
		Pronouns:  u.Pronouns,
		AvatarURL: u.AvatarURL,
	}
}

// HasRole reports whether the embedded enrollment list contains the role.
func (u User) HasRole(role EnrollmentType) bool {
	for _, enrollment := range u.Enrollments {
		if enrollment.Role == role {
			return true
		}
	}
	return false
}

// BasicUser is the trimmed user representation embedded in conversations.
type BasicUser struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Pronouns  string `json:"pronouns,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserSettings holds per-user preferences.
type UserSettings struct {
	ManualMarkAsRead          bool `json:"manual_mark_as_read"`
	CollapseGlobalNav         bool `json:"collapse_global_nav"`
	HideDashcardColorOverlays bool `json:"hide_dashcard_color_overlays"`
}

// ContextPermission lists the permission flags exposed on users, courses and groups.
type ContextPermission struct {
	CanUpdateName         bool `json:"can_update_name"`
	CanUpdateAvatar       bool `json:"can_update_avatar"`
	CanCreateAnnouncement bool `json:"create_announcement"`
}
