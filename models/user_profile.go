package models

import (
	"regexp"
	"strings"
)

// UserProfile defines the structure for user profiles. Profiles are created
// on first sign-in and merge-updated afterwards, never deleted.
type UserProfile struct {
	UserID           string           `dynamodbav:"userId" json:"userId"`
	Username         string           `dynamodbav:"username,omitempty" json:"username,omitempty"`
	GoogleName       string           `dynamodbav:"googleName,omitempty" json:"googleName,omitempty"`
	Email            string           `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Photo            string           `dynamodbav:"photo,omitempty" json:"photo,omitempty"`
	EmailPreferences EmailPreferences `dynamodbav:"emailPreferences" json:"emailPreferences"`
	WesMode          bool             `dynamodbav:"wesMode" json:"wesMode"`
	CreatedAt        string           `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	LastLogin        string           `dynamodbav:"lastLogin,omitempty" json:"lastLogin,omitempty"`
}

// EmailPreferences are three independent opt-ins, all off by default.
type EmailPreferences struct {
	RSVPReminders           bool `dynamodbav:"rsvpReminders" json:"rsvpReminders"`
	AttendanceReminders     bool `dynamodbav:"attendanceReminders" json:"attendanceReminders"`
	GameChangeNotifications bool `dynamodbav:"gameChangeNotifications" json:"gameChangeNotifications"`
}

// DisplayName prefers the chosen username over the provider-supplied name.
func (p *UserProfile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.GoogleName
}

// AuthUser is the identity handed to us by the identity provider on each
// authenticated request.
type AuthUser struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9 \-_]+$`)

// ValidateUsername enforces the 2-20 character window and the allowed
// character set (letters, digits, space, hyphen, underscore).
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 2 {
		return NewValidationError("username", "must be at least 2 characters")
	}
	if len(username) > 20 {
		return NewValidationError("username", "must be 20 characters or less")
	}
	if !usernamePattern.MatchString(username) {
		return NewValidationError("username", "may only contain letters, numbers, spaces, hyphens and underscores")
	}
	return nil
}
