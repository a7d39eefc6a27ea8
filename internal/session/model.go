// File: internal/session/model.go
package session

import (
	"time"

	"golang.org/x/oauth2"
)

// Session is the bearer token persisted for one browser.
type Session struct {
	BrowserID string     `gorm:"type:varchar(64);primaryKey" json:"-"`
	Token     string     `gorm:"type:text;not null" json:"-"`
	TokenType string     `gorm:"type:varchar(32)" json:"token_type,omitempty"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session has a known expiry at or before now.
// Sessions without an expiry never expire.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// OAuthToken converts the session back into a token for authorising requests.
func (s *Session) OAuthToken() *oauth2.Token {
	tok := &oauth2.Token{AccessToken: s.Token, TokenType: s.TokenType}
	if s.ExpiresAt != nil {
		tok.Expiry = *s.ExpiresAt
	}
	return tok
}
