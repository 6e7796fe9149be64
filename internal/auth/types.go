// Package auth manages user accounts, dashboard JWT sessions, per-user API
// keys, and monthly usage quotas.
package auth

import "time"

// User is a registered account. The snapshot persists the full struct,
// including the password hash; handlers serialize Public() instead.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	APIKey       string     `json:"api_key"`
	IsAdmin      bool       `json:"is_admin"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login,omitempty"`
	Usage        UsageStats `json:"usage"`
}

// UsageStats tracks generated-API consumption for a user.
type UsageStats struct {
	TotalRequests int64     `json:"total_requests"`
	UsedThisMonth int64     `json:"used_this_month"`
	MonthlyQuota  int64     `json:"monthly_quota"`
	LastRequest   time.Time `json:"last_request,omitempty"`
}

// PublicUser is the caller-facing account shape, without secrets.
type PublicUser struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	APIKey    string     `json:"api_key"`
	IsAdmin   bool       `json:"is_admin"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin time.Time  `json:"last_login,omitempty"`
	Usage     UsageStats `json:"usage"`
}

// Public returns the user without the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		APIKey:    u.APIKey,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Usage:     u.Usage,
	}
}

// PlatformStats is the admin-facing aggregate view.
type PlatformStats struct {
	TotalUsers    int   `json:"total_users"`
	ActiveUsers   int   `json:"active_users"`
	TotalRequests int64 `json:"total_requests"`
}
