package auth

import "fmt"

// UserNotFoundError indicates no user matches the lookup.
type UserNotFoundError struct {
	ID string
}

func (e UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.ID)
}

// EmailExistsError indicates the email is already registered.
type EmailExistsError struct {
	Email string
}

func (e EmailExistsError) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// UnauthorizedError indicates a credential was missing, wrong, or expired.
type UnauthorizedError struct {
	Reason string
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

// QuotaExceededError indicates the user consumed their monthly request
// allowance.
type QuotaExceededError struct {
	MonthlyQuota int64
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly API quota exceeded (%d requests)", e.MonthlyQuota)
}
