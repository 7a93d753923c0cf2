package usecase

import "context"

// PublicProfile is the slice of a user record that may leave the service in
// a notification payload.
type PublicProfile struct {
	ExternalID int64  `json:"external_id"`
	Name       string `json:"name"`
}

// Notifier is the outbound notification port. Implementations deliver on a
// best-effort basis; the engagement usecase never lets a notifier error
// reach the caller.
type Notifier interface {
	NotifyLike(ctx context.Context, to, from PublicProfile, message string) error
	NotifyMatch(ctx context.Context, to, from PublicProfile) error
}
