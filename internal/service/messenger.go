package service

import "context"

// Messenger delivers out-of-band messages to a user's telegram chat.
type Messenger interface {
	Notify(ctx context.Context, telegram, text string) error
}
