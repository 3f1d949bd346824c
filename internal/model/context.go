package model

import "context"

type ContextManager interface {
	SetUsernameToContext(ctx context.Context, username string) context.Context
	GetUsernameFromContext(ctx context.Context) (string, bool)
}
