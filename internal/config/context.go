package config

import "context"

type ctxKey int

const managerCtxKey ctxKey = iota

// ContextWithManager attaches mgr to ctx for retrieval by FromContext.
func ContextWithManager(ctx context.Context, mgr *Manager) context.Context {
	return context.WithValue(ctx, managerCtxKey, mgr)
}

// ManagerFromContext retrieves the Manager attached by
// ContextWithManager, or nil if none was attached.
func ManagerFromContext(ctx context.Context) *Manager {
	mgr, _ := ctx.Value(managerCtxKey).(*Manager)
	return mgr
}

// FromContext retrieves the current Config from the Manager attached
// to ctx, or nil if no Manager or Config is present.
func FromContext(ctx context.Context) *Config {
	mgr := ManagerFromContext(ctx)
	if mgr == nil {
		return nil
	}
	return mgr.Get()
}
