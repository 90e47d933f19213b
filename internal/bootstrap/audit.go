package bootstrap

import "context"

// AuditLog is one operational event worth keeping beyond debug logs.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
