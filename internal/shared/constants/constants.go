// Package constants defines shared constant values.
package constants

// Database table names
const (
	TableServices    = "services"
	TablePools       = "pools"
	TableGrants      = "grants"
	TableRefundTasks = "refund_tasks"
)

// Context keys set by middleware
const (
	ContextKeyUserID = "user_id"
)

// HTTP headers
const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)
