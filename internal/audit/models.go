package audit

import "time"

// Actions recorded by the engine.
const (
	ActionOverviewQuery = "overview_query"
)

// Event is emitted when a principal runs an aggregation query. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp        time.Time `json:"timestamp"`
	UserID           string    `json:"user_id"`
	Action           string    `json:"action"`
	WorkspaceID      string    `json:"workspace_id"`
	ScopeSize        int       `json:"scope_size"`
	FailedWorkspaces []string  `json:"failed_workspaces,omitempty"`
}
