package models

import (
	"time"

	id "workscope/pkg/domain"
)

// User is a directory entry resolved for report attribution. The engine only
// reads users to label who submitted a report.
type User struct {
	ID          id.UserID      `json:"id"`
	WorkspaceID id.WorkspaceID `json:"workspace_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	CreatedAt   time.Time      `json:"created_at"`
}
