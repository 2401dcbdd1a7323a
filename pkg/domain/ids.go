// Package domain holds shared domain primitives: typed identifiers and
// enumerations used across the aggregation engine.
//
// IDs are distinct named UUID types so the compiler rejects cross-type
// assignment (a WorkspaceID can never be passed where a UserID is expected).
// Parse functions enforce validity at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "workscope/pkg/domain-errors"
)

// Typed identifiers. Keep these as uuid.UUID wrappers, not strings, so the
// zero value is detectable and formatting is canonical.
type (
	UserID      uuid.UUID
	WorkspaceID uuid.UUID
	EventID     uuid.UUID
	ReportID    uuid.UUID
	TemplateID  uuid.UUID
)

func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}

func ParseUserID(raw string) (UserID, error) {
	u, err := parseUUID(raw, "user")
	return UserID(u), err
}

func ParseWorkspaceID(raw string) (WorkspaceID, error) {
	u, err := parseUUID(raw, "workspace")
	return WorkspaceID(u), err
}

func ParseEventID(raw string) (EventID, error) {
	u, err := parseUUID(raw, "event")
	return EventID(u), err
}

func ParseReportID(raw string) (ReportID, error) {
	u, err := parseUUID(raw, "report")
	return ReportID(u), err
}

func ParseTemplateID(raw string) (TemplateID, error) {
	u, err := parseUUID(raw, "template")
	return TemplateID(u), err
}

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id WorkspaceID) String() string { return uuid.UUID(id).String() }
func (id EventID) String() string     { return uuid.UUID(id).String() }
func (id ReportID) String() string    { return uuid.UUID(id).String() }
func (id TemplateID) String() string  { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id WorkspaceID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id TemplateID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// Text marshaling delegates to uuid.UUID so the wire form is the canonical
// string. Defined array types inherit no methods, so without these every ID
// would serialize as a 16-element byte array.

func (id UserID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id WorkspaceID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id EventID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id ReportID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id TemplateID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *WorkspaceID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *EventID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ReportID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *TemplateID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
