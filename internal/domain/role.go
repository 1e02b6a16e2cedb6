package domain

import "time"

// RoleDefinition describes a directory role that can be activated.
type RoleDefinition struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
}

// EligibilitySchedule is a standing entitlement of a principal to
// activate a role.
type EligibilitySchedule struct {
	ID               string          `json:"id,omitempty"`
	PrincipalID      string          `json:"principalId,omitempty"`
	RoleDefinitionID string          `json:"roleDefinitionId,omitempty"`
	DirectoryScopeID string          `json:"directoryScopeId,omitempty"`
	RoleDefinition   *RoleDefinition `json:"roleDefinition,omitempty"`
}

// Assignment types reported on an active schedule.
const (
	AssignmentTypeAssigned  = "Assigned"
	AssignmentTypeActivated = "Activated"
)

// Expiration pattern types used by the role-management API.
const (
	ExpirationNone          = "noExpiration"
	ExpirationAfterDateTime = "afterDateTime"
	ExpirationAfterDuration = "afterDuration"
)

// ScheduleExpiration describes when a schedule ends.
type ScheduleExpiration struct {
	Type        string     `json:"type,omitempty"`
	EndDateTime *time.Time `json:"endDateTime,omitempty"`
	Duration    string     `json:"duration,omitempty"`
}

// AssignmentSchedule is a currently in-effect role grant for a principal.
type AssignmentSchedule struct {
	ID               string           `json:"id,omitempty"`
	PrincipalID      string           `json:"principalId,omitempty"`
	RoleDefinitionID string           `json:"roleDefinitionId,omitempty"`
	DirectoryScopeID string           `json:"directoryScopeId,omitempty"`
	AssignmentType   string           `json:"assignmentType,omitempty"`
	ScheduleInfo     *RequestSchedule `json:"scheduleInfo,omitempty"`
	RoleDefinition   *RoleDefinition  `json:"roleDefinition,omitempty"`
}

// Expiration returns the schedule's expiration descriptor, zero when the
// service omitted scheduleInfo.
func (s *AssignmentSchedule) Expiration() ScheduleExpiration {
	if s.ScheduleInfo == nil {
		return ScheduleExpiration{}
	}
	return s.ScheduleInfo.Expiration
}

// RequestSchedule is the scheduleInfo block of an activation request or
// active schedule.
type RequestSchedule struct {
	StartDateTime *time.Time         `json:"startDateTime,omitempty"`
	Expiration    ScheduleExpiration `json:"expiration"`
}

// ActionSelfActivate is the schedule-request action for self-service
// activation of an eligible role.
const ActionSelfActivate = "selfActivate"

// DefaultActivationDuration is how long a self-activated role stays active.
const DefaultActivationDuration = 4 * time.Hour

// ActivationRequest holds parameters for a self-activation schedule request.
type ActivationRequest struct {
	PrincipalID      string
	RoleDefinitionID string
	DirectoryScopeID string
	Justification    string
	StartAt          time.Time
	Duration         time.Duration
}

// Validate checks that the request is well-formed.
func (r *ActivationRequest) Validate() error {
	if r.PrincipalID == "" {
		return ErrValidation("principal id is required")
	}
	if r.RoleDefinitionID == "" {
		return ErrValidation("role definition id is required")
	}
	if r.Justification == "" {
		return ErrValidation("justification is required")
	}
	if r.Duration <= 0 {
		return ErrValidation("activation duration must be positive")
	}
	return nil
}
