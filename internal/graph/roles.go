package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"entractl/internal/domain"
)

// EligibilitySchedules lists the principal's eligible role schedules,
// with the role definition expanded inline.
func (c *Client) EligibilitySchedules(ctx context.Context, principalID string) ([]domain.EligibilitySchedule, error) {
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("principalId eq '%s'", escapeFilterValue(principalID)))
	q.Set("$expand", "roleDefinition")
	var schedules []domain.EligibilitySchedule
	err := c.listAll(ctx, "/roleManagement/directory/roleEligibilitySchedules", q, func(raw json.RawMessage) error {
		var page []domain.EligibilitySchedule
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode eligibility schedules: %w", err)
		}
		schedules = append(schedules, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// RoleDefinition fetches a role definition by id.
func (c *Client) RoleDefinition(ctx context.Context, id string) (*domain.RoleDefinition, error) {
	var def domain.RoleDefinition
	path := fmt.Sprintf("/roleManagement/directory/roleDefinitions/%s", url.PathEscape(id))
	if err := c.getJSON(ctx, path, nil, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// AssignmentSchedules lists the principal's active role assignment
// schedules, with the role definition expanded inline.
func (c *Client) AssignmentSchedules(ctx context.Context, principalID string) ([]domain.AssignmentSchedule, error) {
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("principalId eq '%s'", escapeFilterValue(principalID)))
	q.Set("$expand", "roleDefinition")
	var schedules []domain.AssignmentSchedule
	err := c.listAll(ctx, "/roleManagement/directory/roleAssignmentSchedules", q, func(raw json.RawMessage) error {
		var page []domain.AssignmentSchedule
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode assignment schedules: %w", err)
		}
		schedules = append(schedules, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// scheduleRequestBody is the wire format of a role assignment schedule request.
type scheduleRequestBody struct {
	Action           string              `json:"action"`
	PrincipalID      string              `json:"principalId"`
	RoleDefinitionID string              `json:"roleDefinitionId"`
	DirectoryScopeID string              `json:"directoryScopeId"`
	Justification    string              `json:"justification"`
	ScheduleInfo     scheduleRequestInfo `json:"scheduleInfo"`
}

type scheduleRequestInfo struct {
	StartDateTime time.Time                 `json:"startDateTime"`
	Expiration    scheduleRequestExpiration `json:"expiration"`
}

type scheduleRequestExpiration struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
}

// ActivateRole submits a self-activation schedule request with an
// after-duration expiration.
func (c *Client) ActivateRole(ctx context.Context, req domain.ActivationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	scope := req.DirectoryScopeID
	if scope == "" {
		scope = "/"
	}
	body := scheduleRequestBody{
		Action:           domain.ActionSelfActivate,
		PrincipalID:      req.PrincipalID,
		RoleDefinitionID: req.RoleDefinitionID,
		DirectoryScopeID: scope,
		Justification:    req.Justification,
		ScheduleInfo: scheduleRequestInfo{
			StartDateTime: req.StartAt.UTC(),
			Expiration: scheduleRequestExpiration{
				Type:     "AfterDuration",
				Duration: isoDuration(req.Duration),
			},
		},
	}
	return c.postJSON(ctx, "/roleManagement/directory/roleAssignmentScheduleRequests", body, nil)
}

// isoDuration renders a duration as an ISO 8601 period, hours and
// minutes only (the granularity the role-management API accepts).
func isoDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case m == 0:
		return fmt.Sprintf("PT%dH", h)
	case h == 0:
		return fmt.Sprintf("PT%dM", m)
	default:
		return fmt.Sprintf("PT%dH%dM", h, m)
	}
}
