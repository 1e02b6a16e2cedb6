package pim

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entractl/internal/domain"
	"entractl/internal/graph"
	"entractl/internal/testutil"
)

const principalID = "p-1"

func sessionDeps(roles *testutil.MockRoleManager, p *testutil.ScriptPrompter, out *bytes.Buffer) Deps {
	return Deps{
		Roles:  roles,
		Prompt: p,
		Out:    out,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) },
	}
}

func eligibleRole(id, name string) domain.EligibilitySchedule {
	return domain.EligibilitySchedule{
		PrincipalID:      principalID,
		RoleDefinitionID: id,
		DirectoryScopeID: "/",
		RoleDefinition:   &domain.RoleDefinition{ID: id, DisplayName: name},
	}
}

func TestRun_NoEligibleRoles(t *testing.T) {
	roles := &testutil.MockRoleManager{}
	p := &testutil.ScriptPrompter{}
	var out bytes.Buffer

	err := Run(context.Background(), sessionDeps(roles, p, &out), principalID)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No eligible role assignments")
	assert.Empty(t, p.Labels, "nothing to select from")
	assert.Empty(t, roles.Activations)
}

func TestRun_AlreadyActiveShortCircuits(t *testing.T) {
	roles := &testutil.MockRoleManager{
		EligibilitySchedulesFn: func(context.Context, string) ([]domain.EligibilitySchedule, error) {
			return []domain.EligibilitySchedule{eligibleRole("r-1", "Helpdesk Administrator")}, nil
		},
		AssignmentSchedulesFn: func(context.Context, string) ([]domain.AssignmentSchedule, error) {
			return []domain.AssignmentSchedule{{
				RoleDefinitionID: "r-1",
				AssignmentType:   domain.AssignmentTypeActivated,
				RoleDefinition:   &domain.RoleDefinition{DisplayName: "Helpdesk Administrator"},
			}}, nil
		},
	}
	p := &testutil.ScriptPrompter{Answers: []string{"1", "0"}}
	var out bytes.Buffer

	err := Run(context.Background(), sessionDeps(roles, p, &out), principalID)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "already active")
	assert.Empty(t, roles.Activations, "already-active selection must not mutate anything")
}

func TestRun_EmptyJustificationReprompts(t *testing.T) {
	roles := &testutil.MockRoleManager{
		EligibilitySchedulesFn: func(context.Context, string) ([]domain.EligibilitySchedule, error) {
			return []domain.EligibilitySchedule{eligibleRole("r-1", "Helpdesk Administrator")}, nil
		},
	}
	p := &testutil.ScriptPrompter{Answers: []string{"1", "", "   ", "ops ticket 7", "n"}}
	var out bytes.Buffer
	deps := sessionDeps(roles, p, &out)

	err := Run(context.Background(), deps, principalID)
	require.NoError(t, err)

	require.Len(t, roles.Activations, 1)
	req := roles.Activations[0]
	assert.Equal(t, "ops ticket 7", req.Justification)
	assert.Equal(t, principalID, req.PrincipalID)
	assert.Equal(t, "r-1", req.RoleDefinitionID)
	assert.Equal(t, domain.DefaultActivationDuration, req.Duration)
	assert.Equal(t, deps.Now().UTC(), req.StartAt)
	assert.Contains(t, out.String(), "Activated Helpdesk Administrator")
}

func TestRun_InvalidSelectionReprompts(t *testing.T) {
	roles := &testutil.MockRoleManager{
		EligibilitySchedulesFn: func(context.Context, string) ([]domain.EligibilitySchedule, error) {
			return []domain.EligibilitySchedule{eligibleRole("r-1", "Helpdesk Administrator")}, nil
		},
	}
	p := &testutil.ScriptPrompter{Answers: []string{"first", "9", "-1", "0"}}
	var out bytes.Buffer

	err := Run(context.Background(), sessionDeps(roles, p, &out), principalID)
	require.NoError(t, err)
	assert.Empty(t, roles.Activations)
	assert.Contains(t, out.String(), "Enter a number between 0 and 1.")
}

func TestRun_KnownConflictKeepsSessionAlive(t *testing.T) {
	roles := &testutil.MockRoleManager{
		EligibilitySchedulesFn: func(context.Context, string) ([]domain.EligibilitySchedule, error) {
			return []domain.EligibilitySchedule{eligibleRole("r-1", "Helpdesk Administrator")}, nil
		},
		ActivateRoleFn: func(context.Context, domain.ActivationRequest) error {
			return &graph.APIError{StatusCode: 400, Code: "RoleAssignmentExists", Message: "The Role assignment already exists."}
		},
	}
	p := &testutil.ScriptPrompter{Answers: []string{"1", "maintenance window", "n"}}
	var out bytes.Buffer

	err := Run(context.Background(), sessionDeps(roles, p, &out), principalID)
	require.NoError(t, err, "a rejected activation ends the attempt, not the session")
	assert.Contains(t, out.String(), "Warning:")
	assert.Contains(t, out.String(), "already assigned")
}

func TestRun_UnknownFailureSurfacesVerbatim(t *testing.T) {
	roles := &testutil.MockRoleManager{
		EligibilitySchedulesFn: func(context.Context, string) ([]domain.EligibilitySchedule, error) {
			return []domain.EligibilitySchedule{eligibleRole("r-1", "Helpdesk Administrator")}, nil
		},
		ActivateRoleFn: func(context.Context, domain.ActivationRequest) error {
			return &graph.APIError{StatusCode: 403, Code: "AccessDenied", Message: "Conditional access policy requires MFA"}
		},
	}
	p := &testutil.ScriptPrompter{Answers: []string{"1", "maintenance window", "no"}}
	var out bytes.Buffer

	err := Run(context.Background(), sessionDeps(roles, p, &out), principalID)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Activation failed:")
	assert.Contains(t, out.String(), "Conditional access policy requires MFA")
}

func TestRun_SuccessRedisplaysActiveRoles(t *testing.T) {
	activated := false
	end := time.Date(2026, 8, 26, 16, 0, 0, 0, time.UTC)
	roles := &testutil.MockRoleManager{
		EligibilitySchedulesFn: func(context.Context, string) ([]domain.EligibilitySchedule, error) {
			return []domain.EligibilitySchedule{eligibleRole("r-1", "Helpdesk Administrator")}, nil
		},
		AssignmentSchedulesFn: func(context.Context, string) ([]domain.AssignmentSchedule, error) {
			if !activated {
				return nil, nil
			}
			return []domain.AssignmentSchedule{{
				RoleDefinitionID: "r-1",
				AssignmentType:   domain.AssignmentTypeActivated,
				RoleDefinition:   &domain.RoleDefinition{DisplayName: "Helpdesk Administrator"},
				ScheduleInfo: &domain.RequestSchedule{
					Expiration: domain.ScheduleExpiration{Type: domain.ExpirationAfterDateTime, EndDateTime: &end},
				},
			}}, nil
		},
		ActivateRoleFn: func(context.Context, domain.ActivationRequest) error {
			activated = true
			return nil
		},
	}
	p := &testutil.ScriptPrompter{Answers: []string{"1", "incident 42", "n"}}
	var out bytes.Buffer

	err := Run(context.Background(), sessionDeps(roles, p, &out), principalID)
	require.NoError(t, err)
	// The fresh activation shows up with its remaining time.
	assert.Contains(t, out.String(), "240 min left")
}

func TestRun_PermanentRoleListedDistinctly(t *testing.T) {
	roles := &testutil.MockRoleManager{
		EligibilitySchedulesFn: func(context.Context, string) ([]domain.EligibilitySchedule, error) {
			return []domain.EligibilitySchedule{eligibleRole("r-2", "Reader")}, nil
		},
		AssignmentSchedulesFn: func(context.Context, string) ([]domain.AssignmentSchedule, error) {
			return []domain.AssignmentSchedule{{
				RoleDefinitionID: "r-1",
				AssignmentType:   domain.AssignmentTypeAssigned,
				RoleDefinition:   &domain.RoleDefinition{DisplayName: "Global Reader"},
				ScheduleInfo: &domain.RequestSchedule{
					Expiration: domain.ScheduleExpiration{Type: domain.ExpirationNone},
				},
			}}, nil
		},
	}
	p := &testutil.ScriptPrompter{Answers: []string{"0"}}
	var out bytes.Buffer

	err := Run(context.Background(), sessionDeps(roles, p, &out), principalID)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Global Reader: permanent")
}
