// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"
	"fmt"
	"strings"

	"entractl/internal/domain"
)

// === Directory Mock ===

// MockDirectory implements domain.Directory for testing. Each method
// delegates to its Fn field when set; mutating calls are collected for
// assertions.
type MockDirectory struct {
	GroupsByDisplayNameFn  func(ctx context.Context, name string) ([]domain.Group, error)
	GroupsByMailNicknameFn func(ctx context.Context, nickname string, securityEnabled bool) ([]domain.Group, error)
	CreateGroupFn          func(ctx context.Context, req domain.CreateGroupRequest) (*domain.Group, error)
	GroupMembersFn         func(ctx context.Context, groupID string) ([]domain.DirectoryObject, error)
	AddGroupMemberFn       func(ctx context.Context, groupID, memberID string) error

	CreatedGroups []domain.CreateGroupRequest // collected create calls
	AddedMembers  []string                    // collected "<groupID>/<memberID>" add calls
}

// GroupsByDisplayName implements the interface method for testing.
func (m *MockDirectory) GroupsByDisplayName(ctx context.Context, name string) ([]domain.Group, error) {
	if m.GroupsByDisplayNameFn != nil {
		return m.GroupsByDisplayNameFn(ctx, name)
	}
	return nil, nil
}

// GroupsByMailNickname implements the interface method for testing.
func (m *MockDirectory) GroupsByMailNickname(ctx context.Context, nickname string, securityEnabled bool) ([]domain.Group, error) {
	if m.GroupsByMailNicknameFn != nil {
		return m.GroupsByMailNicknameFn(ctx, nickname, securityEnabled)
	}
	return nil, nil
}

// CreateGroup implements the interface method for testing.
func (m *MockDirectory) CreateGroup(ctx context.Context, req domain.CreateGroupRequest) (*domain.Group, error) {
	m.CreatedGroups = append(m.CreatedGroups, req)
	if m.CreateGroupFn != nil {
		return m.CreateGroupFn(ctx, req)
	}
	return &domain.Group{
		ID:              "created-" + req.MailNickname,
		DisplayName:     req.DisplayName,
		MailNickname:    req.MailNickname,
		MailEnabled:     req.MailEnabled,
		SecurityEnabled: req.SecurityEnabled,
		GroupTypes:      req.GroupTypes,
		Visibility:      req.Visibility,
	}, nil
}

// GroupMembers implements the interface method for testing.
func (m *MockDirectory) GroupMembers(ctx context.Context, groupID string) ([]domain.DirectoryObject, error) {
	if m.GroupMembersFn != nil {
		return m.GroupMembersFn(ctx, groupID)
	}
	return nil, nil
}

// AddGroupMember implements the interface method for testing.
func (m *MockDirectory) AddGroupMember(ctx context.Context, groupID, memberID string) error {
	m.AddedMembers = append(m.AddedMembers, groupID+"/"+memberID)
	if m.AddGroupMemberFn != nil {
		return m.AddGroupMemberFn(ctx, groupID, memberID)
	}
	return nil
}

// MutationCount returns how many mutating calls the mock has seen.
func (m *MockDirectory) MutationCount() int {
	return len(m.CreatedGroups) + len(m.AddedMembers)
}

// === RoleManager Mock ===

// MockRoleManager implements domain.RoleManager for testing.
type MockRoleManager struct {
	EligibilitySchedulesFn func(ctx context.Context, principalID string) ([]domain.EligibilitySchedule, error)
	RoleDefinitionFn       func(ctx context.Context, id string) (*domain.RoleDefinition, error)
	AssignmentSchedulesFn  func(ctx context.Context, principalID string) ([]domain.AssignmentSchedule, error)
	ActivateRoleFn         func(ctx context.Context, req domain.ActivationRequest) error

	Activations []domain.ActivationRequest // collected activation calls
}

// EligibilitySchedules implements the interface method for testing.
func (m *MockRoleManager) EligibilitySchedules(ctx context.Context, principalID string) ([]domain.EligibilitySchedule, error) {
	if m.EligibilitySchedulesFn != nil {
		return m.EligibilitySchedulesFn(ctx, principalID)
	}
	return nil, nil
}

// RoleDefinition implements the interface method for testing.
func (m *MockRoleManager) RoleDefinition(ctx context.Context, id string) (*domain.RoleDefinition, error) {
	if m.RoleDefinitionFn != nil {
		return m.RoleDefinitionFn(ctx, id)
	}
	return &domain.RoleDefinition{ID: id, DisplayName: id}, nil
}

// AssignmentSchedules implements the interface method for testing.
func (m *MockRoleManager) AssignmentSchedules(ctx context.Context, principalID string) ([]domain.AssignmentSchedule, error) {
	if m.AssignmentSchedulesFn != nil {
		return m.AssignmentSchedulesFn(ctx, principalID)
	}
	return nil, nil
}

// ActivateRole implements the interface method for testing.
func (m *MockRoleManager) ActivateRole(ctx context.Context, req domain.ActivationRequest) error {
	m.Activations = append(m.Activations, req)
	if m.ActivateRoleFn != nil {
		return m.ActivateRoleFn(ctx, req)
	}
	return nil
}

// === Scripted Prompter ===

// ScriptPrompter implements prompt.Prompter with a fixed list of answers.
type ScriptPrompter struct {
	Answers []string
	Labels  []string // labels seen, for assertions
	next    int
}

// ReadLine returns the next scripted answer.
func (p *ScriptPrompter) ReadLine(label string) (string, error) {
	p.Labels = append(p.Labels, label)
	if p.next >= len(p.Answers) {
		return "", fmt.Errorf("prompt script exhausted at %q", label)
	}
	answer := p.Answers[p.next]
	p.next++
	return answer, nil
}

// Confirm returns the next scripted answer interpreted as yes/no.
func (p *ScriptPrompter) Confirm(label string) (bool, error) {
	answer, err := p.ReadLine(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
