package domain

import "context"

// Directory is the group surface of the directory service.
// Implemented by graph.Client.
type Directory interface {
	GroupsByDisplayName(ctx context.Context, name string) ([]Group, error)
	GroupsByMailNickname(ctx context.Context, nickname string, securityEnabled bool) ([]Group, error)
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error)
	GroupMembers(ctx context.Context, groupID string) ([]DirectoryObject, error)
	AddGroupMember(ctx context.Context, groupID, memberID string) error
}

// RoleManager is the privileged-role surface of the directory service.
// Implemented by graph.Client.
type RoleManager interface {
	EligibilitySchedules(ctx context.Context, principalID string) ([]EligibilitySchedule, error)
	RoleDefinition(ctx context.Context, id string) (*RoleDefinition, error)
	AssignmentSchedules(ctx context.Context, principalID string) ([]AssignmentSchedule, error)
	ActivateRole(ctx context.Context, req ActivationRequest) error
}
