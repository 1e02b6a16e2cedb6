package pim

import (
	"errors"
	"strings"

	"entractl/internal/graph"
)

// Error codes the role-management API returns for activation conflicts.
const (
	codeRoleAssignmentExists = "RoleAssignmentExists"
	codePendingRequestExists = "PendingRoleAssignmentRequestExists"
)

// Message fragments used as a fallback when the service returns no
// structured code. This list lives only here.
var conflictFragments = map[string]string{
	"role assignment already exists":                 "this role is already assigned; nothing to activate",
	"pending role assignment request already exists": "an activation request for this role is already pending approval",
}

// TranslateActivationError maps an activation failure to an operator
// message. known is true for the recognized conflict conditions, which
// get a friendlier message; anything else is surfaced verbatim.
func TranslateActivationError(err error) (msg string, known bool) {
	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case codeRoleAssignmentExists:
			return "this role is already assigned; nothing to activate", true
		case codePendingRequestExists:
			return "an activation request for this role is already pending approval", true
		}
	}
	text := strings.ToLower(err.Error())
	for fragment, friendly := range conflictFragments {
		if strings.Contains(text, fragment) {
			return friendly, true
		}
	}
	return err.Error(), false
}
