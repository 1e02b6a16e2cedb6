package pim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"entractl/internal/domain"
	"entractl/internal/prompt"
)

// Deps are the collaborators an activation session needs.
type Deps struct {
	Roles  domain.RoleManager
	Prompt prompt.Prompter
	Out    io.Writer
	Log    *slog.Logger
	// Now supplies the clock; defaults to time.Now.
	Now func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// menuEntry is one selectable eligible role.
type menuEntry struct {
	RoleDefinitionID string
	DirectoryScopeID string
	Name             string
}

// Run drives one interactive activation session for the principal.
// Eligible roles are listed once in fetch order; active assignments are
// re-fetched before every menu display so a fresh activation shows up
// immediately.
func Run(ctx context.Context, deps Deps, principalID string) error {
	menu, err := buildMenu(ctx, deps, principalID)
	if err != nil {
		return err
	}
	if len(menu) == 0 {
		fmt.Fprintln(deps.Out, "No eligible role assignments for this account.")
		return nil
	}

	for {
		activeByRole, err := showActive(ctx, deps, principalID)
		if err != nil {
			return err
		}

		fmt.Fprintln(deps.Out, "\nEligible roles:")
		for i, e := range menu {
			fmt.Fprintf(deps.Out, "  %d. %s\n", i+1, e.Name)
		}

		choice, exit, err := readSelection(deps, len(menu))
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		entry := menu[choice-1]

		if _, active := activeByRole[entry.RoleDefinitionID]; active {
			fmt.Fprintf(deps.Out, "%s is already active.\n", entry.Name)
			continue
		}

		activated, err := activate(ctx, deps, principalID, entry)
		if err != nil {
			return err
		}
		if activated {
			if _, err := showActive(ctx, deps, principalID); err != nil {
				return err
			}
		}

		cont, err := deps.Prompt.ReadLine("Activate another role? [Y/n]: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(cont) {
		case "n", "no":
			return nil
		}
	}
}

// buildMenu lists eligibility schedules and resolves each to a role
// name, keeping the fetch order stable.
func buildMenu(ctx context.Context, deps Deps, principalID string) ([]menuEntry, error) {
	schedules, err := deps.Roles.EligibilitySchedules(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("list eligible roles: %w", err)
	}
	menu := make([]menuEntry, 0, len(schedules))
	for _, s := range schedules {
		name := s.RoleDefinitionID
		if s.RoleDefinition != nil && s.RoleDefinition.DisplayName != "" {
			name = s.RoleDefinition.DisplayName
		} else {
			def, err := deps.Roles.RoleDefinition(ctx, s.RoleDefinitionID)
			if err != nil {
				deps.Log.Warn("resolve role definition", "role", s.RoleDefinitionID, "error", err)
			} else if def.DisplayName != "" {
				name = def.DisplayName
			}
		}
		menu = append(menu, menuEntry{
			RoleDefinitionID: s.RoleDefinitionID,
			DirectoryScopeID: s.DirectoryScopeID,
			Name:             name,
		})
	}
	return menu, nil
}

// showActive fetches and prints the principal's active assignments with
// classified expiry, returning them keyed by role definition id.
func showActive(ctx context.Context, deps Deps, principalID string) (map[string]domain.AssignmentSchedule, error) {
	schedules, err := deps.Roles.AssignmentSchedules(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("list active roles: %w", err)
	}
	byRole := make(map[string]domain.AssignmentSchedule, len(schedules))
	if len(schedules) == 0 {
		fmt.Fprintln(deps.Out, "No roles are currently active.")
		return byRole, nil
	}
	now := deps.now()
	fmt.Fprintln(deps.Out, "Active roles:")
	for _, s := range schedules {
		byRole[s.RoleDefinitionID] = s
		name := s.RoleDefinitionID
		if s.RoleDefinition != nil && s.RoleDefinition.DisplayName != "" {
			name = s.RoleDefinition.DisplayName
		}
		fmt.Fprintf(deps.Out, "  %s: %s\n", name, Classify(s, now))
	}
	return byRole, nil
}

// readSelection reads a 1-based menu index, re-prompting on junk input.
// 0 exits the session.
func readSelection(deps Deps, max int) (choice int, exit bool, err error) {
	for {
		answer, err := deps.Prompt.ReadLine(fmt.Sprintf("Select role to activate [1-%d, 0 to exit]: ", max))
		if err != nil {
			return 0, false, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr != nil || n < 0 || n > max {
			fmt.Fprintf(deps.Out, "Enter a number between 0 and %d.\n", max)
			continue
		}
		if n == 0 {
			return 0, true, nil
		}
		return n, false, nil
	}
}

// activate collects a justification and submits the self-activation
// request. A rejected request ends this attempt only; the session loop
// continues.
func activate(ctx context.Context, deps Deps, principalID string, entry menuEntry) (bool, error) {
	var justification string
	for justification == "" {
		line, err := deps.Prompt.ReadLine("Justification: ")
		if err != nil {
			return false, err
		}
		justification = strings.TrimSpace(line)
	}

	req := domain.ActivationRequest{
		PrincipalID:      principalID,
		RoleDefinitionID: entry.RoleDefinitionID,
		DirectoryScopeID: entry.DirectoryScopeID,
		Justification:    justification,
		StartAt:          deps.now().UTC(),
		Duration:         domain.DefaultActivationDuration,
	}
	if err := deps.Roles.ActivateRole(ctx, req); err != nil {
		msg, known := TranslateActivationError(err)
		if known {
			fmt.Fprintf(deps.Out, "Warning: %s\n", msg)
		} else {
			fmt.Fprintf(deps.Out, "Activation failed: %s\n", msg)
		}
		deps.Log.Warn("activation rejected", "role", entry.RoleDefinitionID, "error", err)
		return false, nil
	}
	fmt.Fprintf(deps.Out, "Activated %s for %s.\n", entry.Name, domain.DefaultActivationDuration)
	return true, nil
}
