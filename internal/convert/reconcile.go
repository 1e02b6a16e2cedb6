package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"entractl/internal/domain"
)

// Diff splits two membership sets by member id. onlyInSource are members
// missing from target, onlyInTarget the reverse. Input order is preserved.
func Diff(source, target []domain.DirectoryObject) (onlyInSource, onlyInTarget []domain.DirectoryObject) {
	inTarget := make(map[string]bool, len(target))
	for _, m := range target {
		inTarget[m.ID] = true
	}
	inSource := make(map[string]bool, len(source))
	for _, m := range source {
		inSource[m.ID] = true
		if !inTarget[m.ID] {
			onlyInSource = append(onlyInSource, m)
		}
	}
	for _, m := range target {
		if !inSource[m.ID] {
			onlyInTarget = append(onlyInTarget, m)
		}
	}
	return onlyInSource, onlyInTarget
}

// FindConflict looks for an existing mail-enabled group that already
// claims the candidate nickname with the securityEnabled polarity of the
// target type. More than one match is an explicit error: the directory
// gives no ordering to break the tie on.
func FindConflict(ctx context.Context, dir domain.Directory, nickname string, target domain.TargetType) (*domain.Group, error) {
	groups, err := dir.GroupsByMailNickname(ctx, nickname, target.SecurityEnabled())
	if err != nil {
		return nil, fmt.Errorf("look up nickname %q: %w", nickname, err)
	}
	switch len(groups) {
	case 0:
		return nil, nil
	case 1:
		return &groups[0], nil
	default:
		return nil, domain.ErrAmbiguous("%d existing groups claim nickname %q; resolve manually", len(groups), nickname)
	}
}

// SyncResult counts the outcome of a membership sync.
type SyncResult struct {
	Added  int
	Failed int
}

// SyncMembers adds each member to the target group one at a time. A
// rejected add is logged and recorded but never stops the rest of the
// batch; duplicate-add races with external writers surface here as
// harmless per-member failures. Every attempt appends a report row.
// In dry-run mode no directory write happens and every member counts as
// added.
func SyncMembers(ctx context.Context, dir domain.Directory, rep *Report, target *domain.Group, members []domain.DirectoryObject, dryRun bool, log *slog.Logger, out io.Writer) SyncResult {
	var res SyncResult
	for _, m := range members {
		if dryRun {
			fmt.Fprintf(out, "  dry-run: would add %s to %q\n", memberLabel(m), target.DisplayName)
			rep.Add(ActionAddMember, target.DisplayName, m.ID)
			res.Added++
			continue
		}
		if err := dir.AddGroupMember(ctx, target.ID, m.ID); err != nil {
			log.Warn("add member failed", "group", target.DisplayName, "member", m.ID, "error", err)
			fmt.Fprintf(out, "  failed: %s: %v\n", memberLabel(m), err)
			rep.Add(ActionAddMemberFailed, target.DisplayName, m.ID)
			res.Failed++
			continue
		}
		fmt.Fprintf(out, "  added: %s\n", memberLabel(m))
		rep.Add(ActionAddMember, target.DisplayName, m.ID)
		res.Added++
	}
	return res
}

func memberLabel(m domain.DirectoryObject) string {
	if m.UserPrincipalName != "" {
		return m.UserPrincipalName
	}
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.ID
}
