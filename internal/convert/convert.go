package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"entractl/internal/domain"
	"entractl/internal/prompt"
)

// Deps are the collaborators a conversion run needs. Out receives
// human-readable progress; Log carries diagnostics.
type Deps struct {
	Dir    domain.Directory
	Prompt prompt.Prompter
	Out    io.Writer
	Log    *slog.Logger
}

// Options control one conversion run.
type Options struct {
	DisplayName string
	Nickname    string // override; derived from the display name when empty
	Target      domain.TargetType
	DryRun      bool
	AssumeYes   bool
	ReportDir   string
}

// Run converts a security group into the target type. When an existing
// group already claims the derived nickname, membership is reconciled
// into it instead of creating a new group. Members are only ever added,
// never removed.
func Run(ctx context.Context, deps Deps, opts Options) error {
	source, err := ResolveGroup(ctx, deps.Dir, opts.DisplayName, deps.Prompt, deps.Out)
	if err != nil {
		return err
	}

	nickname := opts.Nickname
	if nickname == "" {
		nickname = MailNickname(source.DisplayName)
	}
	if err := domain.ValidateMailNickname(nickname); err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Converting %q (%s) to %s with nickname %q\n",
		source.DisplayName, source.ID, opts.Target, nickname)

	rep := &Report{}
	existing, err := FindConflict(ctx, deps.Dir, nickname, opts.Target)
	if err != nil {
		return err
	}

	var reportKey string
	if existing != nil {
		reportKey = existing.ID
		if err := mergeIntoExisting(ctx, deps, opts, rep, source, existing); err != nil {
			return err
		}
	} else {
		reportKey, err = createAndCopy(ctx, deps, opts, rep, source, nickname)
		if err != nil {
			return err
		}
	}

	if rep.Len() > 0 {
		path, err := rep.WriteFile(opts.ReportDir, reportKey, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Out, "Change report written to %s\n", path)
	}
	return nil
}

// mergeIntoExisting reconciles the source group's membership into an
// existing group that already claims the nickname. No group is created.
func mergeIntoExisting(ctx context.Context, deps Deps, opts Options, rep *Report, source, existing *domain.Group) error {
	fmt.Fprintf(deps.Out, "Existing %s group %q (%s) already uses this nickname.\n",
		opts.Target, existing.DisplayName, existing.ID)

	sourceMembers, err := deps.Dir.GroupMembers(ctx, source.ID)
	if err != nil {
		return fmt.Errorf("list members of %q: %w", source.DisplayName, err)
	}
	targetMembers, err := deps.Dir.GroupMembers(ctx, existing.ID)
	if err != nil {
		return fmt.Errorf("list members of %q: %w", existing.DisplayName, err)
	}

	onlyInSource, onlyInTarget := Diff(sourceMembers, targetMembers)
	fmt.Fprintf(deps.Out, "%d members only in %q, %d members only in %q\n",
		len(onlyInSource), source.DisplayName, len(onlyInTarget), existing.DisplayName)

	if len(onlyInSource) == 0 {
		fmt.Fprintln(deps.Out, "Nothing to copy.")
		return nil
	}
	if !opts.AssumeYes {
		ok, err := deps.Prompt.Confirm(fmt.Sprintf("Copy %d missing members into %q?", len(onlyInSource), existing.DisplayName))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.Out, "Skipped member copy.")
			return nil
		}
	}

	res := SyncMembers(ctx, deps.Dir, rep, existing, onlyInSource, opts.DryRun, deps.Log, deps.Out)
	fmt.Fprintf(deps.Out, "Copied %d members, %d failed.\n", res.Added, res.Failed)
	return nil
}

// createAndCopy creates the target group and copies the full source
// membership into it. A creation failure aborts before any member copy.
func createAndCopy(ctx context.Context, deps Deps, opts Options, rep *Report, source *domain.Group, nickname string) (reportKey string, err error) {
	req := domain.CreateGroupRequest{
		DisplayName:     source.DisplayName,
		Description:     source.Description,
		MailNickname:    nickname,
		MailEnabled:     true,
		SecurityEnabled: opts.Target.SecurityEnabled(),
		GroupTypes:      opts.Target.GroupTypes(),
		Visibility:      domain.VisibilityPrivate,
	}

	target := &domain.Group{
		ID:          nickname,
		DisplayName: source.DisplayName,
	}
	if opts.DryRun {
		fmt.Fprintf(deps.Out, "dry-run: would create %s group %q\n", opts.Target, source.DisplayName)
		rep.Add(ActionCreateGroup, source.DisplayName, "")
	} else {
		created, err := deps.Dir.CreateGroup(ctx, req)
		if err != nil {
			return "", domain.ErrMutation("create group %q: %v", source.DisplayName, err)
		}
		fmt.Fprintf(deps.Out, "Created %s group %q (%s)\n", opts.Target, created.DisplayName, created.ID)
		rep.Add(ActionCreateGroup, created.DisplayName, "")
		target = created
	}

	members, err := deps.Dir.GroupMembers(ctx, source.ID)
	if err != nil {
		return target.ID, fmt.Errorf("list members of %q: %w", source.DisplayName, err)
	}
	if len(members) == 0 {
		fmt.Fprintln(deps.Out, "Source group has no members.")
		return target.ID, nil
	}
	if !opts.AssumeYes {
		ok, err := deps.Prompt.Confirm(fmt.Sprintf("Copy %d members into the new group?", len(members)))
		if err != nil {
			return target.ID, err
		}
		if !ok {
			fmt.Fprintln(deps.Out, "Skipped member copy.")
			return target.ID, nil
		}
	}

	res := SyncMembers(ctx, deps.Dir, rep, target, members, opts.DryRun, deps.Log, deps.Out)
	fmt.Fprintf(deps.Out, "Copied %d members, %d failed.\n", res.Added, res.Failed)
	return target.ID, nil
}
