package convert

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"entractl/internal/domain"
	"entractl/internal/prompt"
)

// ResolveGroup finds the group to convert by exact display name. When
// several groups share the name, candidates are listed with a marker on
// the ones that look like unconverted source groups (no mail, no group
// types) and the operator picks one by 1-based index.
func ResolveGroup(ctx context.Context, dir domain.Directory, name string, p prompt.Prompter, out io.Writer) (*domain.Group, error) {
	groups, err := dir.GroupsByDisplayName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("look up group %q: %w", name, err)
	}
	switch len(groups) {
	case 0:
		return nil, domain.ErrNotFound("no group named %q", name)
	case 1:
		return &groups[0], nil
	}

	fmt.Fprintf(out, "%d groups are named %q:\n", len(groups), name)
	for i, g := range groups {
		marker := " "
		if g.LikelySource() {
			marker = "*"
		}
		fmt.Fprintf(out, "  %d. %s %s (mail=%q types=%v)\n", i+1, marker, g.ID, g.Mail, g.GroupTypes)
	}
	fmt.Fprintln(out, "Groups marked * look like plain security groups.")

	answer, err := p.ReadLine(fmt.Sprintf("Select group [1-%d]: ", len(groups)))
	if err != nil {
		return nil, err
	}
	idx, err := strconv.Atoi(answer)
	if err != nil {
		return nil, domain.ErrValidation("selection %q is not a number", answer)
	}
	if idx < 1 || idx > len(groups) {
		return nil, domain.ErrValidation("selection %d is out of range 1-%d", idx, len(groups))
	}
	return &groups[idx-1], nil
}
