package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"entractl/internal/domain"
)

// Me returns the signed-in principal.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.getJSON(ctx, "/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Organization returns the tenant the session is bound to.
func (c *Client) Organization(ctx context.Context) (*domain.Organization, error) {
	var orgs []domain.Organization
	err := c.listAll(ctx, "/organization", nil, func(raw json.RawMessage) error {
		var page []domain.Organization
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode organization: %w", err)
		}
		orgs = append(orgs, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, domain.ErrNotFound("no organization visible to this session")
	}
	return &orgs[0], nil
}
