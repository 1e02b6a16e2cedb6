package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"entractl/internal/domain"
)

// GroupsByDisplayName returns every group whose display name matches
// exactly. Zero matches is not an error.
func (c *Client) GroupsByDisplayName(ctx context.Context, name string) ([]domain.Group, error) {
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("displayName eq '%s'", escapeFilterValue(name)))
	return c.listGroups(ctx, q)
}

// GroupsByMailNickname returns mail-enabled groups with the given
// nickname and securityEnabled polarity.
func (c *Client) GroupsByMailNickname(ctx context.Context, nickname string, securityEnabled bool) ([]domain.Group, error) {
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("mailNickname eq '%s' and mailEnabled eq true and securityEnabled eq %t",
		escapeFilterValue(nickname), securityEnabled))
	return c.listGroups(ctx, q)
}

func (c *Client) listGroups(ctx context.Context, q url.Values) ([]domain.Group, error) {
	var groups []domain.Group
	err := c.listAll(ctx, "/groups", q, func(raw json.RawMessage) error {
		var page []domain.Group
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode groups: %w", err)
		}
		groups = append(groups, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a directory group and returns the created descriptor.
func (c *Client) CreateGroup(ctx context.Context, req domain.CreateGroupRequest) (*domain.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	// The API rejects a null groupTypes property.
	if req.GroupTypes == nil {
		req.GroupTypes = []string{}
	}
	var created domain.Group
	if err := c.postJSON(ctx, "/groups", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GroupMembers lists every member of a group, following paging.
func (c *Client) GroupMembers(ctx context.Context, groupID string) ([]domain.DirectoryObject, error) {
	var members []domain.DirectoryObject
	path := fmt.Sprintf("/groups/%s/members", url.PathEscape(groupID))
	err := c.listAll(ctx, path, nil, func(raw json.RawMessage) error {
		var page []domain.DirectoryObject
		if err := json.Unmarshal(raw, &page); err != nil {
			return fmt.Errorf("decode members: %w", err)
		}
		members = append(members, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AddGroupMember adds one directory object to a group by reference.
func (c *Client) AddGroupMember(ctx context.Context, groupID, memberID string) error {
	path := fmt.Sprintf("/groups/%s/members/$ref", url.PathEscape(groupID))
	body := map[string]string{
		"@odata.id": fmt.Sprintf("%s%s/directoryObjects/%s", c.BaseURL, apiVersion, url.PathEscape(memberID)),
	}
	return c.postJSON(ctx, path, body, nil)
}
