package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entractl/internal/domain"
)

func TestGroupsByDisplayName_FollowsPaging(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/v1.0/groups", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "displayName eq 'Sales'", r.URL.Query().Get("$filter"))
		fmt.Fprintf(w, `{"value":[{"id":"g-1","displayName":"Sales"}],"@odata.nextLink":"%s/v1.0/groups-page2"}`, srv.URL)
	})
	mux.HandleFunc("/v1.0/groups-page2", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"value":[{"id":"g-2","displayName":"Sales","mailEnabled":true,"groupTypes":["Unified"]}]}`)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")
	groups, err := c.GroupsByDisplayName(context.Background(), "Sales")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g-1", groups[0].ID)
	assert.Equal(t, "g-2", groups[1].ID)
	assert.True(t, groups[1].MailEnabled)
	assert.Equal(t, []string{"Unified"}, groups[1].GroupTypes)
}

func TestGroupsByMailNickname_FilterPolarity(t *testing.T) {
	var gotFilter string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("$filter")
		fmt.Fprint(w, `{"value":[]}`)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")

	_, err := c.GroupsByMailNickname(context.Background(), "sales", true)
	require.NoError(t, err)
	assert.Equal(t, "mailNickname eq 'sales' and mailEnabled eq true and securityEnabled eq true", gotFilter)

	_, err = c.GroupsByMailNickname(context.Background(), "sales", false)
	require.NoError(t, err)
	assert.Equal(t, "mailNickname eq 'sales' and mailEnabled eq true and securityEnabled eq false", gotFilter)
}

func TestCreateGroup(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.0/groups", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"g-new","displayName":"Sales","mailNickname":"sales"}`)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")
	created, err := c.CreateGroup(context.Background(), domain.CreateGroupRequest{
		DisplayName:     "Sales",
		MailNickname:    "sales",
		MailEnabled:     true,
		SecurityEnabled: true,
		Visibility:      domain.VisibilityPrivate,
	})
	require.NoError(t, err)
	assert.Equal(t, "g-new", created.ID)

	// A nil groupTypes must be sent as an empty array, not null.
	assert.Equal(t, []interface{}{}, gotBody["groupTypes"])
	assert.Equal(t, true, gotBody["mailEnabled"])
	assert.Equal(t, true, gotBody["securityEnabled"])
	assert.Equal(t, "Private", gotBody["visibility"])
}

func TestCreateGroup_ValidatesBeforeCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")
	_, err := c.CreateGroup(context.Background(), domain.CreateGroupRequest{DisplayName: "Sales"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.False(t, called)
}

func TestAddGroupMember_RefBody(t *testing.T) {
	var gotBody map[string]string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")
	err := c.AddGroupMember(context.Background(), "g-1", "m-1")
	require.NoError(t, err)

	assert.Equal(t, "/v1.0/groups/g-1/members/$ref", gotPath)
	assert.Equal(t, srv.URL+"/v1.0/directoryObjects/m-1", gotBody["@odata.id"])
}

func TestGroupMembers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/groups/g-1/members", r.URL.Path)
		fmt.Fprint(w, `{"value":[
			{"id":"u-1","@odata.type":"#microsoft.graph.user","userPrincipalName":"ann@contoso.com"},
			{"id":"d-1","@odata.type":"#microsoft.graph.device","displayName":"LAPTOP-1"}
		]}`)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")
	got, err := c.GroupMembers(context.Background(), "g-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u-1", got[0].ID)
	assert.Equal(t, "ann@contoso.com", got[0].UserPrincipalName)
	assert.Equal(t, "#microsoft.graph.device", got[1].ODataType)
}
