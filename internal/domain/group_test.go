package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetType(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TargetType
		wantErr bool
	}{
		{name: "mesg", in: "mesg", want: TargetMailEnabledSecurity},
		{name: "unified", in: "unified", want: TargetUnified},
		{name: "unknown", in: "distribution", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTargetType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargetType_Polarity(t *testing.T) {
	assert.True(t, TargetMailEnabledSecurity.SecurityEnabled())
	assert.Nil(t, TargetMailEnabledSecurity.GroupTypes())

	assert.False(t, TargetUnified.SecurityEnabled())
	assert.Equal(t, []string{GroupTypeUnified}, TargetUnified.GroupTypes())
}

func TestGroup_LikelySource(t *testing.T) {
	tests := []struct {
		name string
		g    Group
		want bool
	}{
		{name: "plain security group", g: Group{SecurityEnabled: true}, want: true},
		{name: "mail enabled", g: Group{MailEnabled: true}, want: false},
		{name: "unified", g: Group{GroupTypes: []string{GroupTypeUnified}}, want: false},
		{name: "mail enabled unified", g: Group{MailEnabled: true, GroupTypes: []string{GroupTypeUnified}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.g.LikelySource())
		})
	}
}

func TestValidateMailNickname(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{name: "simple", in: "Sales"},
		{name: "dotted", in: "Contoso.Sales.Team"},
		{name: "digits after letter", in: "g123"},
		{name: "empty", in: "", wantErr: "must not be empty"},
		{name: "leading digit", in: "1sales", wantErr: "must begin with a letter"},
		{name: "leading dot", in: ".sales", wantErr: "must begin with a letter"},
		{name: "double dot", in: "a..b", wantErr: "consecutive separators"},
		{name: "trailing dot", in: "sales.", wantErr: "must not end with a separator"},
		{name: "space", in: "sa les", wantErr: "invalid character"},
		{name: "too long", in: "a" + strings.Repeat("b", MaxNicknameLen), wantErr: "exceeds"},
		{name: "at limit", in: "a" + strings.Repeat("b", MaxNicknameLen-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMailNickname(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreateGroupRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateGroupRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  CreateGroupRequest{DisplayName: "Sales", MailNickname: "sales"},
		},
		{
			name:    "missing display name",
			req:     CreateGroupRequest{MailNickname: "sales"},
			wantErr: "display name is required",
		},
		{
			name:    "missing nickname",
			req:     CreateGroupRequest{DisplayName: "Sales"},
			wantErr: "mail nickname is required",
		},
		{
			name:    "bad nickname",
			req:     CreateGroupRequest{DisplayName: "Sales", MailNickname: "9sales"},
			wantErr: "must begin with a letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
