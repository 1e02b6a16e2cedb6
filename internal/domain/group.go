package domain

// Graph wire shapes: https://learn.microsoft.com/en-us/graph/api/resources/group

// Group represents a directory group descriptor.
type Group struct {
	ID              string   `json:"id,omitempty"`
	DisplayName     string   `json:"displayName,omitempty"`
	Description     string   `json:"description,omitempty"`
	Mail            string   `json:"mail,omitempty"`
	MailNickname    string   `json:"mailNickname,omitempty"`
	MailEnabled     bool     `json:"mailEnabled"`
	SecurityEnabled bool     `json:"securityEnabled"`
	GroupTypes      []string `json:"groupTypes,omitempty"`
	Visibility      string   `json:"visibility,omitempty"`
	CreatedDateTime string   `json:"createdDateTime,omitempty"`
}

// IsUnified reports whether the group carries the Unified group type.
func (g *Group) IsUnified() bool {
	for _, t := range g.GroupTypes {
		if t == GroupTypeUnified {
			return true
		}
	}
	return false
}

// LikelySource reports whether a group looks like an unconverted plain
// security group: no mail capability and no group-type classification.
// Used to annotate candidates when a display name matches several groups.
func (g *Group) LikelySource() bool {
	return !g.MailEnabled && len(g.GroupTypes) == 0
}

// GroupTypeUnified is the groupTypes tag marking a unified group.
const GroupTypeUnified = "Unified"

// VisibilityPrivate is the visibility assigned to groups this tool creates.
const VisibilityPrivate = "Private"

// DirectoryObject is a member reference returned by a membership listing.
type DirectoryObject struct {
	ID                string `json:"id,omitempty"`
	ODataType         string `json:"@odata.type,omitempty"`
	DisplayName       string `json:"displayName,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
}

// User is the signed-in principal as reported by the directory.
type User struct {
	ID                string `json:"id,omitempty"`
	DisplayName       string `json:"displayName,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
}

// Organization identifies the tenant the session is bound to.
type Organization struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// TargetType selects the kind of group a security group converts into.
type TargetType string

const (
	// TargetMailEnabledSecurity converts into a mail-enabled security group.
	TargetMailEnabledSecurity TargetType = "mesg"
	// TargetUnified converts into a unified (Microsoft 365) group.
	TargetUnified TargetType = "unified"
)

// ParseTargetType validates a target-type selector string.
func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(s) {
	case TargetMailEnabledSecurity, TargetUnified:
		return TargetType(s), nil
	default:
		return "", ErrValidation("target type must be %q or %q, got %q",
			TargetMailEnabledSecurity, TargetUnified, s)
	}
}

// SecurityEnabled returns the securityEnabled polarity implied by the target type.
func (t TargetType) SecurityEnabled() bool {
	return t == TargetMailEnabledSecurity
}

// GroupTypes returns the groupTypes tags implied by the target type.
func (t TargetType) GroupTypes() []string {
	if t == TargetUnified {
		return []string{GroupTypeUnified}
	}
	return nil
}

// CreateGroupRequest holds parameters for creating a new group.
type CreateGroupRequest struct {
	DisplayName     string   `json:"displayName"`
	Description     string   `json:"description,omitempty"`
	MailNickname    string   `json:"mailNickname"`
	MailEnabled     bool     `json:"mailEnabled"`
	SecurityEnabled bool     `json:"securityEnabled"`
	GroupTypes      []string `json:"groupTypes"`
	Visibility      string   `json:"visibility,omitempty"`
}

// Validate checks that the request is well-formed.
func (r *CreateGroupRequest) Validate() error {
	if r.DisplayName == "" {
		return ErrValidation("group display name is required")
	}
	if r.MailNickname == "" {
		return ErrValidation("mail nickname is required")
	}
	if err := ValidateMailNickname(r.MailNickname); err != nil {
		return err
	}
	return nil
}

// MaxNicknameLen is the maximum length of a mail nickname.
const MaxNicknameLen = 64

// ValidateMailNickname checks the nickname grammar the directory accepts:
// letter first, alphanumerics with single dot separators, bounded length.
func ValidateMailNickname(s string) error {
	if s == "" {
		return ErrValidation("mail nickname must not be empty")
	}
	if len(s) > MaxNicknameLen {
		return ErrValidation("mail nickname %q exceeds %d characters", s, MaxNicknameLen)
	}
	if !isLetter(rune(s[0])) {
		return ErrValidation("mail nickname %q must begin with a letter", s)
	}
	prevSep := false
	for _, r := range s {
		switch {
		case isLetter(r) || (r >= '0' && r <= '9'):
			prevSep = false
		case r == '.':
			if prevSep {
				return ErrValidation("mail nickname %q contains consecutive separators", s)
			}
			prevSep = true
		default:
			return ErrValidation("mail nickname %q contains invalid character %q", s, r)
		}
	}
	if prevSep {
		return ErrValidation("mail nickname %q must not end with a separator", s)
	}
	return nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
