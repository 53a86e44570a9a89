package structs

// Attribute is one (name, value, declared type) triple of a detailed record
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Attribute types used when a backend does not declare one
const (
	AttributeTypeString    = "string"
	AttributeTypeBoolean   = "boolean"
	AttributeTypeNumber    = "number"
	AttributeTypeRepeating = "repeating"
	AttributeTypeTime      = "time"
	AttributeTypeID        = "id"
)

// User is the backend-agnostic projection of a repository user.
// Attributes is only populated once details have been fetched.
type User struct {
	ID            string      `json:"id,omitempty"`
	UserName      string      `json:"userName"`
	LoginName     string      `json:"loginName,omitempty"`
	Address       string      `json:"address,omitempty"`
	Source        string      `json:"source,omitempty"`
	State         string      `json:"state,omitempty"`
	DefaultFolder string      `json:"defaultFolder,omitempty"`
	Description   string      `json:"description,omitempty"`
	Attributes    []Attribute `json:"attributes,omitempty"`

	detailed bool
}

func (u *User) GetName() string {
	return u.UserName
}

// HasDetails reports whether u came out of WithDetails, even when the detail
// response carried no attributes
func (u *User) HasDetails() bool {
	return u.detailed
}

// WithDetails returns a copy of u carrying the detail fields of other. Summary
// fields already set on u are kept; empty ones are filled from other. u itself
// is not modified.
func (u *User) WithDetails(other *User) *User {
	merged := *u
	merged.detailed = true
	if other == nil {
		return &merged
	}
	merged.Attributes = other.Attributes
	fillEmpty(&merged.ID, other.ID)
	fillEmpty(&merged.LoginName, other.LoginName)
	fillEmpty(&merged.Address, other.Address)
	fillEmpty(&merged.Source, other.Source)
	fillEmpty(&merged.State, other.State)
	fillEmpty(&merged.DefaultFolder, other.DefaultFolder)
	fillEmpty(&merged.Description, other.Description)
	return &merged
}

// Group is the backend-agnostic projection of a repository group.
// Attributes, MemberUsers and MemberGroups are only populated once details
// have been fetched.
type Group struct {
	ID           string      `json:"id,omitempty"`
	Name         string      `json:"name"`
	Address      string      `json:"address,omitempty"`
	Source       string      `json:"source,omitempty"`
	Description  string      `json:"description,omitempty"`
	Class        string      `json:"class,omitempty"`
	Admin        string      `json:"admin,omitempty"`
	Attributes   []Attribute `json:"attributes,omitempty"`
	MemberUsers  []string    `json:"memberUsers,omitempty"`
	MemberGroups []string    `json:"memberGroups,omitempty"`

	detailed bool
}

func (g *Group) GetName() string {
	return g.Name
}

func (g *Group) HasDetails() bool {
	return g.detailed
}

// WithDetails returns a merged copy of g, see User.WithDetails.
func (g *Group) WithDetails(other *Group) *Group {
	merged := *g
	merged.detailed = true
	if other == nil {
		return &merged
	}
	merged.Attributes = other.Attributes
	merged.MemberUsers = other.MemberUsers
	merged.MemberGroups = other.MemberGroups
	fillEmpty(&merged.ID, other.ID)
	fillEmpty(&merged.Address, other.Address)
	fillEmpty(&merged.Source, other.Source)
	fillEmpty(&merged.Description, other.Description)
	fillEmpty(&merged.Class, other.Class)
	fillEmpty(&merged.Admin, other.Admin)
	return &merged
}

// GroupMembers lists the direct members of a group
type GroupMembers struct {
	Users  []string `json:"users"`
	Groups []string `json:"groups"`
}

type Cabinet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FolderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsFolder bool   `json:"isFolder"`
	Modified string `json:"modified,omitempty"`
}

func fillEmpty(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}
