package asana

// Resource is the base structure embedded by all typed API resources.
//
// GID is the globally unique identifier assigned by the service; it is
// opaque and immutable once a resource has been hydrated. ResourceType tags
// the concrete kind and matters mostly for endpoints that return
// heterogeneous items (see GenericResource).
type Resource struct {
	GID          string `json:"gid"                     yaml:"gid"`
	ResourceType string `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`
}

// NamedResource is a compact reference to another resource, as embedded in
// relationship fields (workspace, owner, project, user, ...).
type NamedResource struct {
	Resource

	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// NextPage carries the server-driven continuation for a paginated list.
// Offset is an opaque token echoed back on the follow-up request; its
// absence signals the final page.
type NextPage struct {
	Offset string `json:"offset"         yaml:"offset"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	URI    string `json:"uri,omitempty"  yaml:"uri,omitempty"`
}

// ListResponse represents one page of a paginated list response.
type ListResponse[T any] struct {
	Data     []T       `json:"data"                yaml:"data"`
	NextPage *NextPage `json:"next_page,omitempty" yaml:"next_page,omitempty"`
}

// SingleResponse is the envelope wrapping a single resource payload.
type SingleResponse[T any] struct {
	Data T `json:"data" yaml:"data"`
}

// Portfolio represents a portfolio of projects.
type Portfolio struct {
	Resource

	Name                string          `json:"name"                            yaml:"name"`
	Color               string          `json:"color,omitempty"                 yaml:"color,omitempty"`
	CreatedAt           string          `json:"created_at,omitempty"            yaml:"created_at,omitempty"`
	CreatedBy           *NamedResource  `json:"created_by,omitempty"            yaml:"created_by,omitempty"`
	Owner               *NamedResource  `json:"owner,omitempty"                 yaml:"owner,omitempty"`
	Workspace           *NamedResource  `json:"workspace,omitempty"             yaml:"workspace,omitempty"`
	Members             []NamedResource `json:"members,omitempty"               yaml:"members,omitempty"`
	CustomFieldSettings []NamedResource `json:"custom_field_settings,omitempty" yaml:"custom_field_settings,omitempty"`
}

// ProjectMembership represents one user's membership in a project.
type ProjectMembership struct {
	Resource

	User        *NamedResource `json:"user,omitempty"         yaml:"user,omitempty"`
	Project     *NamedResource `json:"project,omitempty"      yaml:"project,omitempty"`
	WriteAccess string         `json:"write_access,omitempty" yaml:"write_access,omitempty"`
}

// Project represents a project.
type Project struct {
	Resource

	Name      string         `json:"name"                 yaml:"name"`
	Archived  bool           `json:"archived,omitempty"   yaml:"archived,omitempty"`
	Color     string         `json:"color,omitempty"      yaml:"color,omitempty"`
	Notes     string         `json:"notes,omitempty"      yaml:"notes,omitempty"`
	CreatedAt string         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Workspace *NamedResource `json:"workspace,omitempty"  yaml:"workspace,omitempty"`
	Owner     *NamedResource `json:"owner,omitempty"      yaml:"owner,omitempty"`
}

// Workspace represents a workspace or organization.
type Workspace struct {
	Resource

	Name           string   `json:"name"                      yaml:"name"`
	IsOrganization bool     `json:"is_organization,omitempty" yaml:"is_organization,omitempty"`
	EmailDomains   []string `json:"email_domains,omitempty"   yaml:"email_domains,omitempty"`
}

// User represents a user.
type User struct {
	Resource

	Name       string          `json:"name"                 yaml:"name"`
	Email      string          `json:"email,omitempty"      yaml:"email,omitempty"`
	Workspaces []NamedResource `json:"workspaces,omitempty" yaml:"workspaces,omitempty"`
}

// CustomFieldSetting represents the attachment of a custom field to a
// portfolio or project.
type CustomFieldSetting struct {
	Resource

	IsImportant bool             `json:"is_important,omitempty" yaml:"is_important,omitempty"`
	CustomField *GenericResource `json:"custom_field,omitempty" yaml:"custom_field,omitempty"`
	Parent      *NamedResource   `json:"parent,omitempty"       yaml:"parent,omitempty"`
}

// PortfolioList represents a paginated list of Portfolio resources.
type PortfolioList = ListResponse[Portfolio]

// ProjectMembershipList represents a paginated list of ProjectMembership resources.
type ProjectMembershipList = ListResponse[ProjectMembership]
