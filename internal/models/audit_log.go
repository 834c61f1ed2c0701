package models

// AuditLog records write operations made against a workspace.
type AuditLog struct {
	Base
	WorkspaceID  string `gorm:"size:36;index" json:"workspace_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"size:36" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
