package models

// WorkspaceMode selects which scoring and insight rules apply to a workspace.
type WorkspaceMode string

const (
	WorkspaceModePersonal     WorkspaceMode = "personal"
	WorkspaceModeProfessional WorkspaceMode = "professional"
)

// Workspace groups categories, transactions and goals. Nothing is ever
// aggregated across workspaces.
type Workspace struct {
	Base
	Name           string `gorm:"not null" json:"name"`
	IsProfessional bool   `gorm:"not null" json:"is_professional"`
	Currency       string `gorm:"size:3;not null;default:'USD'" json:"currency"`
}

// Mode returns the workspace mode derived from IsProfessional.
func (w *Workspace) Mode() WorkspaceMode {
	if w.IsProfessional {
		return WorkspaceModeProfessional
	}
	return WorkspaceModePersonal
}
