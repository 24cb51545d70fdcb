package models

const (
	// VisibilityInherit makes a file inherit its course visibility.
	VisibilityInherit = "inherit"
)

// FileFolder is a node of the file tree. Folders and files share the type;
// FolderID points at the parent folder and is zero for roots.
type FileFolder struct {
	ID              int64  `json:"id"`
	FolderID        int64  `json:"folder_id,omitempty"`
	Folder          bool   `json:"-"`
	ContextType     string `json:"context_type,omitempty"`
	ContextID       int64  `json:"context_id,omitempty"`
	Name            string `json:"name,omitempty"`
	FullName        string `json:"full_name,omitempty"`
	DisplayName     string `json:"display_name,omitempty"`
	ContentType     string `json:"content-type,omitempty"`
	URL             string `json:"url,omitempty"`
	FilesURL        string `json:"files_url,omitempty"`
	FoldersURL      string `json:"folders_url,omitempty"`
	Size            int64  `json:"size,omitempty"`
	FilesCount      int    `json:"files_count"`
	FoldersCount    int    `json:"folders_count"`
	VisibilityLevel string `json:"visibility_level,omitempty"`
}

// ModuleItemType implements ModuleContent.
func (f FileFolder) ModuleItemType() ModuleItemType { return ModuleItemFile }

// ModuleItemTitle implements ModuleContent.
func (f FileFolder) ModuleItemTitle() string { return f.DisplayName }

// ModuleItemPath implements ModuleContent.
func (f FileFolder) ModuleItemPath() string { return pathFor("files", f.ID) }
