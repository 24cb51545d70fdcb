package mockcanvas

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// FolderParams controls AddFolderToCourse.
type FolderParams struct {
	CourseID int64
	// GroupID places the folder under the group's root instead of the course's.
	GroupID     int64
	DisplayName string
}

// FileParams controls AddFileToFolder and AddFileToCourse.
type FileParams struct {
	CourseID int64
	GroupID  int64
	// FolderID takes precedence over CourseID and GroupID.
	FolderID    int64
	ID          int64
	DisplayName string
	Content     string
	// ContentType is sniffed from Content when empty.
	ContentType     string
	URL             string
	VisibilityLevel string
}

func contextKey(contextType string, contextID int64) string {
	return fmt.Sprintf("%s_%d", contextType, contextID)
}

func (c *Canvas) newRootFolder(s *store.State, contextType string, contextID int64, name string) models.FileFolder {
	id := s.NextID()
	folder := models.FileFolder{
		ID:          id,
		Folder:      true,
		ContextType: contextType,
		ContextID:   contextID,
		Name:        name,
		FullName:    name,
		DisplayName: name,
		URL:         c.apiURL("folders/%d", id),
		FilesURL:    c.apiURL("folders/%d/files", id),
		FoldersURL:  c.apiURL("folders/%d/folders", id),
	}
	store.MustSucceed("add root folder", s.Files.Insert(folder.ID, folder))
	s.RootFolders[contextKey(contextType, contextID)] = folder.ID
	return folder
}

func (c *Canvas) rootFolder(s *store.State, courseID, groupID int64) models.FileFolder {
	s.Courses.MustGet(courseID)
	contextType, contextID, name := "course", courseID, "course files"
	if groupID != 0 {
		s.Groups.MustGet(groupID)
		contextType, contextID, name = "group", groupID, "course group files"
	}
	if id, ok := s.RootFolders[contextKey(contextType, contextID)]; ok {
		return s.Files.MustGet(id)
	}
	return c.newRootFolder(s, contextType, contextID, name)
}

// AddFolderToCourse creates a folder under the root folder of a course or group.
func (c *Canvas) AddFolderToCourse(params FolderParams) models.FileFolder {
	var folder models.FileFolder
	c.update(func(s *store.State) {
		root := c.rootFolder(s, params.CourseID, params.GroupID)
		id := s.NextID()
		folder = models.FileFolder{
			ID:          id,
			FolderID:    root.ID,
			Folder:      true,
			ContextType: root.ContextType,
			ContextID:   root.ContextID,
			Name:        params.DisplayName,
			FullName:    params.DisplayName,
			DisplayName: params.DisplayName,
			URL:         c.apiURL("folders/%d", id),
			FilesURL:    c.apiURL("folders/%d/files", id),
			FoldersURL:  c.apiURL("folders/%d/folders", id),
		}
		store.MustSucceed("add folder", s.Files.Insert(folder.ID, folder))
		s.FolderChildren.Add(root.ID, folder.ID)

		root.FoldersCount++
		store.MustSucceed("count folder", s.Files.Replace(root.ID, root))
	})
	return folder
}

// AddFileToFolder adds a file to a folder, or to the course root folder when
// FolderID is zero. The content is served by the request dispatcher.
func (c *Canvas) AddFileToFolder(params FileParams) models.FileFolder {
	var file models.FileFolder
	c.update(func(s *store.State) {
		var folder models.FileFolder
		switch {
		case params.FolderID != 0:
			folder = s.Files.MustGet(params.FolderID)
			if !folder.Folder {
				panic(fmt.Errorf("%w: folder %d", store.ErrMissingParent, params.FolderID))
			}
		case params.CourseID != 0:
			folder = c.rootFolder(s, params.CourseID, 0)
		default:
			panic(fmt.Errorf("%w: file needs a folder or a course", store.ErrMissingParent))
		}
		file = c.addFile(s, folder, params)
	})
	return file
}

// AddFileToCourse adds a file to the root folder of a course, or of a group
// when GroupID is set.
func (c *Canvas) AddFileToCourse(params FileParams) models.FileFolder {
	var file models.FileFolder
	c.update(func(s *store.State) {
		file = c.addFile(s, c.rootFolder(s, params.CourseID, params.GroupID), params)
	})
	return file
}

func (c *Canvas) addFile(s *store.State, folder models.FileFolder, params FileParams) models.FileFolder {
	id := claimID(s, s.Files.Kind(), params.ID)
	content := stringOr(params.Content, c.randomBody())
	contentType := params.ContentType
	if contentType == "" {
		contentType = mimetype.Detect([]byte(content)).String()
	}
	url := params.URL
	if url == "" {
		url = c.webURL("files/%d/preview", id)
	}

	file := models.FileFolder{
		ID:              id,
		FolderID:        folder.ID,
		ContextType:     folder.ContextType,
		ContextID:       folder.ContextID,
		DisplayName:     stringOr(params.DisplayName, c.randomTitle()),
		ContentType:     contentType,
		URL:             url,
		Size:            int64(len(content)),
		VisibilityLevel: stringOr(params.VisibilityLevel, models.VisibilityInherit),
	}
	store.MustSucceed("add file", s.Files.Insert(file.ID, file))
	s.FileContents[file.ID] = content
	s.FolderChildren.Add(folder.ID, file.ID)

	folder.FilesCount++
	store.MustSucceed("count file", s.Files.Replace(folder.ID, folder))

	c.logger.Debug().Int64("file_id", file.ID).Int64("folder_id", folder.ID).Str("content_type", contentType).Msg("file added")
	return file
}
