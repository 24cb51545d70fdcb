package mockcanvas

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/mockcanvas/internal/models"
	"github.com/noah-isme/mockcanvas/internal/store"
)

// AnnotationParams controls AddAnnotation.
type AnnotationParams struct {
	SignedInUserID int64
	AuthorID       int64
	// HasComment adds a reply from the signed in user to the ink annotation.
	HasComment      bool
	CommentContents string
	// HasSentComment stages a pending reply to be posted by the client.
	HasSentComment      bool
	SentCommentContents string
}

const annotationColor = "#008EE2"

var (
	inkColumns = []float32{46, 80, 120, 160, 200, 240, 280, 320, 360, 400, 440, 480, 550}
	inkRows    = []float32{740, 540, 320, 100}
)

// fullPageInk is a single stroke zig-zagging across the whole page.
func fullPageInk() [][]models.Coordinate {
	stroke := make([]models.Coordinate, 0, len(inkColumns)*len(inkRows))
	for _, y := range inkRows {
		for _, x := range inkColumns {
			stroke = append(stroke, models.Coordinate{X: x, Y: y})
		}
	}
	return [][]models.Coordinate{stroke}
}

// AddAnnotation creates a doc viewer session with a full-page ink
// annotation by the author, optionally answered by the signed in user.
func (c *Canvas) AddAnnotation(params AnnotationParams) models.DocSession {
	var session models.DocSession
	c.update(func(s *store.State) {
		viewer := s.Users.MustGet(params.SignedInUserID)
		author := s.Users.MustGet(params.AuthorID)

		sessionID := strconv.FormatInt(s.NextID(), 10)
		docID := strconv.FormatInt(s.NextID(), 10)
		pdf := fmt.Sprintf("/1/sessions/%s/file/file.pdf", sessionID)
		session = models.DocSession{
			ID:             sessionID,
			DocumentID:     docID,
			AnnotationURLs: models.AnnotationURLs{PDFDownload: pdf, AnnotatedPDFDownload: pdf},
			AnnotationMetadata: models.AnnotationMetadata{
				Enabled:     true,
				UserName:    viewer.Name,
				UserID:      strconv.FormatInt(viewer.ID, 10),
				Permissions: "read",
			},
		}

		now := c.now()
		ink := models.Annotation{
			AnnotationID: strconv.FormatInt(s.NextID(), 10),
			DocumentID:   docID,
			UserID:       strconv.FormatInt(author.ID, 10),
			UserName:     author.Name,
			Type:         models.AnnotationInk,
			Context:      "default",
			Color:        annotationColor,
			Width:        10,
			Rect:         [2]models.Coordinate{{X: 45.285324, Y: 80.672485}, {X: 565.24457, Y: 745.6419}},
			InkList:      fullPageInk(),
			CreatedAt:    now,
		}
		annotations := []models.Annotation{ink}
		if params.HasComment {
			annotations = append(annotations, c.newReply(s, viewer, docID, ink.AnnotationID, params.CommentContents))
		}
		if params.HasSentComment {
			s.PendingAnnotations[sessionID] = c.newReply(s, viewer, docID, ink.AnnotationID, params.SentCommentContents)
		}

		s.Annotations[sessionID] = annotations
		s.DocSessions[sessionID] = session
	})
	return session
}

func (c *Canvas) newReply(s *store.State, author models.User, docID, inReplyTo, contents string) models.Annotation {
	return models.Annotation{
		AnnotationID: strconv.FormatInt(s.NextID(), 10),
		DocumentID:   docID,
		UserID:       strconv.FormatInt(author.ID, 10),
		UserName:     author.Name,
		Type:         models.AnnotationCommentReply,
		Context:      "default",
		Contents:     contents,
		InReplyTo:    inReplyTo,
		CreatedAt:    c.now(),
	}
}
