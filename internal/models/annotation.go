package models

import "time"

const (
	AnnotationInk          = "ink"
	AnnotationCommentReply = "commentReply"
)

// AnnotationURLs points at the downloadable PDF of a doc session.
type AnnotationURLs struct {
	PDFDownload          string `json:"pdf_download"`
	AnnotatedPDFDownload string `json:"annotated_pdf_download"`
}

// AnnotationMetadata describes the signed-in user's annotation rights.
type AnnotationMetadata struct {
	Enabled     bool   `json:"enabled"`
	UserName    string `json:"user_name"`
	UserID      string `json:"user_id"`
	Permissions string `json:"permissions"`
}

// DocSession is a document viewer session for a submission preview.
type DocSession struct {
	ID                 string             `json:"id"`
	DocumentID         string             `json:"document_id"`
	AnnotationURLs     AnnotationURLs     `json:"urls"`
	AnnotationMetadata AnnotationMetadata `json:"annotations"`
}

// Coordinate is a point on an annotated page.
type Coordinate struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Annotation is a single mark or comment on a document.
type Annotation struct {
	AnnotationID string         `json:"id"`
	DocumentID   string         `json:"document_id"`
	UserID       string         `json:"user_id"`
	UserName     string         `json:"user_name"`
	Page         int            `json:"page"`
	Type         string         `json:"type"`
	Context      string         `json:"context"`
	Contents     string         `json:"contents,omitempty"`
	InReplyTo    string         `json:"inreplyto,omitempty"`
	Color        string         `json:"color,omitempty"`
	Width        float32        `json:"width,omitempty"`
	Rect         [2]Coordinate  `json:"rect"`
	InkList      [][]Coordinate `json:"inklist,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
