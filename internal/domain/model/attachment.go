package model

import (
	"io"
	"time"
)

// Attachment describes an image staged for a draft. The bytes live in an
// AttachmentStore under Key until the draft is submitted or discarded.
type Attachment struct {
	ID          string
	Key         string
	FileName    string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// StoredImage is an image already saved with a catalog record. ID is local to
// the dialog that holds it.
type StoredImage struct {
	ID  string
	URL string
}

// ImagePart is an attachment opened for inclusion in a multipart payload.
type ImagePart struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// JewelleryPayload is the assembled submission for a create or update call.
// Fields never contain the record identifier. KeptImages lists the URLs of
// stored images the record keeps on update; they travel as "images" values
// alongside the uploaded files.
type JewelleryPayload struct {
	Fields     []FormField
	KeptImages []string
	Images     []ImagePart
}
