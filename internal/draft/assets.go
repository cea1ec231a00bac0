package draft

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// MaxAttachments caps the total assets across images and 3D models.
const MaxAttachments = 4

type AssetKind string

const (
	AssetImage   AssetKind = "image"
	AssetModel3D AssetKind = "model3d"
)

var idNode *snowflake.Node

func init() {
	var err error
	idNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// Attachment is a staged binary asset. Preview is a data URL, generated
// asynchronously for images only.
type Attachment struct {
	ID       string
	Filename string
	Kind     AssetKind
	Data     []byte
	Preview  string
}

// Form couples one draft with its staged assets, mirroring a single
// product-add form instance.
type Form struct {
	Draft       Draft
	Attachments []Attachment
}

// Attach stages a picked file and returns a copy of the staged entry. The
// kind is derived from the file extension; everything that is not a known 3D
// model format counts as an image.
func (f *Form) Attach(filename string, data []byte) (Attachment, error) {
	if len(f.Attachments) >= MaxAttachments {
		return Attachment{}, ValidationError(fmt.Sprintf("you can attach at most %d files", MaxAttachments))
	}
	if len(data) == 0 {
		return Attachment{}, ValidationError("selected file is empty")
	}
	att := Attachment{
		ID:       idNode.Generate().String(),
		Filename: filepath.Base(filename),
		Kind:     kindForFilename(filename),
		Data:     data,
	}
	f.Attachments = append(f.Attachments, att)
	return att, nil
}

// RemoveAttachment drops a staged asset by ID.
func (f *Form) RemoveAttachment(id string) bool {
	for i, att := range f.Attachments {
		if att.ID == id {
			f.Attachments = append(f.Attachments[:i], f.Attachments[i+1:]...)
			return true
		}
	}
	return false
}

// SetPreview stores a generated preview on the attachment with the given ID.
// Stale callbacks for removed attachments are silently dropped.
func (f *Form) SetPreview(id, preview string) {
	for i := range f.Attachments {
		if f.Attachments[i].ID == id {
			f.Attachments[i].Preview = preview
			return
		}
	}
}

// Reset clears the draft and all staged assets; called only after a fully
// successful submit.
func (f *Form) Reset() {
	f.Draft = Draft{}
	f.Attachments = nil
}

func kindForFilename(filename string) AssetKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".glb", ".gltf", ".obj", ".fbx", ".stl":
		return AssetModel3D
	}
	return AssetImage
}
