package forms

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxImageBytes caps staged cover images at 5 MB, matching the API's limit so
// oversized files are refused before any upload starts.
const MaxImageBytes = 5 * 1024 * 1024

// StagedImage is a cover image selected by the author but not yet uploaded.
// The raw bytes are held until form submit, where they become the multipart
// file part; nothing touches the network before that.
type StagedImage struct {
	Name string
	MIME string
	Data []byte
}

// StageImage validates and stages a selected file. Files over MaxImageBytes
// or with a non-image MIME type are rejected without staging.
func StageImage(name, mime string, data []byte) (*StagedImage, error) {
	if int64(len(data)) > MaxImageBytes {
		return nil, fmt.Errorf("image size cannot exceed %d MB", MaxImageBytes/(1024*1024))
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("only image files are allowed, got %s", mime)
	}
	return &StagedImage{Name: name, MIME: mime, Data: data}, nil
}

// Preview returns a data URL suitable for an <img src> local preview.
func (s *StagedImage) Preview() string {
	if s == nil || len(s.Data) == 0 {
		return ""
	}
	return "data:" + s.MIME + ";base64," + base64.StdEncoding.EncodeToString(s.Data)
}

// Clear discards the staged selection: the raw bytes are dropped and the
// preview data URL disappears with them.
func (s *StagedImage) Clear() {
	if s == nil {
		return
	}
	s.Name = ""
	s.MIME = ""
	s.Data = nil
}
