package types

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// documentMediaTypes maps the resume extensions the backend expects to their media types
var documentMediaTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

const defaultMediaType = "application/octet-stream"

// DetectMediaType returns the declared media type for a file on disk.
// Known resume extensions win; anything else is sniffed from the file header.
func DetectMediaType(path string) string {
	if mt, ok := documentMediaTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return defaultMediaType
	}
	return mt.String()
}

// DetectMediaTypeBytes is DetectMediaType for in-memory content
func DetectMediaTypeBytes(name string, data []byte) string {
	if mt, ok := documentMediaTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	if len(data) == 0 {
		return defaultMediaType
	}
	return mimetype.Detect(data).String()
}
