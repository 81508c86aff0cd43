package engine

import (
	"fmt"
	"io"
	"net/http"

	humanize "github.com/dustin/go-humanize"
	"github.com/specbind/specbind/pkg/log"
)

const DefaultMaxUploadSize = 32 << 20 // 32 MiB

// UploadedFile is the decoded multipart upload attached to the request
// context for routes bound to an upload field.
type UploadedFile struct {
	FieldName string
	Filename  string
	Encoding  string // Content-Transfer-Encoding of the part, usually empty
	MimeType  string
	Data      []byte
	Size      int64
}

// parseUpload decodes the multipart form and extracts the single bound field.
// The file is buffered in memory; the route's documented contract is one small
// upload per operation.
func parseUpload(r *http.Request, field string, maxSize int64) (*UploadedFile, error) {
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, fmt.Errorf("malformed multipart form: %w", err)
	}

	file, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing upload field %q: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload field %q: %w", field, err)
	}

	up := &UploadedFile{
		FieldName: field,
		Filename:  hdr.Filename,
		Encoding:  hdr.Header.Get("Content-Transfer-Encoding"),
		MimeType:  hdr.Header.Get("Content-Type"),
		Data:      data,
		Size:      int64(len(data)),
	}

	log.Debug().
		Str("field", field).
		Str("filename", up.Filename).
		Str("size", humanize.Bytes(uint64(up.Size))).
		Msg("decoded multipart upload")

	return up, nil
}
