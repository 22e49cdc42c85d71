package protocol

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// FileUpload is one framed file from a devicecmd body: a text header
// terminated by the Content= marker, then raw bytes to the end of the
// payload. Content is the unread remainder of the stream; callers
// copy it straight to storage so a multi-megabyte biometric payload
// is never held in memory.
type FileUpload struct {
	PIN      string
	FileName string
	Size     int
	Type     int
	CmdID    string
	Content  io.Reader
}

var contentMarker = []byte("Content=")

// MaxFileHeaderBytes bounds the text header before Content=. The
// payload past the marker has no bound; it is streamed, not buffered.
const MaxFileHeaderBytes = 8 << 10

// ReadFileUpload consumes the header up to and including the Content=
// marker and returns it parsed, with Content set to the rest of the
// stream. The body is binary past the marker and may contain embedded
// newlines, so the marker is found by byte search, not line splits.
func ReadFileUpload(br *bufio.Reader) (*FileUpload, error) {
	header := make([]byte, 0, 256)
	for !bytes.HasSuffix(header, contentMarker) {
		if len(header) >= MaxFileHeaderBytes {
			return nil, errors.New("file upload header too long")
		}
		b, err := br.ReadByte()
		if err != nil {
			return nil, errors.New("file upload missing Content= marker")
		}
		header = append(header, b)
	}
	header = header[:len(header)-len(contentMarker)]

	// header fields may be separated by tabs or newlines
	h := strings.NewReplacer("\r", "", "\n", "\t").Replace(string(header))
	f := parseFields(h, fileHeaderSchema)

	fu := &FileUpload{
		PIN:      f["pin"],
		FileName: f["filename"],
		Size:     atoiDefault(f["size"], 0),
		Type:     atoiDefault(f["type"], 0),
		CmdID:    f["cmdid"],
		Content:  br,
	}
	return fu, nil
}

// IsFileUpload reports whether a devicecmd body prefix carries framed
// file content rather than command-return lines. Only bytes before
// the marker are inspected: the binary payload may legitimately
// contain the ASCII sequence Return=.
func IsFileUpload(prefix []byte) bool {
	idx := bytes.Index(prefix, contentMarker)
	if idx < 0 {
		return false
	}
	return !bytes.Contains(prefix[:idx], []byte("Return="))
}
