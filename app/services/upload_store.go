package services

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"crewpush/app/protocol"
)

// UploadStore persists files the device pushes through devicecmd
// (attendance photos, exported data). Content is written under a
// temporary name first so a partial write never surfaces as a
// finished file.
type UploadStore struct {
	Dir string
}

func NewUploadStore(dir string) *UploadStore {
	return &UploadStore{Dir: dir}
}

// Save streams the upload content into the device's directory and
// reports the final path and byte count.
func (s *UploadStore) Save(sn string, fu *protocol.FileUpload) (string, int64, error) {
	if err := os.MkdirAll(filepath.Join(s.Dir, sn), 0o755); err != nil {
		return "", 0, errors.Wrap(err, "create upload dir")
	}

	name := filepath.Base(fu.FileName)
	if name == "" || name == "." {
		name = uuid.NewString() + ".bin"
	}
	final := filepath.Join(s.Dir, sn, name)
	tmp := filepath.Join(s.Dir, sn, "."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "open upload temp file")
	}
	n, err := io.Copy(f, fu.Content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return "", 0, errors.Wrap(err, "write upload")
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", 0, errors.Wrap(err, "finalize upload")
	}
	return final, n, nil
}
