package server

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxUploadBytes = 20 << 20

var (
	errUnsupportedImage = errors.New("unsupported image type")
	errImageTooLarge    = errors.New("image too large")
)

// limitBody caps the request body on upload-capable handlers so an
// oversized upload is cut off while streaming instead of being spooled
// to disk before the per-file check. The extra megabyte covers the
// other form fields and multipart framing.
func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))
}

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// saveUpload stores an uploaded image under UploadDir/subdir, named by
// upload time plus a short content hash so concurrent uploads of the
// same second cannot collide. Returns the path relative to UploadDir,
// or "" when the field was not submitted.
func (s *Server) saveUpload(r *http.Request, field, subdir string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		return "", errUnsupportedImage
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxUploadBytes {
		return "", errImageTooLarge
	}

	sum := sha256.Sum256(data)
	name := time.Now().Format("20060102150405") + "_" + hex.EncodeToString(sum[:4]) + ext
	rel := filepath.Join(subdir, name)
	full := filepath.Join(s.UploadDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", err
	}
	return rel, nil
}

// removeUploads unlinks files best-effort, after the database change has
// already committed. A failed removal is logged and never surfaced.
func (s *Server) removeUploads(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.Join(s.UploadDir, p)); err != nil && !os.IsNotExist(err) {
			s.Log.Warn("remove upload", "path", p, "err", err)
		}
	}
}
