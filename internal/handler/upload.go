package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// allowedAvatarTypes maps sniffed content types to the extension the file is saved with.
var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type uploadResult struct {
	URL string `json:"url"`
}

// UploadAvatar stores an image sent as the multipart field "file". The type is detected
// from the content, never from the client's file name or header.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	maxSize := h.config.Upload.MaxSize
	// room for the multipart framing around the file
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.errorResponse(w, r, http.StatusRequestEntityTooLarge, "arquivo excede o tamanho máximo")
		default:
			h.errorResponse(w, r, http.StatusBadRequest, "nenhum arquivo enviado")
		}
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(file, maxSize+1))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if n > maxSize {
		h.errorResponse(w, r, http.StatusRequestEntityTooLarge, "arquivo excede o tamanho máximo")
		return
	}
	if n == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, "nenhum arquivo enviado")
		return
	}

	mtype := mimetype.Detect(buf.Bytes())
	ext, ok := allowedAvatarTypes[mtype.String()]
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, "tipo de arquivo não permitido")
		return
	}

	if err := os.MkdirAll(h.config.Upload.Dir, 0o755); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	filename := fmt.Sprintf("avatar_%d_%s%s", h.now().UnixMilli(), uuid.NewString()[:8], ext)
	if err := os.WriteFile(filepath.Join(h.config.Upload.Dir, filename), buf.Bytes(), 0o644); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "arquivo enviado", uploadResult{URL: "/uploads/" + filename})
}
