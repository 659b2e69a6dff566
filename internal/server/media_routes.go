package server

import (
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
)

// handleMedia streams stored image bytes by hash.
// GET /media/{hash}
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		writeError(w, 503, "media store not initialized")
		return
	}

	hash := r.PathValue("hash")
	if !validHash(hash) {
		writeError(w, 400, "hash must be 64 hex characters")
		return
	}

	reader, item, err := s.media.Open(hash)
	if err != nil {
		writeError(w, 404, "media not found")
		return
	}
	defer reader.Close()

	if item.ContentType != "" {
		w.Header().Set("Content-Type", item.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Length", strconv.Itoa(item.ContentSize))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Hash", hash)
	io.Copy(w, reader)
}

func validHash(hash string) bool {
	if len(hash) != 64 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
