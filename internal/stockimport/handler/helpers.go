package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"stock-import/internal/fileio"
)

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on", "да":
		return true
	case "0", "false", "no", "n", "off", "нет":
		return false
	default:
		return def
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("write json")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// readUpload достаёт поле file из multipart-формы и приводит его к тексту.
func readUpload(r *http.Request, maxMemory int64) (string, string, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return "", "", err
	}
	var (
		f   multipart.File
		hdr *multipart.FileHeader
		err error
	)
	if f, hdr, err = r.FormFile("file"); err != nil {
		return "", "", err
	}
	defer f.Close()

	text, err := fileio.ReadText(f, hdr.Filename)
	if err != nil {
		return "", hdr.Filename, err
	}
	return text, hdr.Filename, nil
}
