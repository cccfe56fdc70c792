package generator

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed assets/*
var assetsFS embed.FS

type asset struct {
	contentType string
	body        []byte
}

// loadAssets reads every embedded asset once, minifying scripts and styles
// when asked.
func loadAssets(minified bool) (map[string]asset, error) {
	entries, err := fs.ReadDir(assetsFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("generator: read assets: %w", err)
	}
	m := newMinifier()
	out := make(map[string]asset, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		body, err := fs.ReadFile(assetsFS, path.Join("assets", name))
		if err != nil {
			return nil, fmt.Errorf("generator: read asset %s: %w", name, err)
		}
		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if minified {
			mediatype := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
			if mediatype == "application/javascript" {
				mediatype = "text/javascript"
			}
			if mediatype == "text/css" || mediatype == "text/javascript" {
				smaller, err := m.Bytes(mediatype, body)
				if err != nil {
					return nil, fmt.Errorf("generator: minify asset %s: %w", name, err)
				}
				body = smaller
			}
		}
		out[name] = asset{contentType: contentType, body: body}
	}
	return out, nil
}

func (h *handler) serveAsset(w http.ResponseWriter, r *http.Request, name string) {
	a, ok := h.assets[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(a.body)
}
