package httpapi

import (
	_ "embed"
	"net/http"
)

//go:embed search_page.html
var searchPageHTML []byte

func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.SearchPage")
	defer span.End()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(searchPageHTML)
}
