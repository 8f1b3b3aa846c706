package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /{$}", handler.SearchPage)
}

func registerViewRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports", handler.ListSports)
	mux.HandleFunc("GET /v1/view", handler.GetView)
	mux.HandleFunc("POST /v1/view/sport", handler.SelectSport)
	mux.HandleFunc("PUT /v1/view/query", handler.SetQuery)
	mux.HandleFunc("POST /v1/view/search", handler.Search)
	mux.HandleFunc("POST /v1/view/search/all", handler.SearchAll)
}
