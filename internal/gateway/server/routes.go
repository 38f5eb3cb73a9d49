package server

import (
	"net/http"

	"infralab/internal/gateway/handler"
	"infralab/internal/gateway/middleware"
)

func NewMux(h *handler.Handler, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	return middleware.CORS(allowedOrigins)(mux)
}
