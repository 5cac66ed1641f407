package routes

import (
	"net/http"

	"github.com/terabiome/geniprofile/internal/handler"
)

// Router wraps http.ServeMux and provides route setup
type Router struct {
	*http.ServeMux
}

// V1Handler returns a handler for v1 API routes
func (router *Router) V1Handler(profileHandler *handler.Profile, systemHandler *handler.System) http.Handler {
	mux := http.NewServeMux()

	profileMux := http.NewServeMux()
	profileMux.HandleFunc("GET /parameters", profileHandler.Parameters)
	profileMux.HandleFunc("POST /generate", profileHandler.Generate)
	profileMux.HandleFunc("POST /preview", profileHandler.Preview)
	mux.Handle("/profile/", http.StripPrefix("/profile", profileMux))

	systemMux := http.NewServeMux()
	systemMux.HandleFunc("GET /hypervisor", systemHandler.Hypervisor)
	mux.Handle("/system/", http.StripPrefix("/system", systemMux))

	return mux
}

// SetupMux creates and configures the main router
func SetupMux(profileHandler *handler.Profile, systemHandler *handler.System) *Router {
	router := Router{http.NewServeMux()}

	router.ServeMux.Handle("/api/v1/", http.StripPrefix("/api/v1", router.V1Handler(profileHandler, systemHandler)))

	router.ServeMux.HandleFunc("/heartbeat", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(200)
		writer.Write([]byte("i have not exploded"))
	})

	return &router
}
