package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/raspverry/desktop-partner/internal/command"
	agenthandler "github.com/raspverry/desktop-partner/internal/handler/agent"
	"github.com/raspverry/desktop-partner/internal/handler/bridge"
	commandhandler "github.com/raspverry/desktop-partner/internal/handler/command"
	memoryhandler "github.com/raspverry/desktop-partner/internal/handler/memory"
	middlewarePkg "github.com/raspverry/desktop-partner/internal/middleware"
	agentservice "github.com/raspverry/desktop-partner/internal/service/agent"
	memoryservice "github.com/raspverry/desktop-partner/internal/service/memory"
	"github.com/raspverry/desktop-partner/pkg/utils"
)

// NewRouter wires HTTP routes to core services. agentSvc may be nil when no
// model credentials are configured.
func NewRouter(registry *command.Registry, memorySvc *memoryservice.Service, agentSvc *agentservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	commandHandler := commandhandler.New(registry)
	bridgeHandler := bridge.New(registry)
	memoryHandler := memoryhandler.New(memorySvc)
	agentHandler := agenthandler.New(agentSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handleHealth)

		commandHandler.RegisterRoutes(api)
		bridgeHandler.RegisterRoutes(api)
		memoryHandler.RegisterRoutes(api)
		agentHandler.RegisterRoutes(api)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "backend"})
}
