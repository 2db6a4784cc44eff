package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/greeting-api/internal/http/health"
	"github.com/janisto/greeting-api/internal/http/v1/greeting"
	greetingsvc "github.com/janisto/greeting-api/internal/service/greeting"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, greetings greetingsvc.Service) {
	health.Register(api, greetings)
	greeting.Register(api, greetings)
}
