package greeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	greetingsvc "github.com/janisto/greeting-api/internal/service/greeting"
)

// Register wires the greeting route into the provided API router.
func Register(api huma.API, svc greetingsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        "/greeting",
		Summary:     "Get a greeting",
		Description: "Greets the given name (default World) and stamps the greeting with the next issue number.",
		Tags:        []string{"Greeting"},
	}, func(ctx context.Context, input *GetInput) (*GetOutput, error) {
		g := svc.Greet(ctx, input.Name)
		return &GetOutput{Body: Greeting{ID: g.ID, Content: g.Content}}, nil
	})
}
