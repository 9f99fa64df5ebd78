package card

import (
	"log/slog"

	httpadapter "cardhub/contexts/card-directory/card-service/adapters/http"
	"cardhub/contexts/card-directory/card-service/adapters/memory"
	"cardhub/contexts/card-directory/card-service/application/commands"
	"cardhub/contexts/card-directory/card-service/application/queries"
	"cardhub/contexts/card-directory/card-service/ports"
)

// Module is the card-service composition root exposed to runtime wiring.
type Module struct {
	Handler    httpadapter.Handler
	PurgeOwner commands.PurgeOwnerUseCase
	Store      *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Users       ports.UserDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		ListCards: queries.ListCardsUseCase{Repository: deps.Repository},
		ListCardsByOwner: queries.ListCardsByOwnerUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		GetCard: queries.GetCardUseCase{Repository: deps.Repository},
		CreateCard: commands.CreateCardUseCase{
			Repository:  deps.Repository,
			Users:       deps.Users,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		UpdateCard: commands.UpdateCardUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		ToggleLike: commands.ToggleLikeUseCase{
			Repository: deps.Repository,
			Users:      deps.Users,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		DeleteCard: commands.DeleteCardUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		PurgeOwner: commands.PurgeOwnerUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger, users ports.UserDirectory) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Users:       users,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
