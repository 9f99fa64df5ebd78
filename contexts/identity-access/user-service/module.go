package user

import (
	"log/slog"

	"cardhub/contexts/identity-access/user-service/adapters/credentials"
	httpadapter "cardhub/contexts/identity-access/user-service/adapters/http"
	"cardhub/contexts/identity-access/user-service/adapters/memory"
	"cardhub/contexts/identity-access/user-service/application/commands"
	"cardhub/contexts/identity-access/user-service/application/queries"
	"cardhub/contexts/identity-access/user-service/ports"

	"golang.org/x/crypto/bcrypt"
)

// Module is the user-service composition root exposed to runtime wiring.
type Module struct {
	Handler   httpadapter.Handler
	SeedAdmin commands.SeedAdminUseCase
	Store     *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenIssuer
	Cards       ports.CardPurger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		Register: commands.RegisterUserUseCase{
			Repository:  deps.Repository,
			Hasher:      deps.Hasher,
			Tokens:      deps.Tokens,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		Login: commands.LoginUseCase{
			Repository: deps.Repository,
			Hasher:     deps.Hasher,
			Tokens:     deps.Tokens,
			Logger:     deps.Logger,
		},
		UpdateUser: commands.UpdateUserUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		ToggleBusiness: commands.ToggleBusinessUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		DeleteUser: commands.DeleteUserUseCase{
			Repository: deps.Repository,
			Cards:      deps.Cards,
			Logger:     deps.Logger,
		},
		GetUser:    queries.GetUserUseCase{Repository: deps.Repository},
		GetProfile: queries.GetProfileUseCase{Repository: deps.Repository},
		ListUsers: queries.ListUsersUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		SeedAdmin: commands.SeedAdminUseCase{
			Repository:  deps.Repository,
			Hasher:      deps.Hasher,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and the cheapest bcrypt cost.
func NewInMemoryModule(logger *slog.Logger, tokens ports.TokenIssuer, cards ports.CardPurger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Hasher:      credentials.NewBcryptHasher(bcrypt.MinCost),
		Tokens:      tokens,
		Cards:       cards,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
