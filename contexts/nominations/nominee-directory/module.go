package nomineedirectory

import (
	"log/slog"

	httpadapter "trustvote/contexts/nominations/nominee-directory/adapters/http"
	"trustvote/contexts/nominations/nominee-directory/adapters/memory"
	"trustvote/contexts/nominations/nominee-directory/application/commands"
	"trustvote/contexts/nominations/nominee-directory/application/queries"
	"trustvote/contexts/nominations/nominee-directory/domain/entities"
	"trustvote/contexts/nominations/nominee-directory/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Nominees ports.NomineeRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	directoryUseCase := commands.DirectoryUseCase{
		Nominees: deps.Nominees,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	queryUseCase := queries.DirectoryQueryUseCase{
		Nominees: deps.Nominees,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Directory: directoryUseCase,
			Queries:   queryUseCase,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Nominee, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Nominees: store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
