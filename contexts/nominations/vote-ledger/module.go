package voteledger

import (
	"log/slog"
	"time"

	httpadapter "trustvote/contexts/nominations/vote-ledger/adapters/http"
	"trustvote/contexts/nominations/vote-ledger/adapters/memory"
	"trustvote/contexts/nominations/vote-ledger/application/commands"
	"trustvote/contexts/nominations/vote-ledger/application/queries"
	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	"trustvote/contexts/nominations/vote-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ledger      ports.LedgerStore
	Ranks       ports.RankReader
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	MaxAttempts int
	RetryDelay  time.Duration
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	ledgerUseCase := commands.LedgerUseCase{
		Ledger:      deps.Ledger,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		MaxAttempts: deps.MaxAttempts,
		RetryDelay:  deps.RetryDelay,
		Logger:      deps.Logger,
	}
	rankUseCase := queries.RankUseCase{
		Reader: deps.Ranks,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ledger: ledgerUseCase,
			Ranks:  rankUseCase,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.RankEntry, logger *slog.Logger) Module {
	store := memory.NewStore()
	for _, entry := range seed {
		store.SetNominee(entry)
	}
	module := NewModule(Dependencies{
		Ledger: store,
		Ranks:  store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
