package sodaqbe

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/observability"
	"github.com/Aleph-Alpha/docstore/v1/provider"
	"github.com/Aleph-Alpha/docstore/v1/sodasql"
)

// FXModule replaces the application's provider.Provider with a Provider
// wrapping it. It is a plain option rather than an fx.Module so the
// decoration reaches the root scope:
//
//	app := fx.New(
//		sodasql.FXModule,
//		sodaqbe.FXModule,
//		fx.Supply(sqlConfig),
//	)
var FXModule = fx.Options(
	fx.Decorate(Decorate),
)

// DecorateParams groups the dependencies of Decorate.
type DecorateParams struct {
	fx.In

	Provider provider.Provider
	Conn     sodasql.Conn
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// Decorate wraps the injected provider.
func Decorate(params DecorateParams) provider.Provider {
	p := NewProvider(params.Provider, params.Conn, nil)
	if params.Logger != nil {
		p.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		p.WithObserver(params.Observer)
	}
	return p
}
