package sodarest

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/observability"
	"github.com/Aleph-Alpha/docstore/v1/provider"
)

// FXModule provides the REST client both as *Client and as
// provider.Provider.
var FXModule = fx.Module("sodarest",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			ProvideProvider,
			fx.As(new(provider.Provider)),
		),
	),
)

func ProvideProvider(c *Client) *Client {
	return c
}

// Params groups the dependencies of NewClientWithDI. Logger and Observer
// are optional.
type Params struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI builds the client from injected dependencies.
//
// Example:
//
//	app := fx.New(
//		logger.FXModule,
//		sodarest.FXModule,
//		fx.Provide(func() sodarest.Config { return loadRESTConfig() }),
//	)
func NewClientWithDI(params Params) (*Client, error) {
	c, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		c.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		c.WithObserver(params.Observer)
	}
	return c, nil
}
