//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
)

func InitMainHandler(ctx context.Context, cfg envCfg, logger zerolog.Logger) (*MainHandler, func(), error) {
	wire.Build(
		NewMainHandler,
		ProvideRegistry,
		ProvideMetrics,
		ProvideMqttClient,
		ProvideSinks,
		ProvideStore,
		ProvideReporter,
		ProvideDevices,
	)
	return nil, nil, nil // wire will generate the result
}
