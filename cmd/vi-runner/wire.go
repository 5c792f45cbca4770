//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/google/wire"

	"github.com/lixenwraith/vi-runner/config"
)

func initializeApp(cfg *config.Config) (*app, func(), error) {
	wire.Build(
		provideLogger,
		provideScreen,
		provideKeyboard,
		provideFrame,
		provideSounds,
		provideSession,
		provideRenderer,
		newApp,
	)
	return nil, nil, nil
}
