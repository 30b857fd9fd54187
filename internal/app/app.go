// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/mexanickx/mexanicke/config"
	"github.com/mexanickx/mexanicke/internal/domain"
	"github.com/mexanickx/mexanicke/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, telegram bot, http)
		infrastructure.Module,

		// Domain (relay pipeline)
		domain.Module,
	)
}
