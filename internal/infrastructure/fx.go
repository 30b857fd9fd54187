// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/mexanickx/mexanicke/internal/infrastructure/http"
	"github.com/mexanickx/mexanicke/internal/infrastructure/logger"
	"github.com/mexanickx/mexanicke/internal/infrastructure/metrics"
	"github.com/mexanickx/mexanicke/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	telegram.Module,
	http.Module,
)
