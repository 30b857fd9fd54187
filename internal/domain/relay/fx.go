// Package relay contains the link relay domain module
package relay

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/mexanickx/mexanicke/config"
	"github.com/mexanickx/mexanicke/internal/domain/relay/consts"
	telegramDelivery "github.com/mexanickx/mexanicke/internal/domain/relay/delivery/telegram"
	"github.com/mexanickx/mexanicke/internal/domain/relay/deps"
	"github.com/mexanickx/mexanicke/internal/domain/relay/imaging"
	"github.com/mexanickx/mexanicke/internal/domain/relay/repository/http_clients/extractor"
	"github.com/mexanickx/mexanicke/internal/domain/relay/repository/http_clients/media"
	"github.com/mexanickx/mexanicke/internal/domain/relay/tempfile"
	"github.com/mexanickx/mexanicke/internal/domain/relay/usecase/buissines"
	"github.com/mexanickx/mexanicke/internal/infrastructure/metrics"
	"github.com/mexanickx/mexanicke/internal/infrastructure/telegram"
)

// Module provides relay domain components for fx dependency injection
var Module = fx.Module("relay",
	// Repository
	fx.Provide(extractor.NewClient),
	fx.Provide(media.NewDownloader),
	fx.Provide(provideTempStore),
	fx.Provide(provideNormalizer),

	// Delivery - Telegram sender (outbound)
	fx.Provide(provideSender),
	fx.Provide(func(s *telegramDelivery.Sender) deps.Sender { return s }),

	// UseCase
	fx.Provide(buissines.NewFetcher),
	fx.Provide(buissines.NewPackager),
	fx.Provide(func(f *buissines.Fetcher) buissines.MediaFetcher { return f }),
	fx.Provide(func(p *buissines.Packager) buissines.MediaPackager { return p }),
	fx.Provide(buissines.NewUseCase),

	// Delivery - Telegram handlers (inbound)
	fx.Provide(telegramDelivery.NewHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	fx.Invoke(registerRoutes),
)

func provideTempStore(cfg *config.MediaConfig, logger zerolog.Logger, m *metrics.Metrics) (*tempfile.Store, error) {
	return tempfile.NewStore(cfg.TempDir, logger.With().Str("component", "tempfile").Logger(), m)
}

func provideNormalizer() *imaging.Normalizer {
	return imaging.NewNormalizer(consts.MaxPhotoSize)
}

func provideSender(bot *telegram.Bot, cfg *config.TelegramConfig, logger zerolog.Logger) *telegramDelivery.Sender {
	return telegramDelivery.NewSender(bot.Raw(), cfg.RequestTimeout, cfg.RateLimit, logger.With().Str("component", "sender").Logger())
}

// registerRoutes attaches handlers before polling starts and publishes the command menu
func registerRoutes(lc fx.Lifecycle, router *telegramDelivery.Router, bot *telegram.Bot, logger zerolog.Logger) {
	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := router.RegisterCommands(ctx, bot.Raw()); err != nil {
				logger.Warn().Err(err).Msg("Failed to register bot commands")
			}
			return nil
		},
	})
}
