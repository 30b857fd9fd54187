package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/internal/domain/relay/consts"
	"github.com/mexanickx/mexanicke/internal/domain/relay/matcher"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/"+consts.CommandStart.Name, tgbot.MatchTypeExact, r.handlers.HandleStart)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/"+consts.CommandHelp.Name, tgbot.MatchTypeExact, r.handlers.HandleHelp)
	bot.RegisterHandlerRegexp(tgbot.HandlerTypeMessageText, matcher.Pattern(), r.handlers.HandleLink)

	r.logger.Info().Msg("All Telegram handlers registered successfully")
}

// RegisterCommands publishes the command menu
func (r *Router) RegisterCommands(ctx context.Context, bot *tgbot.Bot) error {
	commands := make([]models.BotCommand, 0, len(consts.AllCommands))
	for _, c := range consts.AllCommands {
		commands = append(commands, models.BotCommand{Command: c.Name, Description: c.Description})
	}

	_, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: commands})
	return err
}
