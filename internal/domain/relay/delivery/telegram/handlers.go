// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/internal/domain/relay/consts"
	"github.com/mexanickx/mexanicke/internal/domain/relay/dto"
	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	"github.com/mexanickx/mexanicke/internal/domain/relay/usecase/buissines"
)

// Handlers contains Telegram update handlers
type Handlers struct {
	uc     *buissines.UseCase
	sender *Sender
	logger zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, sender *Sender, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		sender: sender,
		logger: logger,
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.logCommand(chatID, "/start")

	resp, err := h.uc.HandleStart(ctx, requesterOf(update.Message))
	if err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to handle /start")
		h.sendResponse(ctx, chatID, consts.MsgProcessingError)
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.logCommand(chatID, "/help")

	resp, err := h.uc.HandleHelp(ctx)
	if err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to handle /help")
		h.sendResponse(ctx, chatID, consts.MsgProcessingError)
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
}

// HandleLink handles text messages that contain a supported link
func (h *Handlers) HandleLink(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	req := &dto.LinkRequest{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
		Requester: requesterOf(msg),
	}

	outcome := h.uc.HandleLink(ctx, req)

	h.logger.Debug().
		Int64("chat_id", req.ChatID).
		Str("outcome", string(outcome)).
		Msg("Link message handled")
}

func (h *Handlers) sendResponse(ctx context.Context, chatID int64, text string) {
	if err := h.sender.SendText(ctx, chatID, text); err != nil {
		h.logger.Warn().Int64("chat_id", chatID).Err(err).Msg("Failed to send response")
	}
}

func (h *Handlers) logCommand(chatID int64, command string) {
	h.logger.Info().Int64("chat_id", chatID).Str("command", command).Msg("Command received")
}

// requesterOf extracts the sender identity; channel posts have no From
func requesterOf(msg *models.Message) entities.Requester {
	if msg.From == nil {
		return entities.Requester{ID: msg.Chat.ID, FullName: msg.Chat.Title}
	}

	return entities.Requester{
		ID:       msg.From.ID,
		FullName: strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName),
		Username: msg.From.Username,
	}
}
