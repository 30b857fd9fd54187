package telegram

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
)

// DefaultRequestTimeout is used when no per-call timeout is configured
const DefaultRequestTimeout = 2 * time.Minute

// Sender implements deps.Sender on top of the Bot API
type Sender struct {
	bot     *tgbot.Bot
	timeout time.Duration
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewSender creates a new Sender; perSecond <= 0 disables rate limiting
func NewSender(bot *tgbot.Bot, timeout time.Duration, perSecond float64, logger zerolog.Logger) *Sender {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}

	return &Sender{
		bot:     bot,
		timeout: timeout,
		limiter: limiter,
		logger:  logger,
	}
}

// begin applies the per-call timeout and waits for a rate limiter slot
func (s *Sender) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	msgCtx, cancel := context.WithTimeout(ctx, s.timeout)
	if err := s.limiter.Wait(msgCtx); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}
	return msgCtx, cancel, nil
}

// SendStatus implements deps.Sender interface
func (s *Sender) SendStatus(ctx context.Context, target entities.Target, text string) (int, error) {
	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	params := &tgbot.SendMessageParams{
		ChatID:    target.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if target.ReplyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                target.ReplyTo,
			AllowSendingWithoutReply: true,
		}
	}

	msg, err := s.bot.SendMessage(msgCtx, params)
	if err != nil {
		return 0, s.handleSendError(target.ChatID, "send status", err)
	}

	return msg.ID, nil
}

// EditStatus implements deps.Sender interface
func (s *Sender) EditStatus(ctx context.Context, chatID int64, messageID int, text string) error {
	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = s.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return s.handleSendError(chatID, "edit status", err)
	}

	return nil
}

// DeleteMessage implements deps.Sender interface
func (s *Sender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = s.bot.DeleteMessage(msgCtx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return s.handleSendError(chatID, "delete message", err)
	}

	return nil
}

// SendText implements deps.Sender interface
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = s.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return s.handleSendError(chatID, "send text", err)
	}

	return nil
}

// SendVideo implements deps.Sender interface
func (s *Sender) SendVideo(ctx context.Context, target entities.Target, file entities.UploadFile, caption string, hints entities.VideoHints) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	params := &tgbot.SendVideoParams{
		ChatID:            target.ChatID,
		Video:             &models.InputFileUpload{Filename: file.Name, Data: f},
		Caption:           caption,
		ParseMode:         models.ParseModeHTML,
		Width:             hints.Width,
		Height:            hints.Height,
		SupportsStreaming: hints.SupportsStreaming,
	}
	if target.ReplyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                target.ReplyTo,
			AllowSendingWithoutReply: true,
		}
	}

	if _, err := s.bot.SendVideo(msgCtx, params); err != nil {
		return s.handleSendError(target.ChatID, "send video", err)
	}

	s.logger.Debug().Int64("chat_id", target.ChatID).Str("file", file.Name).Msg("Video sent")
	return nil
}

// SendAudio implements deps.Sender interface
func (s *Sender) SendAudio(ctx context.Context, chatID int64, file entities.UploadFile, caption string) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = s.bot.SendAudio(msgCtx, &tgbot.SendAudioParams{
		ChatID:    chatID,
		Audio:     &models.InputFileUpload{Filename: file.Name, Data: f},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return s.handleSendError(chatID, "send audio", err)
	}

	return nil
}

// SendPhoto implements deps.Sender interface
func (s *Sender) SendPhoto(ctx context.Context, chatID int64, file entities.UploadFile, caption string) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	_, err = s.bot.SendPhoto(msgCtx, &tgbot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: file.Name, Data: f},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return s.handleSendError(chatID, "send photo", err)
	}

	return nil
}

// SendPhotoGroup implements deps.Sender interface.
// The platform rejects one-item groups, so a single file goes out as a photo.
func (s *Sender) SendPhotoGroup(ctx context.Context, chatID int64, files []entities.UploadFile, caption string) error {
	switch len(files) {
	case 0:
		return nil
	case 1:
		return s.SendPhoto(ctx, chatID, files[0], caption)
	}

	media := make([]models.InputMedia, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	for i, file := range files {
		f, err := os.Open(file.Path)
		if err != nil {
			return fmt.Errorf("open photo %d: %w", i, err)
		}
		closers = append(closers, f)

		item := &models.InputMediaPhoto{
			Media:           "attach://" + file.Name,
			MediaAttachment: f,
		}
		if i == 0 {
			item.Caption = caption
			item.ParseMode = models.ParseModeHTML
		}
		media = append(media, item)
	}

	msgCtx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := s.bot.SendMediaGroup(msgCtx, &tgbot.SendMediaGroupParams{
		ChatID: chatID,
		Media:  media,
	}); err != nil {
		return s.handleSendError(chatID, "send media group", err)
	}

	s.logger.Debug().Int64("chat_id", chatID).Int("media_count", len(files)).Msg("Media group sent")
	return nil
}

// handleSendError classifies Bot API errors; oversized payloads map to
// ErrPayloadTooLarge so callers can tell them apart.
func (s *Sender) handleSendError(chatID int64, op string, err error) error {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "Too Large"),
		strings.Contains(errorMsg, "too big"),
		strings.Contains(errorMsg, "413"):
		s.logger.Warn().Int64("chat_id", chatID).Str("op", op).Err(err).Msg("Payload rejected as too large")
		return fmt.Errorf("%w: %s: %v", relayerrors.ErrPayloadTooLarge, op, err)

	case strings.Contains(errorMsg, "Forbidden"):
		s.logger.Warn().Int64("chat_id", chatID).Str("op", op).Msg("User blocked the bot or chat not found")

	case strings.Contains(errorMsg, "Too Many Requests"):
		s.logger.Warn().Int64("chat_id", chatID).Str("op", op).Msg("Rate limit exceeded")

	default:
		s.logger.Error().Int64("chat_id", chatID).Str("op", op).Err(err).Msg("Bot API call failed")
	}

	return fmt.Errorf("%s: %w", op, err)
}
