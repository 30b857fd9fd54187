// Package buissines contains business logic for the relay domain
package buissines

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/config"
	"github.com/mexanickx/mexanicke/internal/domain/relay/caption"
	"github.com/mexanickx/mexanicke/internal/domain/relay/consts"
	"github.com/mexanickx/mexanicke/internal/domain/relay/deps"
	"github.com/mexanickx/mexanicke/internal/domain/relay/dto"
	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
	"github.com/mexanickx/mexanicke/internal/domain/relay/matcher"
	"github.com/mexanickx/mexanicke/internal/infrastructure/metrics"
	pkgerrors "github.com/mexanickx/mexanicke/pkg/errors"
)

// statusTimeout bounds the final edit of the status message
const statusTimeout = 15 * time.Second

// MediaFetcher resolves a link into in-memory media
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (*entities.FetchedMedia, error)
}

// MediaPackager uploads fetched media
type MediaPackager interface {
	DeliverVideo(ctx context.Context, target entities.Target, data []byte, caption string) error
	DeliverAudio(ctx context.Context, chatID int64, data []byte, caption string) error
	DeliverAlbum(ctx context.Context, chatID int64, photos [][]byte, caption string) error
}

// UseCase drives one link message from status reply to delivered media
type UseCase struct {
	fetcher     MediaFetcher
	packager    MediaPackager
	sender      deps.Sender
	botHandle   string
	taskTimeout time.Duration
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	fetcher MediaFetcher,
	packager MediaPackager,
	sender deps.Sender,
	tgCfg *config.TelegramConfig,
	mediaCfg *config.MediaConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		fetcher:     fetcher,
		packager:    packager,
		sender:      sender,
		botHandle:   tgCfg.BotHandle,
		taskTimeout: mediaCfg.TaskTimeout,
		metrics:     m,
		logger:      logger,
	}
}

// HandleStart handles /start command
func (uc *UseCase) HandleStart(ctx context.Context, requester entities.Requester) (*dto.CommandResponse, error) {
	uc.logger.Info().
		Int64("user_id", requester.ID).
		Str("username", requester.Username).
		Msg("User started bot")

	return &dto.CommandResponse{Message: consts.HelpText}, nil
}

// HandleHelp handles /help command
func (uc *UseCase) HandleHelp(ctx context.Context) (*dto.CommandResponse, error) {
	return &dto.CommandResponse{Message: consts.HelpText}, nil
}

// task is the per-message state
type task struct {
	ctx      context.Context
	req      *dto.LinkRequest
	statusID int
	state    entities.TaskState
	log      zerolog.Logger
}

func (t *task) enter(state entities.TaskState) {
	t.state = state
	t.log.Debug().Str("state", string(state)).Msg("Task state changed")
}

// HandleLink processes one message carrying a link. It never returns an
// error: every failure ends in a status message and an Outcome.
func (uc *UseCase) HandleLink(ctx context.Context, req *dto.LinkRequest) (outcome entities.Outcome) {
	start := time.Now()
	uc.metrics.TasksInFlight.Inc()
	defer func() {
		uc.metrics.TasksInFlight.Dec()
		uc.metrics.TaskDuration.Observe(time.Since(start).Seconds())
		uc.metrics.TasksTotal.WithLabelValues(string(outcome)).Inc()
	}()

	if uc.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.taskTimeout)
		defer cancel()
	}

	t := &task{
		ctx: ctx,
		req: req,
		log: uc.logger.With().
			Str("task_id", uuid.NewString()).
			Int64("chat_id", req.ChatID).
			Int("message_id", req.MessageID).
			Int64("user_id", req.Requester.ID).
			Logger(),
	}

	defer func() {
		if r := recover(); r != nil {
			t.log.Error().
				Interface("panic", r).
				Str("state", string(t.state)).
				Bytes("stack", debug.Stack()).
				Msg("Task panicked")
			outcome = uc.fail(t, entities.OutcomeError, consts.MsgProcessingError, nil)
		}
	}()

	t.enter(entities.TaskStateReceived)
	statusID, err := uc.sender.SendStatus(ctx, entities.Target{ChatID: req.ChatID, ReplyTo: req.MessageID}, consts.MsgProcessing)
	if err != nil {
		t.log.Warn().Err(err).Msg("Failed to send status message")
	}
	t.statusID = statusID

	t.enter(entities.TaskStateValidating)
	link, ok := matcher.First(req.Text)
	if !ok {
		return uc.fail(t, entities.OutcomeInvalidLink, consts.MsgInvalidLink, relayerrors.ErrInvalidLink)
	}
	t.log = t.log.With().Str("link", link).Logger()

	t.enter(entities.TaskStateFetching)
	media, err := uc.fetcher.Fetch(ctx, link)
	if err != nil {
		if pkgerrors.IsTooLargeError(err) {
			return uc.fail(t, entities.OutcomeTooLarge, consts.MsgTooLarge, err)
		}
		return uc.fail(t, entities.OutcomeFetchFailed, consts.MsgFetchFailed, err)
	}

	t.enter(entities.TaskStateDelivering)
	text := caption.Build(req.Requester, uc.botHandle)

	if len(media.Audio) > 0 {
		if err := uc.packager.DeliverAudio(ctx, req.ChatID, media.Audio, text); err != nil {
			t.log.Warn().Err(err).Msg("Audio delivery failed")
		}
	}

	if media.IsAlbum {
		if len(media.Items) == 0 {
			return uc.fail(t, entities.OutcomeFetchFailed, consts.MsgFetchFailed, relayerrors.ErrEmptyAlbum)
		}

		if err := uc.packager.DeliverAlbum(ctx, req.ChatID, media.Items, text); err != nil {
			if errors.Is(err, relayerrors.ErrEmptyAlbum) {
				return uc.fail(t, entities.OutcomeFetchFailed, consts.MsgFetchFailed, err)
			}
			return uc.fail(t, entities.OutcomeError, consts.MsgProcessingError, err)
		}
	} else {
		if len(media.Items) == 0 {
			return uc.fail(t, entities.OutcomeFetchFailed, consts.MsgFetchFailed, relayerrors.ErrNoMedia)
		}

		target := entities.Target{ChatID: req.ChatID, ReplyTo: req.MessageID}
		if err := uc.packager.DeliverVideo(ctx, target, media.Items[0], text); err != nil {
			if pkgerrors.IsTooLargeError(err) {
				return uc.fail(t, entities.OutcomeTooLarge, consts.MsgTooLarge, err)
			}
			return uc.fail(t, entities.OutcomeError, consts.MsgProcessingError, err)
		}
	}

	t.enter(entities.TaskStateDone)
	if t.statusID != 0 {
		if err := uc.sender.DeleteMessage(ctx, req.ChatID, t.statusID); err != nil {
			t.log.Warn().Err(err).Msg("Failed to delete status message")
		}
	}

	t.log.Info().Dur("elapsed", time.Since(start)).Msg("Link delivered")
	return entities.OutcomeDone
}

// fail moves the task to the failed state and shows text to the user.
// Internal error details only go to the log.
func (uc *UseCase) fail(t *task, outcome entities.Outcome, text string, cause error) entities.Outcome {
	t.log.Warn().
		Err(cause).
		Str("state", string(t.state)).
		Str("outcome", string(outcome)).
		Msg("Task failed")
	t.enter(entities.TaskStateFailed)

	// the task context may already be done
	ctx, cancel := context.WithTimeout(context.WithoutCancel(t.ctx), statusTimeout)
	defer cancel()

	if t.statusID != 0 {
		err := uc.sender.EditStatus(ctx, t.req.ChatID, t.statusID, text)
		if err == nil {
			return outcome
		}
		t.log.Warn().Err(err).Msg("Failed to edit status message")
	}

	if err := uc.sender.SendText(ctx, t.req.ChatID, text); err != nil {
		t.log.Error().Err(err).Msg("Failed to notify user")
	}

	return outcome
}
