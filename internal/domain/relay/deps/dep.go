// Package deps contains interface definitions for the relay domain dependencies
package deps

import (
	"context"

	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
)

// Extractor resolves a share link into direct asset URLs
type Extractor interface {
	// Extract calls the extraction API and parses its answer
	Extract(ctx context.Context, url string) (*entities.MediaDescriptor, error)
}

// Downloader streams a remote asset fully into memory
type Downloader interface {
	// Download reads url into memory, failing once more than limit bytes arrive
	Download(ctx context.Context, url string, limit int64) ([]byte, error)
}

// Sender defines the chat platform operations used by the relay
type Sender interface {
	// SendStatus replies to a message with a transient status text and returns its ID
	SendStatus(ctx context.Context, target entities.Target, text string) (messageID int, err error)

	// EditStatus replaces the text of a status message
	EditStatus(ctx context.Context, chatID int64, messageID int, text string) error

	// DeleteMessage removes a message from the chat
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// SendText sends a plain HTML message
	SendText(ctx context.Context, chatID int64, text string) error

	// SendVideo uploads one video file
	SendVideo(ctx context.Context, target entities.Target, file entities.UploadFile, caption string, hints entities.VideoHints) error

	// SendAudio uploads one audio file
	SendAudio(ctx context.Context, chatID int64, file entities.UploadFile, caption string) error

	// SendPhotoGroup uploads photos as one media group, caption on the first item
	SendPhotoGroup(ctx context.Context, chatID int64, files []entities.UploadFile, caption string) error

	// SendPhoto uploads a single photo
	SendPhoto(ctx context.Context, chatID int64, file entities.UploadFile, caption string) error
}
