// Package dto contains data transfer objects for the relay domain
package dto

import (
	"encoding/json"
	"strings"

	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
)

// LinkRequest is one inbound text message carrying a link
type LinkRequest struct {
	ChatID    int64
	MessageID int
	Text      string
	Requester entities.Requester
}

// CommandResponse represents a response for bot commands
type CommandResponse struct {
	Message string `json:"message"`
}

// ExtractRequest is the extraction API request body
type ExtractRequest struct {
	URL string `json:"url"`
	HD  int    `json:"hd"`
}

// ExtractResponse is the extraction API response body
type ExtractResponse struct {
	Code int          `json:"code"`
	Msg  string       `json:"msg"`
	Data *ExtractData `json:"data"`
}

// ExtractData holds direct asset URLs
type ExtractData struct {
	Play   string          `json:"play,omitempty"`
	Images []string        `json:"images,omitempty"` // nil when absent, empty when []
	Music  json.RawMessage `json:"music,omitempty"`
}

type musicObject struct {
	PlayURL string `json:"play_url"`
}

// MusicURL returns the audio URL whether music is an object or a bare string
func (d *ExtractData) MusicURL() string {
	if len(d.Music) == 0 {
		return ""
	}

	var obj musicObject
	if err := json.Unmarshal(d.Music, &obj); err == nil {
		return strings.TrimSpace(obj.PlayURL)
	}

	var s string
	if err := json.Unmarshal(d.Music, &s); err == nil {
		return strings.TrimSpace(s)
	}

	return ""
}
