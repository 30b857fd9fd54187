package extractor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mexanickx/mexanicke/config"
	"github.com/mexanickx/mexanicke/internal/domain/relay/dto"
	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.ExtractorConfig{URL: srv.URL, Timeout: 5 * time.Second, UserAgent: "test-agent"}
	return NewClient(cfg, zerolog.Nop()).(*Client)
}

func TestExtract_Video(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		var req dto.ExtractRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "https://vm.tiktok.com/abc/", req.URL)
		require.Equal(t, 1, req.HD)

		_, _ = w.Write([]byte(`{"code":0,"msg":"success","data":{"play":"https://cdn/v.mp4","music":{"play_url":"https://cdn/a.mp3"}}}`))
	})

	desc, err := c.Extract(t.Context(), "https://vm.tiktok.com/abc/")
	require.NoError(t, err)
	require.Equal(t, entities.MediaKindVideo, desc.Kind)
	require.Equal(t, "https://cdn/v.mp4", desc.VideoURL)
	require.Equal(t, "https://cdn/a.mp3", desc.AudioURL)
	require.Empty(t, desc.PhotoURLs)
}

func TestExtract_AlbumWinsOverPlay(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"data":{"play":"https://cdn/slideshow.mp4","images":["https://cdn/1.jpg"," ","https://cdn/2.jpg"],"music":"https://cdn/a.mp3"}}`))
	})

	desc, err := c.Extract(t.Context(), "https://www.tiktok.com/@u/video/1")
	require.NoError(t, err)
	require.Equal(t, entities.MediaKindPhotoAlbum, desc.Kind)
	require.Equal(t, []string{"https://cdn/1.jpg", "https://cdn/2.jpg"}, desc.PhotoURLs)
	require.Empty(t, desc.VideoURL)
	require.Equal(t, "https://cdn/a.mp3", desc.AudioURL)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"non-zero code", http.StatusOK, `{"code":-1,"msg":"Url parsing is failed"}`, relayerrors.ErrAPIFailure},
		{"bad status", http.StatusBadGateway, `oops`, relayerrors.ErrAPIFailure},
		{"invalid json", http.StatusOK, `{"code":`, relayerrors.ErrAPIFailure},
		{"no data", http.StatusOK, `{"code":0}`, relayerrors.ErrNoMedia},
		{"no assets", http.StatusOK, `{"code":0,"data":{"music":{"play_url":"https://cdn/a.mp3"}}}`, relayerrors.ErrNoMedia},
		{"empty images list beats play", http.StatusOK, `{"code":0,"data":{"images":[],"play":"https://cdn/v.mp4"}}`, relayerrors.ErrEmptyAlbum},
		{"blank images beat play", http.StatusOK, `{"code":0,"data":{"images":[" "],"play":"https://cdn/v.mp4"}}`, relayerrors.ErrEmptyAlbum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			desc, err := c.Extract(t.Context(), "https://vt.tiktok.com/x/")
			require.Nil(t, desc)
			require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExtract_NullImagesIsVideo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"data":{"images":null,"play":"https://cdn/v.mp4"}}`))
	})

	desc, err := c.Extract(t.Context(), "https://vt.tiktok.com/x/")
	require.NoError(t, err)
	require.Equal(t, entities.MediaKindVideo, desc.Kind)
	require.Equal(t, "https://cdn/v.mp4", desc.VideoURL)
}

func TestExtract_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(&config.ExtractorConfig{URL: url, Timeout: time.Second}, zerolog.Nop())

	_, err := c.Extract(t.Context(), "https://vt.tiktok.com/x/")
	require.True(t, errors.Is(err, relayerrors.ErrAPIFailure))
}
