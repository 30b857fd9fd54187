package buissines

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	"github.com/mexanickx/mexanicke/internal/domain/relay/tempfile"
	"github.com/mexanickx/mexanicke/internal/infrastructure/metrics"
)

// fakeExtractor is a test double for deps.Extractor
type fakeExtractor struct {
	extractFunc func(ctx context.Context, url string) (*entities.MediaDescriptor, error)
	calls       int
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*entities.MediaDescriptor, error) {
	f.calls++
	return f.extractFunc(ctx, url)
}

// fakeDownloader is a test double for deps.Downloader
type fakeDownloader struct {
	downloadFunc func(ctx context.Context, url string, limit int64) ([]byte, error)
	urls         []string
}

func (f *fakeDownloader) Download(ctx context.Context, url string, limit int64) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.downloadFunc(ctx, url, limit)
}

type sentPhoto struct {
	file    entities.UploadFile
	caption string
	existed bool
}

type sentGroup struct {
	files   []entities.UploadFile
	widths  []int
	caption string
	existed bool
}

// fakeSender records every platform call; func fields override results
type fakeSender struct {
	mu sync.Mutex

	sendStatusFunc func() (int, error)
	editStatusFunc func() error
	sendVideoFunc  func(file entities.UploadFile) error
	sendAudioFunc  func(file entities.UploadFile) error
	sendGroupFunc  func(files []entities.UploadFile) error
	sendPhotoFunc  func(file entities.UploadFile) error

	calls    []string
	statuses []string
	edits    []string
	texts    []string
	deleted  []int
	videos   []sentPhoto
	hints    []entities.VideoHints
	targets  []entities.Target
	audios   []sentPhoto
	groups   []sentGroup
	photos   []sentPhoto
}

func (f *fakeSender) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeSender) SendStatus(_ context.Context, _ entities.Target, text string) (int, error) {
	f.record("status")
	f.statuses = append(f.statuses, text)
	if f.sendStatusFunc != nil {
		return f.sendStatusFunc()
	}
	return 100, nil
}

func (f *fakeSender) EditStatus(_ context.Context, _ int64, _ int, text string) error {
	f.record("edit")
	f.edits = append(f.edits, text)
	if f.editStatusFunc != nil {
		return f.editStatusFunc()
	}
	return nil
}

func (f *fakeSender) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.record("delete")
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSender) SendText(_ context.Context, _ int64, text string) error {
	f.record("text")
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeSender) SendVideo(_ context.Context, target entities.Target, file entities.UploadFile, caption string, hints entities.VideoHints) error {
	f.record("video")
	f.videos = append(f.videos, sentPhoto{file: file, caption: caption, existed: exists(file.Path)})
	f.hints = append(f.hints, hints)
	f.targets = append(f.targets, target)
	if f.sendVideoFunc != nil {
		return f.sendVideoFunc(file)
	}
	return nil
}

func (f *fakeSender) SendAudio(_ context.Context, _ int64, file entities.UploadFile, caption string) error {
	f.record("audio")
	f.audios = append(f.audios, sentPhoto{file: file, caption: caption, existed: exists(file.Path)})
	if f.sendAudioFunc != nil {
		return f.sendAudioFunc(file)
	}
	return nil
}

func (f *fakeSender) SendPhotoGroup(_ context.Context, _ int64, files []entities.UploadFile, caption string) error {
	f.record("group")
	g := sentGroup{files: files, caption: caption, existed: true}
	for _, file := range files {
		g.existed = g.existed && exists(file.Path)
		g.widths = append(g.widths, width(file.Path))
	}
	f.groups = append(f.groups, g)
	if f.sendGroupFunc != nil {
		return f.sendGroupFunc(files)
	}
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, _ int64, file entities.UploadFile, caption string) error {
	f.record("photo")
	f.photos = append(f.photos, sentPhoto{file: file, caption: caption, existed: exists(file.Path)})
	if f.sendPhotoFunc != nil {
		return f.sendPhotoFunc(file)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// width decodes the image header; test photos encode their index in the width
func width(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return -1
	}
	return cfg.Width
}

// testPhoto returns a small PNG that is w pixels wide
func testPhoto(t *testing.T, w int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, 2))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), G: 10, B: 200, A: 255})
		img.Set(x, 1, color.RGBA{R: 10, G: uint8(x), B: 100, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testPhotos(t *testing.T, n int) [][]byte {
	t.Helper()
	photos := make([][]byte, n)
	for i := range photos {
		photos[i] = testPhoto(t, i+1)
	}
	return photos
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func newTestStore(t *testing.T, m *metrics.Metrics) *tempfile.Store {
	t.Helper()
	store, err := tempfile.NewStore(t.TempDir(), zerolog.Nop(), m)
	require.NoError(t, err)
	return store
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, list, "temp files left behind")
}
