package consts

const (
	MB = 1024 * 1024

	// MaxVideoSize is the ceiling for a fetched video
	MaxVideoSize = 45 * MB
	// MaxPhotoSize is the ceiling photos are normalized to
	MaxPhotoSize = 10 * MB
	// MaxAssetSize bounds a single image or audio download
	MaxAssetSize = 50 * MB
	// MaxRequestSize bounds everything fetched for one link
	MaxRequestSize = 200 * MB
	// MaxPhotosPerGroup is the platform media group limit
	MaxPhotosPerGroup = 10

	VideoWidth  = 1080
	VideoHeight = 1920
)
