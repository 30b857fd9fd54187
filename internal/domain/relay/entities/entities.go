// Package entities contains domain entities
package entities

// MediaKind tells which asset list of a descriptor is active
type MediaKind int

const (
	MediaKindVideo MediaKind = iota
	MediaKindPhotoAlbum
)

func (k MediaKind) String() string {
	if k == MediaKindPhotoAlbum {
		return "photo_album"
	}
	return "video"
}

// MediaDescriptor is the parsed extraction API answer
type MediaDescriptor struct {
	Kind      MediaKind
	VideoURL  string   // set iff Kind == MediaKindVideo
	PhotoURLs []string // set iff Kind == MediaKindPhotoAlbum
	AudioURL  string   // optional, independent of Kind
}

// FetchedMedia holds all assets of one link in memory
type FetchedMedia struct {
	Items   [][]byte
	Audio   []byte
	IsAlbum bool
}

// TotalSize returns the number of bytes held
func (m *FetchedMedia) TotalSize() int {
	total := len(m.Audio)
	for _, item := range m.Items {
		total += len(item)
	}
	return total
}

// Requester identifies the user who sent the link
type Requester struct {
	ID       int64
	FullName string
	Username string
}

// Target is where delivered media goes
type Target struct {
	ChatID  int64
	ReplyTo int
}

// UploadFile is a file on disk handed to the platform upload API
type UploadFile struct {
	Path string
	Name string
}

// VideoHints are passed along with a video upload
type VideoHints struct {
	Width             int
	Height            int
	SupportsStreaming bool
}
