package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst_Variants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "user video path",
			text: "https://www.tiktok.com/@user.name/video/7234567890123456789",
			want: "https://www.tiktok.com/@user.name/video/7234567890123456789",
		},
		{
			name: "bare domain",
			text: "https://tiktok.com/@someone/video/7234567890",
			want: "https://tiktok.com/@someone/video/7234567890",
		},
		{
			name: "mobile subdomain",
			text: "https://m.tiktok.com/@someone/video/7234567890",
			want: "https://m.tiktok.com/@someone/video/7234567890",
		},
		{
			name: "username without at sign",
			text: "https://www.tiktok.com/some_user/video/7234567890",
			want: "https://www.tiktok.com/some_user/video/7234567890",
		},
		{
			name: "vm share link",
			text: "https://vm.tiktok.com/ZMhvqABC1/",
			want: "https://vm.tiktok.com/ZMhvqABC1/",
		},
		{
			name: "vt share link over http",
			text: "http://vt.tiktok.com/ZSjAbc12/",
			want: "http://vt.tiktok.com/ZSjAbc12/",
		},
		{
			name: "share link starting with digits",
			text: "https://vm.tiktok.com/123abc/",
			want: "https://vm.tiktok.com/123abc/",
		},
		{
			name: "t path with numeric id",
			text: "https://www.tiktok.com/t/123456789/",
			want: "https://www.tiktok.com/t/123456789/",
		},
		{
			name: "embed path",
			text: "https://www.tiktok.com/embed/v2/7234567890",
			want: "https://www.tiktok.com/embed/v2/7234567890",
		},
		{
			name: "numeric id path",
			text: "https://www.tiktok.com/7234567890",
			want: "https://www.tiktok.com/7234567890",
		},
		{
			name: "surrounded by text with query string",
			text: "look at this https://www.tiktok.com/@a/video/42?is_from_webapp=1&lang=en wow",
			want: "https://www.tiktok.com/@a/video/42?is_from_webapp=1&lang=en",
		},
		{
			name: "share link on its own line",
			text: "lol\nhttps://vm.tiktok.com/ZMabc/\nsee",
			want: "https://vm.tiktok.com/ZMabc/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := First(tt.text)
			require.True(t, ok, "expected a match in %q", tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirst_NoMatch(t *testing.T) {
	texts := []string{
		"",
		"hello there",
		"https://www.youtube.com/watch?v=123",
		"tiktok.com/@user/video/123",
		"https://www.tiktok.com/@user",
		"https://nottiktok.com/123",
		"https://www.tiktok.com/music/some-song",
	}

	for _, text := range texts {
		got, ok := First(text)
		assert.False(t, ok, "unexpected match %q in %q", got, text)
		assert.Empty(t, FindAll(text))
	}
}

func TestFindAll_Order(t *testing.T) {
	text := "first https://vm.tiktok.com/ZMone/ then https://www.tiktok.com/@b/video/99"

	got := FindAll(text)

	require.Len(t, got, 2)
	assert.Equal(t, "https://vm.tiktok.com/ZMone/", got[0])
	assert.Equal(t, "https://www.tiktok.com/@b/video/99", got[1])

	first, ok := First(text)
	require.True(t, ok)
	assert.Equal(t, got[0], first)
}

func TestPattern_RoutesSameAsFirst(t *testing.T) {
	assert.True(t, Pattern().MatchString("see https://vt.tiktok.com/ZSx/"))
	assert.False(t, Pattern().MatchString("see https://example.com/"))
}
