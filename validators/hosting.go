package validators

import (
	"net/url"
	"regexp"
	"strings"
)

// Lesson videos must be embeddable; only the YouTube embed form is accepted.
var youtubeEmbedRe = regexp.MustCompile(`^https://www\.youtube\.com/embed/[a-zA-Z0-9_-]{11}(\?.*)?$`)

// Hosts trusted to serve course attachments. No existence or content check
// is performed, only the host is examined.
var trustedAttachmentHosts = []string{
	"drive.google.com",
	"docs.google.com",
	"www.dropbox.com",
	"onedrive.live.com",
	"github.com",
	"www.youtube.com",
}

// Hosts trusted to serve course cover images.
var trustedImageHosts = []string{
	"images.unsplash.com",
	"images.pexels.com",
	"i.imgur.com",
	"raw.githubusercontent.com",
}

// IsEmbeddableVideoURL reports whether rawURL is a YouTube embed URL.
func IsEmbeddableVideoURL(rawURL string) bool {
	return youtubeEmbedRe.MatchString(rawURL)
}

// IsTrustedAttachmentURL reports whether rawURL points at an allow-listed
// attachment host over https.
func IsTrustedAttachmentURL(rawURL string) bool {
	return hasTrustedHost(rawURL, trustedAttachmentHosts)
}

// IsTrustedImageURL reports whether rawURL points at an allow-listed image
// host over https.
func IsTrustedImageURL(rawURL string) bool {
	return hasTrustedHost(rawURL, trustedImageHosts)
}

func hasTrustedHost(rawURL string, hosts []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, trusted := range hosts {
		if host == trusted {
			return true
		}
	}
	return false
}
