// ABOUTME: Extracts YouTube video ids from watch, short, embed and youtu.be URLs
// ABOUTME: Bare 11-character ids are accepted as-is by ResolveVideoID
package transcript

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsVideoID reports whether s looks like a bare YouTube video id
func IsVideoID(s string) bool {
	return videoIDRe.MatchString(s)
}

// ExtractVideoID pulls the video id out of a YouTube URL
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(u.Path, "/")

	var id string
	switch host {
	case "youtu.be":
		id, _, _ = strings.Cut(path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"),
			strings.HasPrefix(path, "embed/"),
			strings.HasPrefix(path, "live/"),
			strings.HasPrefix(path, "v/"):
			_, rest, _ := strings.Cut(path, "/")
			id, _, _ = strings.Cut(rest, "/")
		}
	}

	if !IsVideoID(id) {
		return "", false
	}
	return id, true
}

// ResolveVideoID accepts either a bare id or a URL
func ResolveVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if IsVideoID(input) {
		return input, true
	}
	return ExtractVideoID(input)
}
