package domain

import "strings"

// Ad is one candidate advertisement for the guide's ad panel.
// Image is either a remote URL or a local file name served from the
// images directory.
type Ad struct {
	URL   string `json:"url"`
	Image string `json:"image"`
	Alt   string `json:"alt"`
	Label string `json:"label"`
}

// ImageIsRemote reports whether the image reference is a full URL
// rather than a local file name.
func (a Ad) ImageIsRemote() bool {
	return strings.HasPrefix(a.Image, "http://") || strings.HasPrefix(a.Image, "https://")
}
