package models

import "time"

// GeneratedImage is a composed PNG held by the registry under an opaque ID
type GeneratedImage struct {
	ID        string
	PNG       []byte
	Filename  string
	CreatedAt time.Time
}

// URL returns the retrieval path for the image
func (g GeneratedImage) URL() string {
	return "/qr/" + g.ID + ".png"
}
