package image

import (
	"context"

	"github.com/dmorgan81/pixelpatch/internal/edit"
)

// Response is the body Titan returns: generated images on success, or
// an in-band error string with no images.
type Response struct {
	Images []string `json:"images"`
	Error  string   `json:"error,omitempty"`
}

type Generator interface {
	Generate(context.Context, edit.ModelRequest) (Response, error)
}
