package edit

import "strings"

const (
	ModeInpainting  = "INPAINTING"
	ModeOutpainting = "OUTPAINTING"
)

type Prompt struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type Request struct {
	Prompt         *Prompt  `json:"prompt"`
	BaseImage      string   `json:"base_image"`
	Mask           string   `json:"mask,omitempty"`
	NumberOfImages *int     `json:"numberOfImages,omitempty"`
	CfgScale       *float64 `json:"cfgScale,omitempty"`
}

// Validate checks every rule independently and returns all violations,
// so a caller fixing a bad request sees the full list at once.
func (r Request) Validate() []string {
	var errs []string

	if r.Prompt == nil {
		errs = append(errs, "'prompt' object is required")
	} else {
		if strings.TrimSpace(r.Prompt.Text) == "" {
			errs = append(errs, "'prompt.text' is required and cannot be empty")
		}
		if r.Prompt.Mode != ModeInpainting && r.Prompt.Mode != ModeOutpainting {
			errs = append(errs, "'prompt.mode' must be 'INPAINTING' or 'OUTPAINTING'")
		}
	}

	if r.BaseImage == "" {
		errs = append(errs, "'base_image' (base64) is required")
	}

	if r.Prompt != nil && r.Prompt.Mode == ModeInpainting && r.Mask == "" {
		errs = append(errs, "'mask' (base64) is required for INPAINTING mode")
	}

	return errs
}
