package edit

import (
	"fmt"
	"strings"
)

// Titan Image Generator v2 request schema:
// https://docs.aws.amazon.com/bedrock/latest/userguide/model-parameters-titan-image.html

type GenerationConfig struct {
	NumberOfImages int     `json:"numberOfImages"`
	Height         int     `json:"height"`
	Width          int     `json:"width"`
	CfgScale       float64 `json:"cfgScale"`
}

type InpaintingParams struct {
	Text      string `json:"text"`
	Image     string `json:"image"`
	MaskImage string `json:"maskImage,omitempty"`
}

type OutpaintingParams struct {
	Text            string `json:"text"`
	Image           string `json:"image"`
	OutPaintingMode string `json:"outPaintingMode"`
	MaskImage       string `json:"maskImage,omitempty"`
}

// ModelRequest is the wire body for bedrockruntime InvokeModel. Exactly
// one of the params variants is set, matching TaskType; the other is
// omitted from the marshaled JSON entirely.
type ModelRequest struct {
	TaskType              TaskType           `json:"taskType"`
	InPaintingParams      *InpaintingParams  `json:"inPaintingParams,omitempty"`
	OutPaintingParams     *OutpaintingParams `json:"outPaintingParams,omitempty"`
	ImageGenerationConfig GenerationConfig   `json:"imageGenerationConfig"`
}

type TaskType string

const (
	TaskInpainting  TaskType = ModeInpainting
	TaskOutpainting TaskType = ModeOutpainting
)

type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("Unsupported mode: %s", e.Mode)
}

// StripDataURL drops a data:<mime>;base64, prefix if one is present.
// Raw base64 never contains a comma, so already-stripped input passes
// through unchanged.
func StripDataURL(data string) string {
	if _, after, found := strings.Cut(data, ","); found {
		return after
	}
	return data
}

// Build maps a validated edit request onto the Titan v2 schema. Height
// and width are pinned to 512 regardless of what the caller sent.
func Build(r Request) (ModelRequest, error) {
	if r.Prompt == nil {
		return ModelRequest{}, &UnsupportedModeError{}
	}

	cfg := GenerationConfig{
		NumberOfImages: 1,
		Height:         512,
		Width:          512,
		CfgScale:       8.0,
	}
	if r.NumberOfImages != nil {
		cfg.NumberOfImages = *r.NumberOfImages
	}
	if r.CfgScale != nil {
		cfg.CfgScale = *r.CfgScale
	}

	image := StripDataURL(r.BaseImage)
	var mask string
	if r.Mask != "" {
		mask = StripDataURL(r.Mask)
	}

	switch r.Prompt.Mode {
	case ModeInpainting:
		return ModelRequest{
			TaskType: TaskInpainting,
			InPaintingParams: &InpaintingParams{
				Text:      r.Prompt.Text,
				Image:     image,
				MaskImage: mask,
			},
			ImageGenerationConfig: cfg,
		}, nil
	case ModeOutpainting:
		return ModelRequest{
			TaskType: TaskOutpainting,
			OutPaintingParams: &OutpaintingParams{
				Text:            r.Prompt.Text,
				Image:           image,
				OutPaintingMode: "DEFAULT",
				MaskImage:       mask,
			},
			ImageGenerationConfig: cfg,
		}, nil
	default:
		return ModelRequest{}, &UnsupportedModeError{Mode: r.Prompt.Mode}
	}
}
