package flyergen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"

	"github.com/loganlanou/snapsell/internal/imaging"
)

const defaultImageStyle = "photorealistic"

type imageGenerateRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

// GenerateProductImage creates a product photo from a text description via
// the image generation endpoint. Unlike flyer generation there is no local
// fallback for inventing a photo, so failures are returned to the caller.
func (g *Generator) GenerateProductImage(ctx context.Context, description, category, style string) (image.Image, error) {
	if !g.Configured() {
		return nil, errors.New("image generation requires a configured API client")
	}
	if style == "" {
		style = defaultImageStyle
	}

	var prompt string
	if category != "" {
		prompt = fmt.Sprintf("A %s image of a %s: %s. The image should be clean, well-lit, and on a plain background, suitable for a marketplace listing.", style, category, description)
	} else {
		prompt = fmt.Sprintf("A %s image of: %s. The image should be clean, well-lit, and on a plain background, suitable for a marketplace listing.", style, description)
	}

	reqBody, err := json.Marshal(imageGenerateRequest{
		Model:          g.cfg.Model,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/images/generations", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope imageDataResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(envelope.Data) == 0 || envelope.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("no image in API response")
	}

	img, err := imaging.DecodeBase64(envelope.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode generated image: %w", err)
	}
	return img, nil
}

// EnhanceProductImage asks the edit endpoint for a cleaned-up version of the
// product photo. On any failure the original image is returned unchanged.
func (g *Generator) EnhanceProductImage(ctx context.Context, img image.Image, description, category string) image.Image {
	if !g.Configured() {
		return img
	}

	var prompt string
	switch {
	case description != "" && category != "":
		prompt = fmt.Sprintf("Enhance this product image of a %s: %s. Make it look professional, well-lit, and suitable for a marketplace listing.", category, description)
	case description != "":
		prompt = fmt.Sprintf("Enhance this product image: %s. Make it look professional, well-lit, and suitable for a marketplace listing.", description)
	default:
		prompt = "Enhance this product image. Make it look professional, well-lit, and suitable for a marketplace listing."
	}

	enhanced, reason, err := g.editImage(ctx, img, prompt)
	if err != nil {
		slog.Warn("image enhancement failed, keeping original", "reason", reason, "error", err)
		return img
	}
	return enhanced
}
