// Package flyergen orchestrates flyer production: it builds the instruction
// prompt, calls the remote image edit endpoint when enabled, and falls back
// to the local compositor on any remote failure.
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
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/loganlanou/snapsell/internal/flyer"
	"github.com/loganlanou/snapsell/internal/imaging"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-image-1"
	defaultTimeout = 120 * time.Second
)

// ErrMissingFields is the only error Generate propagates: flyer generation
// needs either a custom prompt or the full title/features/price set.
var ErrMissingFields = errors.New("either a custom prompt or title, features, and price must be provided")

// Config holds the remote endpoint settings. An empty APIKey leaves the
// generator unconfigured, which forces the local path.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Source says which path produced a flyer.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Reason says why the local path was used, so callers can tell a deliberate
// local render from a remote failure without the error ever propagating.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonDisabled     Reason = "api_disabled"
	ReasonUnconfigured Reason = "unconfigured"
	ReasonEncode       Reason = "encode_error"
	ReasonTransport    Reason = "transport_error"
	ReasonStatus       Reason = "bad_status"
	ReasonPayload      Reason = "bad_payload"
)

// Outcome reports the path taken for one generation.
type Outcome struct {
	Source Source `json:"source"`
	Reason Reason `json:"reason,omitempty"`
}

// Request carries one flyer generation. Either Prompt or the
// Title/Features/Price set must be present. UseAPI false forces the local,
// fully offline path.
type Request struct {
	Image       image.Image
	Prompt      string
	Title       string
	Features    []string
	Price       string
	Location    string
	ContactInfo string
	Style       flyer.Style
	UseAPI      bool
}

// Generator produces flyers remotely or locally with a uniform
// fallback-on-failure contract.
type Generator struct {
	cfg        Config
	httpClient *http.Client
	renderer   *flyer.Renderer
}

func New(cfg Config, renderer *flyer.Renderer) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if renderer == nil {
		renderer = flyer.NewRenderer(nil)
	}
	return &Generator{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		renderer:   renderer,
	}
}

// Configured reports whether a credential for the remote endpoint is present.
func (g *Generator) Configured() bool {
	return g.cfg.APIKey != ""
}

// Generate produces a flyer bitmap. Remote failures never propagate; the
// outcome records which path ran and why. The only possible error is the
// input precondition.
func (g *Generator) Generate(ctx context.Context, req Request) (image.Image, Outcome, error) {
	if req.Prompt == "" && (req.Title == "" || len(req.Features) == 0 || req.Price == "") {
		return nil, Outcome{}, ErrMissingFields
	}

	if !req.UseAPI {
		slog.Debug("flyer generation using local compositor", "reason", ReasonDisabled)
		return g.renderLocal(req), Outcome{Source: SourceLocal, Reason: ReasonDisabled}, nil
	}
	if !g.Configured() {
		slog.Debug("flyer generation using local compositor", "reason", ReasonUnconfigured)
		return g.renderLocal(req), Outcome{Source: SourceLocal, Reason: ReasonUnconfigured}, nil
	}

	prompt := forImageEdit(req.Prompt)
	remote, reason, err := g.editImage(ctx, req.Image, prompt)
	if err != nil {
		slog.Error("remote flyer generation failed, falling back to local compositor",
			"reason", reason,
			"error", err,
		)
		// Same instruction string, local compositor; the structured
		// fields are recovered from the prompt where needed.
		fallback := g.renderer.RenderMarketplace(flyer.MarketplaceFlyer{
			Image:  req.Image,
			Prompt: prompt,
			Style:  req.Style,
		})
		return fallback, Outcome{Source: SourceLocal, Reason: reason}, nil
	}

	return remote, Outcome{Source: SourceRemote}, nil
}

func (g *Generator) renderLocal(req Request) image.Image {
	return g.renderer.RenderMarketplace(flyer.MarketplaceFlyer{
		Image:       req.Image,
		Title:       req.Title,
		Features:    req.Features,
		Price:       req.Price,
		Location:    req.Location,
		ContactInfo: req.ContactInfo,
		Style:       req.Style,
		Prompt:      req.Prompt,
	})
}

type imageDataResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// editImage sends the source image plus instruction to the image edit
// endpoint and decodes the returned bitmap.
func (g *Generator) editImage(ctx context.Context, src image.Image, prompt string) (image.Image, Reason, error) {
	pngData, err := imaging.EncodePNG(src)
	if err != nil {
		return nil, ReasonEncode, fmt.Errorf("encode source image: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="image.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, ReasonEncode, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(pngData); err != nil {
		return nil, ReasonEncode, fmt.Errorf("write image part: %w", err)
	}
	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, ReasonEncode, fmt.Errorf("write prompt field: %w", err)
	}
	if err := writer.WriteField("model", g.cfg.Model); err != nil {
		return nil, ReasonEncode, fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, ReasonEncode, fmt.Errorf("close multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/images/edits", &body)
	if err != nil {
		return nil, ReasonTransport, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, ReasonTransport, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ReasonTransport, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ReasonStatus, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope imageDataResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, ReasonPayload, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(envelope.Data) == 0 || envelope.Data[0].B64JSON == "" {
		return nil, ReasonPayload, fmt.Errorf("no image in API response")
	}

	img, err := imaging.DecodeBase64(envelope.Data[0].B64JSON)
	if err != nil {
		return nil, ReasonPayload, fmt.Errorf("decode generated image: %w", err)
	}
	return img, ReasonNone, nil
}
