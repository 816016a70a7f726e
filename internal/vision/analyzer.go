// Package vision turns an item photo into structured listing fields by
// calling a vision model and parsing its labeled-line response. Analysis
// never fails: every failure mode resolves to the fixed fallback listing.
package vision

import (
	"context"
	"errors"
	"image"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/loganlanou/snapsell/internal/imaging"
	"github.com/loganlanou/snapsell/internal/listing"
)

const defaultModel = "gpt-4o-mini"

const analysisPrompt = `You are an expert in second-hand item listing for Indian marketplace. Analyze this image and provide:
1. Category: What type of item is this? (e.g., furniture, electronics, clothing)
2. Title: Create a catchy, concise title (max 10 words)
3. Features: List 3-5 key features as bullet points (each under 10 words)
4. Price: Estimate a fair price in INR based on visible condition and category
5. Location: If you can identify any location information in the image or metadata, mention it. Otherwise, leave blank.

Format your response exactly like this:
Category: [category]
Title: [title]
Features:
- [feature 1]
- [feature 2]
- [feature 3]
Price: [price in INR without symbol]
Location: [location if visible, otherwise leave blank]`

// Options configures an Analyzer. An empty APIKey leaves it unconfigured;
// analysis then always returns the fallback listing.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Source says where a result's fields came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Reason says why the fallback was used, so callers can tell a requested
// offline analysis from a remote failure.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonOffline      Reason = "offline_requested"
	ReasonUnconfigured Reason = "unconfigured"
	ReasonEncode       Reason = "encode_error"
	ReasonAPIError     Reason = "api_error"
	ReasonTransport    Reason = "transport_error"
	ReasonEmpty        Reason = "empty_response"
)

// Result is a complete analysis outcome; Fields is always populated.
type Result struct {
	Fields listing.Fields `json:"fields"`
	Source Source         `json:"source"`
	Reason Reason         `json:"reason,omitempty"`
}

// Analyzer calls the vision endpoint and parses the response.
type Analyzer struct {
	client     openai.Client
	model      string
	configured bool
}

func New(opts Options) *Analyzer {
	a := &Analyzer{model: opts.Model}
	if a.model == "" {
		a.model = defaultModel
	}

	if opts.APIKey != "" {
		reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
		if opts.BaseURL != "" {
			reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
		}
		a.client = openai.NewClient(reqOpts...)
		a.configured = true
	}
	return a
}

// Configured reports whether a credential for the vision endpoint is present.
func (a *Analyzer) Configured() bool {
	return a.configured
}

// Analyze produces listing fields for the photo. With offline set the remote
// call is skipped entirely. Analyze never returns an error; the result's
// Source and Reason say whether and why the fallback listing was used.
func (a *Analyzer) Analyze(ctx context.Context, img image.Image, offline bool) Result {
	if offline {
		slog.Debug("offline analysis requested, using fallback listing")
		return fallbackResult(ReasonOffline)
	}
	if !a.configured {
		slog.Debug("vision client not configured, using fallback listing")
		return fallbackResult(ReasonUnconfigured)
	}

	dataURL, err := imaging.DataURLJPEG(img)
	if err != nil {
		slog.Error("failed to encode image for analysis", "error", err)
		return fallbackResult(ReasonEncode)
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(analysisPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
		MaxTokens: openai.Int(500),
	})
	if err != nil {
		reason := ReasonTransport
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			reason = ReasonAPIError
		}
		slog.Error("vision analysis failed, using fallback listing", "reason", reason, "error", err)
		return fallbackResult(reason)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		slog.Warn("vision analysis returned no content, using fallback listing")
		return fallbackResult(ReasonEmpty)
	}

	fields := listing.Parse(resp.Choices[0].Message.Content)
	slog.Debug("vision analysis parsed",
		"category", fields.Category,
		"title", fields.Title,
		"features", len(fields.Features),
		"price", fields.Price,
	)
	return Result{Fields: fields, Source: SourceModel}
}

func fallbackResult(reason Reason) Result {
	return Result{
		Fields: listing.Fallback(),
		Source: SourceFallback,
		Reason: reason,
	}
}
