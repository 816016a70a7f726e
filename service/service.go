// Package service exposes the listing analysis and flyer generation core over
// a small JSON/binary HTTP surface for the upstream UI layer.
package service

import (
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loganlanou/snapsell/internal/flyer"
	"github.com/loganlanou/snapsell/internal/flyergen"
	"github.com/loganlanou/snapsell/internal/imaging"
	"github.com/loganlanou/snapsell/internal/listing"
	"github.com/loganlanou/snapsell/internal/vision"
)

type Service struct {
	config    *Config
	analyzer  *vision.Analyzer
	generator *flyergen.Generator
	renderer  *flyer.Renderer
}

func New(config *Config) *Service {
	fonts := flyer.LoadFontSet(config.Flyer.FontDir)
	if !fonts.Custom {
		slog.Info("custom flyer fonts not found, using bundled fonts", "dir", config.Flyer.FontDir)
	}
	renderer := flyer.NewRenderer(fonts)

	analyzer := vision.New(vision.Options{
		APIKey:  config.OpenAI.APIKey,
		BaseURL: config.OpenAI.BaseURL,
		Model:   config.OpenAI.VisionModel,
	})

	generator := flyergen.New(flyergen.Config{
		APIKey:  config.OpenAI.APIKey,
		BaseURL: config.OpenAI.BaseURL,
		Model:   config.OpenAI.ImageModel,
	}, renderer)

	return &Service{
		config:    config,
		analyzer:  analyzer,
		generator: generator,
		renderer:  renderer,
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.HandleHealthz)
	e.POST("/api/analyze", s.HandleAnalyze)
	e.POST("/api/flyer", s.HandleFlyer)
}

func (s *Service) HandleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":            "ok",
		"environment":       s.config.Environment,
		"vision_configured": s.analyzer.Configured(),
		"image_configured":  s.generator.Configured(),
	})
}

type analyzeResponse struct {
	listing.Fields
	Source vision.Source `json:"source"`
	Reason vision.Reason `json:"reason,omitempty"`
}

// HandleAnalyze accepts a multipart image upload and returns listing fields.
// Analysis degrades to the fallback listing rather than failing, so the only
// client errors are missing or undecodable uploads.
func (s *Service) HandleAnalyze(c echo.Context) error {
	img, err := s.formImage(c)
	if err != nil {
		return err
	}

	offline := s.config.Flyer.Offline || formBool(c, "offline")
	result := s.analyzer.Analyze(c.Request().Context(), img, offline)

	return c.JSON(http.StatusOK, analyzeResponse{
		Fields: result.Fields,
		Source: result.Source,
		Reason: result.Reason,
	})
}

// HandleFlyer accepts a multipart image plus listing fields (or a custom
// prompt) and responds with the rendered flyer PNG. The generation path taken
// is reported in X-Flyer-Source / X-Flyer-Reason headers.
func (s *Service) HandleFlyer(c echo.Context) error {
	img, err := s.formImage(c)
	if err != nil {
		return err
	}

	// The simple layout is a direct local render with its own field set.
	if c.FormValue("layout") == "simple" {
		out := s.renderer.RenderSimple(flyer.SimpleFlyer{
			Image:       img,
			Title:       c.FormValue("title"),
			Category:    c.FormValue("category"),
			Description: c.FormValue("description"),
			Price:       c.FormValue("price"),
		})
		data, err := imaging.EncodePNG(out)
		if err != nil {
			slog.Error("failed to encode flyer", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to encode flyer")
		}
		c.Response().Header().Set("X-Flyer-Source", string(flyergen.SourceLocal))
		return c.Blob(http.StatusOK, "image/png", data)
	}

	req := flyergen.Request{
		Image:       img,
		Prompt:      c.FormValue("prompt"),
		Title:       c.FormValue("title"),
		Features:    splitLines(c.FormValue("features")),
		Price:       c.FormValue("price"),
		Location:    c.FormValue("location"),
		ContactInfo: c.FormValue("contact"),
		Style:       flyer.ParseStyle(c.FormValue("style")),
		UseAPI:      s.config.Flyer.UseAPI && !formBool(c, "local_only"),
	}

	result, outcome, err := s.generator.Generate(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, err := imaging.EncodePNG(result)
	if err != nil {
		slog.Error("failed to encode flyer", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to encode flyer")
	}

	c.Response().Header().Set("X-Flyer-Source", string(outcome.Source))
	if outcome.Reason != "" {
		c.Response().Header().Set("X-Flyer-Reason", string(outcome.Reason))
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func (s *Service) formImage(c echo.Context) (image.Image, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "image upload is required")
	}
	src, err := file.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("open upload: %v", err))
	}
	defer src.Close()

	decoded, err := imaging.DecodeReader(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "uploaded file is not a supported image")
	}
	return decoded, nil
}

func formBool(c echo.Context, name string) bool {
	value, err := strconv.ParseBool(c.FormValue(name))
	return err == nil && value
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
