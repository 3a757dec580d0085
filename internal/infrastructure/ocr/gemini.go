// Package ocr provides OCR engines for scanned statements.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"github.com/iho/goextrato/internal/extractor"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const wordBoxPrompt = "You are an OCR engine for scanned Brazilian credit card invoices.\n\n" +
	"Task:\n" +
	"- Read EVERY word printed on every page of the attached document.\n" +
	"- Do not interpret, merge, translate or correct the text.\n\n" +
	"Output a JSON array with one object per word:\n" +
	"- \"page\": number, 1-based\n" +
	"- \"text\": string, the word exactly as printed\n" +
	"- \"x\", \"y\": numbers, top-left corner scaled to 0-1000 of the page width and height\n" +
	"- \"w\", \"h\": numbers, width and height on the same scale\n\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Output must begin with \"[\" and end with \"]\".\n"

// Generator is the part of the genai client used by the engine.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiEngine asks a Gemini model for positioned words.
type GeminiEngine struct {
	models Generator
	model  string
}

// NewGeminiClient creates a genai client for the Gemini API. An empty apiKey
// lets the SDK read GOOGLE_API_KEY / GEMINI_API_KEY from the environment.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client, nil
}

// NewGeminiEngine creates an engine; pass client.Models as models.
func NewGeminiEngine(models Generator, model string) *GeminiEngine {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiEngine{models: models, model: model}
}

type wordBox struct {
	Page int     `json:"page"`
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// Recognize implements extractor.OCREngine.
func (e *GeminiEngine) Recognize(ctx context.Context, content []byte, mimeType string) ([]extractor.OCRPage, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: wordBoxPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     content,
					},
				},
			},
		},
	}

	resp, err := e.models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	return decodeWordBoxes(raw)
}

func decodeWordBoxes(raw string) ([]extractor.OCRPage, error) {
	var words []wordBox
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &words); err != nil {
		return nil, fmt.Errorf("unmarshal word boxes: %w", err)
	}

	byPage := make(map[int][]extractor.Box)
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		page := w.Page
		if page < 1 {
			page = 1
		}
		byPage[page] = append(byPage[page], extractor.Box{Text: w.Text, X: w.X, Y: w.Y, W: w.W, H: w.H})
	}

	pages := make([]extractor.OCRPage, 0, len(byPage))
	for n, boxes := range byPage {
		pages = append(pages, extractor.OCRPage{Number: n, Words: boxes})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })

	return pages, nil
}

// cleanModelJSON strips Markdown fences and any text around the JSON array.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			s = s[start : end+1]
		}
	}

	return s
}
