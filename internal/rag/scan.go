package rag

import (
	"context"
	"fmt"
	"strings"

	dcconfig "github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/document-context/pkg/image"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
)

const transcribePrompt = `This image is one page of a company document. Transcribe every readable word on it as plain text, top to bottom. Keep table rows on one line each. Reply with the text only.`

// Transcriber recovers the text of a PDF page that has no text layer.
// page is 1-based.
type Transcriber interface {
	Transcribe(ctx context.Context, path string, page int) (string, error)
}

// VisionTranscriber rasterizes a page with ImageMagick and has a vision
// model read it back.
type VisionTranscriber struct {
	client llm.VisionClient
}

func NewVisionTranscriber(client llm.VisionClient) *VisionTranscriber {
	return &VisionTranscriber{client: client}
}

func (v *VisionTranscriber) Transcribe(ctx context.Context, path string, page int) (string, error) {
	png, err := RenderPage(path, page)
	if err != nil {
		return "", err
	}
	return v.TranscribeImage(ctx, png)
}

// TranscribeImage sends an already rendered PNG page to the model.
func (v *VisionTranscriber) TranscribeImage(ctx context.Context, png []byte) (string, error) {
	uri, err := encoding.EncodeImageDataURI(png, document.PNG)
	if err != nil {
		return "", fmt.Errorf("%w: encode image: %w", ErrTranscribeFailed, err)
	}

	text, err := v.client.Vision(ctx, transcribePrompt, []string{uri})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscribeFailed, err)
	}
	return strings.TrimSpace(text), nil
}

// RenderPage renders one 1-based page of the PDF at path to PNG.
func RenderPage(path string, page int) ([]byte, error) {
	doc, err := document.OpenPDF(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrTranscribeFailed, path, err)
	}
	defer doc.Close()

	renderer, err := image.NewImageMagickRenderer(dcconfig.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create renderer: %w", ErrTranscribeFailed, err)
	}

	p, err := doc.ExtractPage(page)
	if err != nil {
		return nil, fmt.Errorf("%w: extract page %d: %w", ErrTranscribeFailed, page, err)
	}

	data, err := p.ToImage(renderer, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: render page %d: %w", ErrTranscribeFailed, page, err)
	}
	return data, nil
}
