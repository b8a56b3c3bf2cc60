package ocr

import (
	"context"
	"fmt"

	"airportbot/internal/process"
)

// Tesseract reads text from an image by piping it through the tesseract CLI.
type Tesseract struct {
	Bin    string
	Runner process.Runner
}

func NewTesseract(bin string) Tesseract {
	return Tesseract{Bin: bin, Runner: process.ExecRunner{}}
}

func (t Tesseract) ImageToText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}
	bin := t.Bin
	if bin == "" {
		bin = "tesseract"
	}
	runner := t.Runner
	if runner == nil {
		runner = process.ExecRunner{}
	}
	out, err := runner.Run(ctx, image, bin, "stdin", "stdout")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
