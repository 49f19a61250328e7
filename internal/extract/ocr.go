package extract

import (
	"github.com/otiai10/gosseract/v2"
)

// tesseractOCR recognizes text with a per-call Tesseract client. The client
// holds cgo resources, so it is acquired and released inside the call rather
// than shared across requests.
type tesseractOCR struct{}

func (tesseractOCR) ImageText(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", err
	}
	return client.Text()
}
