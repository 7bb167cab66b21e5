package media

import (
	"encoding/base64" // Data URL payload
	"errors"          // Error values
	"io"              // Upload readers
	"strings"         // String manipulation

	"github.com/gabriel-vasile/mimetype" // Content type sniffing
)

var (
	ErrEmptyUpload = errors.New("uploaded file is empty")
	ErrTooLarge    = errors.New("uploaded file is too large")
	ErrNotAnImage  = errors.New("uploaded file is not an image")
)

// DataURL reads at most limit bytes from r and encodes them as a base64 data URL.
func DataURL(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1)) // One extra byte detects oversize
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if int64(len(data)) > limit {
		return "", ErrTooLarge
	}
	mime := mimetype.Detect(data) // Sniff from content, not the file name
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", ErrNotAnImage
	}
	// Drop parameters such as charset for svg
	typ, _, _ := strings.Cut(mime.String(), ";")
	return "data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
