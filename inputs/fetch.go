package inputs

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const userAgent = "goshadercanvas (+https://github.com/richinsley/goshadercanvas)"

// Global client with a custom User-Agent header.
var httpClient = &http.Client{
	Transport: &headerTransport{Transport: http.DefaultTransport},
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	return t.Transport.RoundTrip(req)
}

// FetchFunc retrieves and decodes an image.
type FetchFunc func(ctx context.Context, src string) (image.Image, error)

// Fetch loads the image at src. URLs with an http or https scheme are
// requested over the network, anything else is read as a file path.
func Fetch(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("no image source")
	}
	if isURL(src) {
		return fetchURL(ctx, src)
	}
	return fetchFile(src)
}

func isURL(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func fetchURL(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad response status for %s: %s", src, resp.Status)
	}
	return decode(src, resp.Body)
}

func fetchFile(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return decode(path, f)
}

func decode(src string, r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", src, err)
	}
	return img, nil
}
