package service

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageService resolves the picture shown with a word. A configured
// reference wins; otherwise a keyword-search image is fetched and cached
// under the static dir. When that fails too the caller renders a plain
// textual placeholder, so a missing picture never blocks a round.
type ImageService struct {
	imageDir string
	client   *http.Client
}

// NewImageService creates an image service caching into imageDir.
func NewImageService(imageDir string) *ImageService {
	return &ImageService{
		imageDir: imageDir,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ImageURLFor returns the picture URL for a word: the configured ref if
// present, else a cached keyword lookup, else empty for a placeholder.
func (s *ImageService) ImageURLFor(word, configuredRef string) string {
	if configuredRef != "" {
		return configuredRef
	}

	sanitized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), " ", "_")
	filename := fmt.Sprintf("word_%s.jpg", sanitized)
	path := filepath.Join(s.imageDir, filename)

	if _, err := os.Stat(path); err == nil {
		return "/static/images/" + filename
	}

	if err := s.fetchKeywordImage(word, path); err != nil {
		return ""
	}
	return "/static/images/" + filename
}

// fetchKeywordImage downloads a keyword-matched photo from the free
// LoremFlickr service.
func (s *ImageService) fetchKeywordImage(keyword, outputPath string) error {
	endpoint := "https://loremflickr.com/320/240/" + url.PathEscape(keyword)

	resp, err := s.client.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(outputPath)
		return err
	}
	return nil
}
