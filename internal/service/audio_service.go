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

// AudioService generates pronunciation MP3s for bank words so a round
// can play the word aloud. Files are cached on disk; generation failures
// degrade to a silent round and never block gameplay.
type AudioService struct {
	audioDir string
	client   *http.Client
}

// NewAudioService creates an audio service writing into audioDir.
func NewAudioService(audioDir string) *AudioService {
	return &AudioService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// GenerateAudioFile converts a word to speech and saves it as MP3,
// returning the filename (not the full path). Existing files are reused.
func (s *AudioService) GenerateAudioFile(text string) (string, error) {
	sanitized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), " ", "_")
	filename := fmt.Sprintf("word_%s.mp3", sanitized)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.fetchTTS(text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return filename, nil
}

// AudioPath returns the served path for a word's pronunciation file, or
// empty when it has not been generated.
func (s *AudioService) AudioPath(word string) string {
	sanitized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), " ", "_")
	filename := fmt.Sprintf("word_%s.mp3", sanitized)
	if _, err := os.Stat(filepath.Join(s.audioDir, filename)); err != nil {
		return ""
	}
	return "/static/audio/" + filename
}

// fetchTTS downloads speech audio from Google Translate's free TTS
// endpoint, which needs no API key.
func (s *AudioService) fetchTTS(text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")

	resp, err := s.client.Get("https://translate.google.com/translate_tts?" + params.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts endpoint returned status %d", resp.StatusCode)
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
