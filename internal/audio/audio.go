// Package audio stores audio files next to the decks and resolves the
// handles cards keep for them.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidHandle is returned for handles that are empty or contain a path.
var ErrInvalidHandle = errors.New("audio: invalid handle")

// Store keeps audio files in a single folder. A handle is the file name
// within that folder.
type Store struct {
	dir string
}

// NewStore uses <folder>/audio, creating it if needed.
func NewStore(folder string) (*Store, error) {
	dir := filepath.Join(folder, "audio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio folder %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the folder holding the audio files.
func (s *Store) Dir() string {
	return s.dir
}

// Import copies the file at src into the store and returns its handle.
// If the name is taken, a counter is added before the extension:
// "word.mp3", then "word1.mp3", "word2.mp3" and so on.
func (s *Store) Import(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file %s: %w", src, err)
	}
	defer in.Close()

	name := filepath.Base(src)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	var out *os.File
	handle := name
	for i := 1; ; i++ {
		out, err = os.OpenFile(filepath.Join(s.dir, handle), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("failed to create %s: %w", handle, err)
		}
		handle = stem + strconv.Itoa(i) + ext
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to close %s: %w", handle, err)
	}

	slog.Info("Audio imported", "source", src, "handle", handle)
	return handle, nil
}

// Path resolves handle to its file path.
func (s *Store) Path(handle string) (string, error) {
	if handle == "" || filepath.Base(handle) != handle || handle == "." || handle == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}
	return filepath.Join(s.dir, handle), nil
}

// Exists reports whether handle names a stored file.
func (s *Store) Exists(handle string) bool {
	path, err := s.Path(handle)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Open returns the stored bytes for handle.
func (s *Store) Open(handle string) (io.ReadCloser, error) {
	path, err := s.Path(handle)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio %s: %w", handle, err)
	}
	return f, nil
}

// Player renders audio bytes. Implementations live in the presentation layer.
type Player interface {
	Play(ctx context.Context, r io.Reader) error
}

// PlayAsync plays handle on its own goroutine so the caller is not blocked.
// The returned channel receives the outcome once and is then closed.
func (s *Store) PlayAsync(ctx context.Context, p Player, handle string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		r, err := s.Open(handle)
		if err != nil {
			done <- err
			return
		}
		defer r.Close()
		if err := p.Play(ctx, r); err != nil {
			slog.Warn("Audio playback failed", "handle", handle, "error", err)
			done <- err
			return
		}
		done <- nil
	}()
	return done
}
