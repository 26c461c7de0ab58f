package localmedia

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps uploaded media on local disk and serves it under baseURL.
// It backs development setups where no bucket is configured.
type Store struct {
	root    string
	baseURL string
}

func NewStore(root, baseURL string) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local media root required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Store{root: root, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}, nil
}

func (s *Store) Root() string { return s.root }

func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimSpace(key))
	if clean == "/" {
		return "", fmt.Errorf("empty object key")
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *Store) Upload(ctx context.Context, key string, r io.Reader) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("write media file: %w", err)
	}
	return f.Close()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
