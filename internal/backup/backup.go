// Package backup saves the database file to an object store and
// restores it from there.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/models"
)

// DefaultObjectName is the object the database is backed up to. There
// is exactly one backup per bucket, a new backup replaces the previous
// one.
const DefaultObjectName = "spendwise.db"

// A Store holds exactly one backup of the database file.
type Store interface {
	Upload(ctx context.Context, name string, r io.Reader) error
	Download(ctx context.Context, name string) (io.ReadCloser, error)
}

// GCSStore stores backups in a Google Cloud Storage bucket.
//
// Application Default Credentials must be configured.
type GCSStore struct {
	Bucket string
}

func (s GCSStore) Upload(ctx context.Context, name string, r io.Reader) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("error creating storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(s.Bucket).Object(name).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("error writing to bucket %s: %w", s.Bucket, err)
	}

	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("error finalizing upload to bucket %s: %w", s.Bucket, err)
	}

	return nil
}

func (s GCSStore) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating storage client: %w", err)
	}

	r, err := client.Bucket(s.Bucket).Object(name).NewReader(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error reading object %s/%s: %w", s.Bucket, name, err)
	}

	return readCloser{Reader: r, closers: []io.Closer{r, client}}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}

	return err
}

// Service backs up and restores the database file.
type Service struct {
	dsn    string
	store  Store
	object string
}

// NewService returns a Service for the database at dsn.
func NewService(dsn string, store Store) *Service {
	return &Service{dsn: dsn, store: store, object: DefaultObjectName}
}

// Backup closes the database, uploads the file and reconnects.
//
// The connection has to be closed so that the uploaded file is a
// complete, consistent snapshot.
func (s *Service) Backup(ctx context.Context) error {
	if err := models.Close(); err != nil {
		return fmt.Errorf("error closing database for backup: %w", err)
	}
	defer s.reconnect()

	f, err := os.Open(s.dsn)
	if err != nil {
		return fmt.Errorf("error opening database file: %w", err)
	}
	defer f.Close()

	if err := s.store.Upload(ctx, s.object, f); err != nil {
		return err
	}

	log.Info().Str("object", s.object).Msg("Database backup uploaded")
	return nil
}

// Restore closes the database, replaces the file with the downloaded
// backup and reconnects.
//
// The backup is written to a temporary file first, a failed download
// never destroys the current database.
func (s *Service) Restore(ctx context.Context) error {
	r, err := s.store.Download(ctx, s.object)
	if err != nil {
		return err
	}
	defer r.Close()

	// The temporary file lives next to the database so the rename below
	// stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(s.dsn), "spendwise-restore-*.db")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error downloading backup: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing temporary file: %w", err)
	}

	if err := models.Close(); err != nil {
		return fmt.Errorf("error closing database for restore: %w", err)
	}
	defer s.reconnect()

	if err := os.Rename(tmp.Name(), s.dsn); err != nil {
		return fmt.Errorf("error replacing database file: %w", err)
	}

	log.Info().Str("object", s.object).Msg("Database backup restored")
	return nil
}

func (s *Service) reconnect() {
	if err := models.Connect(s.dsn); err != nil {
		log.Error().Err(err).Msg("Could not reconnect to the database")
	}
}
