// Package store provides the badger-backed persistence layer for Resonate.
//
// Every record is a JSON document under a typed key prefix. Relationship
// fields (followed artists, liked songs, playlist membership) are mutated
// only through single-transaction set operations so that concurrent requests
// serialize at the storage layer instead of racing in services.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/resonateapp/resonate-server/internal/domain"
)

// maxTxnRetries bounds retries of write transactions that hit an SSI
// conflict. Conflicts are rare and retrying the whole closure is safe
// because every mutation re-reads its record inside the transaction.
const maxTxnRetries = 5

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Users     *Entity[domain.User]
	Songs     *Entity[domain.Song]
	Playlists *Entity[domain.Playlist]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	s.initUsers()
	s.initSongs()
	s.initPlaylists()

	if logger != nil {
		logger.Info("Badger database opened", "path", path)
	}

	return s, nil
}

// Ping runs a cheap read to confirm the database is accessible.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("ping"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// update runs fn in a write transaction, retrying on serialization conflicts.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	var err error
	for range maxTxnRetries {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// initUsers initializes the Users entity.
// Email lookups are case-insensitive via the normalizeEmail transform.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithUniqueIndex("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail,
		)
}

// initSongs initializes the Songs entity, indexed by artist for profile pages.
func (s *Store) initSongs() {
	s.Songs = NewEntity[domain.Song](s, "song:").
		WithIndex("artist", func(sg *domain.Song) []string {
			return []string{sg.ArtistID}
		})
}

// initPlaylists initializes the Playlists entity, indexed by owner.
func (s *Store) initPlaylists() {
	s.Playlists = NewEntity[domain.Playlist](s, "playlist:").
		WithIndex("owner", func(p *domain.Playlist) []string {
			return []string{p.OwnerID}
		})
}

// normalizeEmail normalizes an email address for consistent lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
