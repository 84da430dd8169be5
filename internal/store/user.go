package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/resonateapp/resonate-server/internal/domain"
)

// CreateUser creates a new user account.
// Returns ErrEmailExists if the email is already in use.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	err := s.Users.Create(ctx, user.ID, user)
	if errors.Is(err, ErrAlreadyExists) {
		return ErrEmailExists
	}
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.Users.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetUserByEmail retrieves a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.Users.GetByIndex(ctx, "email", email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetUsersByIDs retrieves multiple users, preserving the order of ids.
// Missing users are skipped rather than failing the whole batch.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.Users.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get user %s: %w", id, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// UpdateUserProfile applies fn to the user record inside a single
// transaction. Scalar profile fields live on the same record as the
// relationship sets, so edits re-read the record in-transaction; a follow or
// like committed moments earlier is never overwritten by a stale copy.
// fn must not touch the relationship sets; use the set operations below.
func (s *Store) UpdateUserProfile(ctx context.Context, userID string, fn func(*domain.User) error) (*domain.User, error) {
	user, err := s.mutateUser(ctx, userID, func(u *domain.User) error {
		if err := fn(u); err != nil {
			return err
		}
		u.Touch()
		return nil
	})
	if errors.Is(err, ErrAlreadyExists) {
		return nil, ErrEmailExists
	}
	return user, err
}

// Atomic set mutations. Each runs as one transaction: check-and-write with no
// window for a concurrent request to interleave. All are idempotent by
// contract; re-adding a member or removing an absent one is a no-op.

// AddFollowedArtist adds artistID to the user's followed set.
func (s *Store) AddFollowedArtist(ctx context.Context, userID, artistID string) (*domain.User, error) {
	return s.mutateUser(ctx, userID, func(u *domain.User) error {
		if !u.Follows(artistID) {
			u.FollowedArtists = append(u.FollowedArtists, artistID)
			u.Touch()
		}
		return nil
	})
}

// RemoveFollowedArtist removes artistID from the user's followed set.
func (s *Store) RemoveFollowedArtist(ctx context.Context, userID, artistID string) (*domain.User, error) {
	return s.mutateUser(ctx, userID, func(u *domain.User) error {
		if i := slices.Index(u.FollowedArtists, artistID); i >= 0 {
			u.FollowedArtists = slices.Delete(u.FollowedArtists, i, i+1)
			u.Touch()
		}
		return nil
	})
}

// AddLikedSong adds songID to the user's liked set.
func (s *Store) AddLikedSong(ctx context.Context, userID, songID string) (*domain.User, error) {
	return s.mutateUser(ctx, userID, func(u *domain.User) error {
		if !u.Likes(songID) {
			u.LikedSongs = append(u.LikedSongs, songID)
			u.Touch()
		}
		return nil
	})
}

// RemoveLikedSong removes songID from the user's liked set.
func (s *Store) RemoveLikedSong(ctx context.Context, userID, songID string) (*domain.User, error) {
	return s.mutateUser(ctx, userID, func(u *domain.User) error {
		if i := slices.Index(u.LikedSongs, songID); i >= 0 {
			u.LikedSongs = slices.Delete(u.LikedSongs, i, i+1)
			u.Touch()
		}
		return nil
	})
}

func (s *Store) mutateUser(ctx context.Context, userID string, fn func(*domain.User) error) (*domain.User, error) {
	user, err := s.Users.Mutate(ctx, userID, fn)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
