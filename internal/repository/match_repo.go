package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/doggr/backend/internal/db"
)

// MatchRepository provides data access methods for swipe edges between
// profiles. Removal is always a soft delete; gorm.DeletedAt keeps removed
// edges out of every default query here.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// Create inserts a new matcher → matchee edge.
//
// Example:
//
//	repo.Create(ctx, 1, 2) // profile 1 swiped right on profile 2
func (r *MatchRepository) Create(ctx context.Context, matcherID, matcheeID uint) (db.Match, error) {
	match := db.Match{MatcherID: matcherID, MatcheeID: matcheeID}
	err := r.db.WithContext(ctx).Create(&match).Error
	return match, err
}

// ListForProfiles returns active matches where any of the given profiles is
// either side of the edge, with both profiles expanded.
func (r *MatchRepository) ListForProfiles(ctx context.Context, profileIDs []uint) ([]db.Match, error) {
	if len(profileIDs) == 0 {
		return nil, nil
	}
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("matcher_id IN ? OR matchee_id IN ?", profileIDs, profileIDs).
		Preload("Matcher").
		Preload("Matchee").
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

// ListByMatcher returns the matchee profiles for every active edge created by
// the given matcher.
func (r *MatchRepository) ListByMatcher(ctx context.Context, matcherID uint) ([]db.Profile, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("matcher_id = ?", matcherID).
		Preload("Matchee").
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]db.Profile, 0, len(matches))
	for _, m := range matches {
		if m.Matchee != nil {
			profiles = append(profiles, *m.Matchee)
		}
	}
	return profiles, nil
}

// ListByMatchee returns the matcher profiles for every active edge pointing
// at the given matchee.
func (r *MatchRepository) ListByMatchee(ctx context.Context, matcheeID uint) ([]db.Profile, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("matchee_id = ?", matcheeID).
		Preload("Matcher").
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]db.Profile, 0, len(matches))
	for _, m := range matches {
		if m.Matcher != nil {
			profiles = append(profiles, *m.Matcher)
		}
	}
	return profiles, nil
}

// SoftRemovePair soft-removes the active edge between matcher and matchee.
//
// Behavior:
//   - Sets deleted_at; the row stays in storage but leaves default listings.
//   - Returns gorm.ErrRecordNotFound when no active edge exists, which also
//     makes a second soft-remove of the same pair a NotFound rather than an
//     overwrite of deleted_at.
func (r *MatchRepository) SoftRemovePair(ctx context.Context, matcherID, matcheeID uint) error {
	res := r.db.WithContext(ctx).
		Where("matcher_id = ? AND matchee_id = ?", matcherID, matcheeID).
		Delete(&db.Match{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftRemoveByMatcher soft-removes every active edge created by the matcher.
// Removing zero edges is not an error; the count says what happened.
func (r *MatchRepository) SoftRemoveByMatcher(ctx context.Context, matcherID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("matcher_id = ?", matcherID).
		Delete(&db.Match{})
	return res.RowsAffected, res.Error
}

// CountForMatchee returns how many active edges point at the given matchee.
// Used in conjunction with the Redis cache (DB is fallback).
func (r *MatchRepository) CountForMatchee(ctx context.Context, matcheeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("matchee_id = ?", matcheeID).
		Count(&count).Error
	return count, err
}
