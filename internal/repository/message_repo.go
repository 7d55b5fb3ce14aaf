package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/doggr/backend/internal/db"
	"github.com/doggr/backend/internal/utils/pagination"
)

// MessageRepository provides data access methods for direct messages.
// Soft-delete semantics match MatchRepository.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Create inserts a new message. Moderation runs before this is ever called.
func (r *MessageRepository) Create(ctx context.Context, msg *db.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListBySender returns active messages sent by the given user, newest first,
// with cursor-based pagination via paginationToken.
func (r *MessageRepository) ListBySender(
	ctx context.Context,
	senderID uint,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	return r.list(ctx, "sender_id = ?", senderID, paginationToken, limit)
}

// ListByRecipient returns active messages received by the given user, newest
// first, with cursor-based pagination.
func (r *MessageRepository) ListByRecipient(
	ctx context.Context,
	recipientID uint,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	return r.list(ctx, "recipient_id = ?", recipientID, paginationToken, limit)
}

func (r *MessageRepository) list(
	ctx context.Context,
	cond string,
	id uint,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Where(cond, id).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)

	if cursor.ID > 0 && cursor.CreatedUnix > 0 {
		ts := time.UnixMilli(cursor.CreatedUnix)
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND id < ?))",
			ts, ts, cursor.ID,
		)
	}

	var messages []db.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(messages) > limit {
		last := messages[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			ID:          last.ID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		messages = messages[:limit]
	}

	return messages, nextToken, nil
}

// SoftRemovePair soft-removes every active message from sender to recipient.
// Returns gorm.ErrRecordNotFound when nothing was active, so repeating the
// call never rewrites deleted_at.
func (r *MessageRepository) SoftRemovePair(ctx context.Context, senderID, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Delete(&db.Message{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return res.RowsAffected, nil
}

// SoftRemoveBySender soft-removes every active message the sender has sent.
// Zero removals is not an error.
func (r *MessageRepository) SoftRemoveBySender(ctx context.Context, senderID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Delete(&db.Message{})
	return res.RowsAffected, res.Error
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
