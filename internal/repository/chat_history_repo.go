package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

const chatHistoryColumns = `id, owner_id, message, response, created_at, updated_at`

type ChatHistoryRepository interface {
	OwnedStore[domain.ChatHistoryEntry, domain.ChatHistoryFields]
}

type PgChatHistoryRepository struct {
	db DBTX
}

func NewPgChatHistoryRepository(db DBTX) *PgChatHistoryRepository {
	return &PgChatHistoryRepository{db: db}
}

func (r *PgChatHistoryRepository) Create(ctx context.Context, ownerID string, fields domain.ChatHistoryFields) (domain.ChatHistoryEntry, error) {
	query := `
		INSERT INTO chatbot_history (` + chatHistoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + chatHistoryColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		ownerID,
		fields.Message,
		fields.Response,
		time.Now().UTC(),
	)
	entry, err := scanChatHistory(row)
	return entry, mapError(err, "create chat history")
}

func (r *PgChatHistoryRepository) List(ctx context.Context, ownerID string) ([]domain.ChatHistoryEntry, error) {
	query := `SELECT ` + chatHistoryColumns + ` FROM chatbot_history WHERE owner_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err, "list chat history")
	}
	entries, err := collect(rows, scanChatHistory)
	return entries, mapError(err, "list chat history")
}

func (r *PgChatHistoryRepository) Get(ctx context.Context, ownerID, id string) (domain.ChatHistoryEntry, error) {
	if err := checkID(id, "get chat history"); err != nil {
		return domain.ChatHistoryEntry{}, err
	}
	query := `SELECT ` + chatHistoryColumns + ` FROM chatbot_history WHERE owner_id = $1 AND id = $2`
	entry, err := scanChatHistory(r.db.QueryRow(ctx, query, ownerID, id))
	return entry, mapError(err, "get chat history")
}

func (r *PgChatHistoryRepository) Update(ctx context.Context, ownerID, id string, fields domain.ChatHistoryFields) (domain.ChatHistoryEntry, error) {
	if err := checkID(id, "update chat history"); err != nil {
		return domain.ChatHistoryEntry{}, err
	}
	query := `
		UPDATE chatbot_history
		SET message = $3, response = $4, updated_at = $5
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + chatHistoryColumns
	row := r.db.QueryRow(ctx, query, ownerID, id, fields.Message, fields.Response, time.Now().UTC())
	entry, err := scanChatHistory(row)
	return entry, mapError(err, "update chat history")
}

func (r *PgChatHistoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id, "delete chat history"); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM chatbot_history WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError(err, "delete chat history")
	}
	return notFoundUnlessAffected(tag, "delete chat history")
}

func scanChatHistory(row pgx.Row) (domain.ChatHistoryEntry, error) {
	var e domain.ChatHistoryEntry
	err := row.Scan(&e.ID, &e.OwnerID, &e.Message, &e.Response, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.ChatHistoryEntry{}, err
	}
	return e, nil
}
