package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

const dateLayout = "2006-01-02"

const profileColumns = `id, owner_id, name, phone_number, gender, weight, height, date_of_birth,
	image_data, image_content_type, created_at, updated_at`

// ProfileRepository persiste el perfil unico de cada usuario.
type ProfileRepository interface {
	SingletonStore[domain.Profile, domain.ProfileFields]
}

type PgProfileRepository struct {
	db DBTX
}

func NewPgProfileRepository(db DBTX) *PgProfileRepository {
	return &PgProfileRepository{db: db}
}

func (r *PgProfileRepository) Create(ctx context.Context, ownerID string, fields domain.ProfileFields) (domain.Profile, error) {
	args, err := profileArgs(fields)
	if err != nil {
		return domain.Profile{}, err
	}
	now := time.Now().UTC()
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + profileColumns
	row := r.db.QueryRow(ctx, query, append([]any{uuid.NewString(), ownerID}, append(args, now)...)...)
	profile, err := scanProfile(row)
	return profile, mapError(err, "create profile")
}

func (r *PgProfileRepository) List(ctx context.Context, ownerID string) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err, "list profiles")
	}
	profiles, err := collect(rows, scanProfile)
	return profiles, mapError(err, "list profiles")
}

func (r *PgProfileRepository) Get(ctx context.Context, ownerID, id string) (domain.Profile, error) {
	if err := checkID(id, "get profile"); err != nil {
		return domain.Profile{}, err
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_id = $1 AND id = $2`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, ownerID, id))
	return profile, mapError(err, "get profile")
}

func (r *PgProfileRepository) GetByOwner(ctx context.Context, ownerID string) (domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_id = $1`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, ownerID))
	return profile, mapError(err, "get profile")
}

func (r *PgProfileRepository) Update(ctx context.Context, ownerID, id string, fields domain.ProfileFields) (domain.Profile, error) {
	if err := checkID(id, "update profile"); err != nil {
		return domain.Profile{}, err
	}
	args, err := profileArgs(fields)
	if err != nil {
		return domain.Profile{}, err
	}
	query := `
		UPDATE profiles
		SET name = $3, phone_number = $4, gender = $5, weight = $6, height = $7,
			date_of_birth = $8, image_data = $9, image_content_type = $10, updated_at = $11
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + profileColumns
	row := r.db.QueryRow(ctx, query, append([]any{ownerID, id}, append(args, time.Now().UTC())...)...)
	profile, err := scanProfile(row)
	return profile, mapError(err, "update profile")
}

func (r *PgProfileRepository) UpsertByOwner(ctx context.Context, ownerID string, fields domain.ProfileFields) (domain.Profile, error) {
	args, err := profileArgs(fields)
	if err != nil {
		return domain.Profile{}, err
	}
	now := time.Now().UTC()
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (owner_id) DO UPDATE
		SET name = EXCLUDED.name, phone_number = EXCLUDED.phone_number, gender = EXCLUDED.gender,
			weight = EXCLUDED.weight, height = EXCLUDED.height, date_of_birth = EXCLUDED.date_of_birth,
			image_data = EXCLUDED.image_data, image_content_type = EXCLUDED.image_content_type,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + profileColumns
	row := r.db.QueryRow(ctx, query, append([]any{uuid.NewString(), ownerID}, append(args, now)...)...)
	profile, err := scanProfile(row)
	return profile, mapError(err, "upsert profile")
}

func (r *PgProfileRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id, "delete profile"); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError(err, "delete profile")
	}
	return notFoundUnlessAffected(tag, "delete profile")
}

func (r *PgProfileRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID)
	if err != nil {
		return mapError(err, "delete profile")
	}
	return notFoundUnlessAffected(tag, "delete profile")
}

// profileArgs devuelve name..image_content_type en el orden de las columnas.
func profileArgs(fields domain.ProfileFields) ([]any, error) {
	var dob *time.Time
	if s := strings.TrimSpace(fields.DateOfBirth); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", domain.ErrValidation)
		}
		dob = &parsed
	}

	var (
		imageData   []byte
		contentType *string
	)
	if fields.ProfileImage != nil {
		imageData = fields.ProfileImage.Data
		ct := fields.ProfileImage.ContentType
		contentType = &ct
	}

	return []any{
		strings.TrimSpace(fields.Name),
		strings.TrimSpace(fields.PhoneNumber),
		strings.TrimSpace(fields.Gender),
		fields.Weight,
		fields.Height,
		dob,
		imageData,
		contentType,
	}, nil
}

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var (
		p           domain.Profile
		dob         *time.Time
		imageData   []byte
		contentType *string
	)
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.PhoneNumber,
		&p.Gender,
		&p.Weight,
		&p.Height,
		&dob,
		&imageData,
		&contentType,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	if dob != nil {
		p.DateOfBirth = dob.Format(dateLayout)
	}
	if imageData != nil && contentType != nil {
		p.ProfileImage = &domain.Image{Data: imageData, ContentType: *contentType}
	}
	return p, nil
}
