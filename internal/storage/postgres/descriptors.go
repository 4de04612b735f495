package postgres

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/kozaktomas/face-gallery/internal/embedder"
	"github.com/kozaktomas/face-gallery/internal/storage"
)

// DescriptorRepository provides PostgreSQL-backed descriptor storage.
// It implements storage.DescriptorStore.
type DescriptorRepository struct {
	pool *Pool
}

// NewDescriptorRepository creates a new PostgreSQL descriptor repository.
func NewDescriptorRepository(pool *Pool) *DescriptorRepository {
	return &DescriptorRepository{pool: pool}
}

// Save stores the descriptor for a photo, replacing any previous one.
func (r *DescriptorRepository) Save(ctx context.Context, eventID, photoName string, d embedder.Descriptor) error {
	query := `
		INSERT INTO descriptors (event_id, photo_name, embedding)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, photo_name)
		DO UPDATE SET embedding = EXCLUDED.embedding, created_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, eventID, photoName, pgvector.NewVector(d)); err != nil {
		return fmt.Errorf("save descriptor %s/%s: %w", eventID, photoName, err)
	}
	return nil
}

// List enumerates every stored descriptor for an event, ordered by photo name.
func (r *DescriptorRepository) List(ctx context.Context, eventID string) ([]storage.StoredDescriptor, error) {
	query := `
		SELECT photo_name, embedding
		FROM descriptors
		WHERE event_id = $1
		ORDER BY photo_name
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("query descriptors for %s: %w", eventID, err)
	}
	defer rows.Close()

	var stored []storage.StoredDescriptor
	for rows.Next() {
		var name string
		var vec pgvector.Vector
		if err := rows.Scan(&name, &vec); err != nil {
			return nil, fmt.Errorf("scan descriptor: %w", err)
		}
		stored = append(stored, storage.StoredDescriptor{
			PhotoName:  name,
			Descriptor: embedder.Descriptor(vec.Slice()),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate descriptors: %w", err)
	}
	return stored, nil
}

// DeleteEvent removes all descriptors for an event. Idempotent.
func (r *DescriptorRepository) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM descriptors WHERE event_id = $1", eventID); err != nil {
		return fmt.Errorf("delete descriptors for %s: %w", eventID, err)
	}
	return nil
}

// Count returns the total number of descriptors stored.
func (r *DescriptorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM descriptors").Scan(&count); err != nil {
		return 0, fmt.Errorf("count descriptors: %w", err)
	}
	return count, nil
}
