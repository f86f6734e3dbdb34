package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"whispersofusAPI/internal/memory"
)

type MemoryRepository struct {
	client *firestore.Client
}

func NewMemoryRepository(client *firestore.Client) *MemoryRepository {
	return &MemoryRepository{client: client}
}

func (r *MemoryRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colMemories)
}

func (r *MemoryRepository) Save(ctx context.Context, m *memory.Memory) error {
	if _, err := r.col().Doc(m.ID).Set(ctx, m); err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no memory document exists.
func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*memory.Memory, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get memory %s: %w", id, err)
	}
	return memoryFromSnap(snap)
}

// FindAllByDate returns the full timeline ordered by memory date.
func (r *MemoryRepository) FindAllByDate(ctx context.Context, ascending bool) ([]*memory.Memory, error) {
	dir := firestore.Desc
	if ascending {
		dir = firestore.Asc
	}
	return r.findAll(ctx, r.col().OrderBy("memory_date", dir))
}

func (r *MemoryRepository) FindMilestones(ctx context.Context) ([]*memory.Memory, error) {
	q := r.col().
		Where("is_milestone", "==", true).
		OrderBy("memory_date", firestore.Asc)
	return r.findAll(ctx, q)
}

func (r *MemoryRepository) FindByType(ctx context.Context, t memory.Type) ([]*memory.Memory, error) {
	q := r.col().
		Where("type", "==", string(t)).
		OrderBy("memory_date", firestore.Desc)
	return r.findAll(ctx, q)
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete memory %s: %w", id, err)
	}
	return nil
}

func (r *MemoryRepository) findAll(ctx context.Context, q firestore.Query) ([]*memory.Memory, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}

	memories := make([]*memory.Memory, 0, len(snaps))
	for _, snap := range snaps {
		m, err := memoryFromSnap(snap)
		if err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, nil
}

func memoryFromSnap(snap *firestore.DocumentSnapshot) (*memory.Memory, error) {
	var m memory.Memory
	if err := snap.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode memory %s: %w", snap.Ref.ID, err)
	}
	m.ID = snap.Ref.ID
	return &m, nil
}
