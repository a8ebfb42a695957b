package overtime

import "context"

type EntryRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EntryFilter) ([]Entry, error)
	SumMinutes(ctx context.Context, filter SumFilter) (int, error)
}
