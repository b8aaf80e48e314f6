package fixture

import "context"

// UseCase serves the admin collections from memory.
type UseCase interface {
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Create(ctx context.Context, collection string, rec Record) (Record, error)
	Update(ctx context.Context, collection, id string, rec Record) (Record, error)
	Delete(ctx context.Context, collection, id string) error

	ToggleStatus(ctx context.Context, id string) (Record, error)
	DeleteImage(ctx context.Context, id string) (Record, error)
	Export(ctx context.Context, input ListInput) ([]byte, error)
	Cleanup(ctx context.Context, input CleanupInput) (CleanupOutput, error)

	Seed(ctx context.Context, perCollection int) error
}
