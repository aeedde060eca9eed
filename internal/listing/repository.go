package listing

import "context"

// Repository provides CRUD operations for listings against a store.
type Repository interface {
	// List returns every listing in store order.
	List(ctx context.Context) ([]*Listing, error)
	// Get returns the listing with the given ID.
	Get(ctx context.Context, id string) (*Listing, error)
	// Create inserts a listing and returns it with its generated ID.
	Create(ctx context.Context, f Fields) (*Listing, error)
	// Update replaces the supplied fields and returns the updated listing.
	Update(ctx context.Context, id string, f Fields) (*Listing, error)
	// Delete removes a listing. Deleting a missing listing is not an error.
	Delete(ctx context.Context, id string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store connection.
	Close(ctx context.Context) error
}
