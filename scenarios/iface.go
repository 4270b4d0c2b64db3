// iface.go defines the StoreInterface for dependency injection and testing.
//
// The concrete *Store type satisfies this interface. Code that depends on
// the store (e.g., the HTTP server) can accept StoreInterface instead of
// *Store, enabling mock injection in tests.
package scenarios

// StoreInterface defines the full set of store operations.
// The concrete *Store type implements this interface.
type StoreInterface interface {
	// Close closes the database connection.
	Close() error

	// Save inserts or updates a scenario, assigning an ID when missing.
	Save(sc *Scenario) error

	// Get retrieves a scenario by ID; ErrNotFound when absent.
	Get(id string) (*Scenario, error)

	// List returns all scenarios ordered by name, then creation time.
	List() ([]Scenario, error)

	// Delete removes a scenario by ID; ErrNotFound when absent.
	Delete(id string) error
}
