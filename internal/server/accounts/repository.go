package accounts

// Repository is the storage surface for identity records. Implementations
// must skip malformed rows on read and keep writes atomic per table.
type Repository interface {
	// EnsureFiles creates empty backing tables when absent.
	EnsureFiles() error

	// FindActive returns the active account for username, or
	// common.ErrorNotFound.
	FindActive(username string) (Account, error)

	// FindPending returns the pending account for username, or
	// common.ErrorNotFound.
	FindPending(username string) (Account, error)

	// ListActive returns active accounts in file (append) order.
	ListActive() ([]Account, error)

	// ListPending returns pending accounts in file (append) order.
	ListPending() ([]Account, error)

	// AppendActive appends one record to the active table.
	AppendActive(a Account) error

	// AppendPending appends one record to the pending queue.
	AppendPending(a Account) error

	// RemoveActive rewrites the active table without username and returns
	// how many records were dropped.
	RemoveActive(username string) (int, error)

	// RemovePending rewrites the pending queue without username and returns
	// how many records were dropped.
	RemovePending(username string) (int, error)
}
