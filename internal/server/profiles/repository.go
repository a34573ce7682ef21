package profiles

// Repository is the storage surface for profile rows. Implementations skip
// malformed rows on read.
type Repository interface {
	EnsureFiles() error

	GetEngineer(username string) (Engineer, error)
	ListEngineers() ([]Engineer, error)
	AppendEngineer(e Engineer) error
	RemoveEngineer(username string) (int, error)

	GetOrganization(username string) (Organization, error)
	ListOrganizations() ([]Organization, error)
	AppendOrganization(o Organization) error
	RemoveOrganization(username string) (int, error)
}
