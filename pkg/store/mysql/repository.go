package mysql

// Repository aggregates all MySQL repositories
type Repository struct {
	ds *Datastore

	Capability *CapabilityRepository
	Relay      *RelayRepository
	TestPC     *TestPCRepository
	PCStats    *PCStatsRepository
	Board      *BoardRepository
	BoardLog   *BoardLogRepository
}

// NewRepository creates a new MySQL repository with all sub-repositories
func NewRepository(dsn string) (*Repository, error) {
	ds, err := NewDatastore(dsn)
	if err != nil {
		return nil, err
	}
	return newRepositoryWithDatastore(ds), nil
}

func newRepositoryWithDatastore(ds *Datastore) *Repository {
	return &Repository{
		ds:         ds,
		Capability: NewCapabilityRepository(ds),
		Relay:      NewRelayRepository(ds),
		TestPC:     NewTestPCRepository(ds),
		PCStats:    NewPCStatsRepository(ds),
		Board:      NewBoardRepository(ds),
		BoardLog:   NewBoardLogRepository(ds),
	}
}

// GetDatastore returns the underlying datastore for transaction support
func (r *Repository) GetDatastore() *Datastore {
	return r.ds
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.ds.Close()
}
