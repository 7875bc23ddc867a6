package interfaces

// IStore bundles the repositories of one storage backend. Backends are
// selected once at startup and injected; nothing else branches on the kind.
type IStore interface {
	Estimates() IEstimateRepository
	Backups() IBackupRepository
	Catalogs() ICatalogRepository
	Kind() string
	Close() error
}
