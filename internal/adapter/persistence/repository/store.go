package repository

import "quote_calculator/internal/usecase/interfaces"

const Kind = "dynamodb"

// DynamoStore bundles the DynamoDB repositories.
//
// Tables are provisioned outside the service:
//   - estimates: PK id (S)
//   - backups:   PK estimate_id (S), SK version_rank (N)
//   - catalogs:  PK name (S)
type DynamoStore struct {
	estimates *EstimateDynamoRepository
	backups   *BackupDynamoRepository
	catalogs  *CatalogDynamoRepository
}

var _ interfaces.IStore = (*DynamoStore)(nil)

func NewDynamoStore(ddb dynamoAPI) *DynamoStore {
	return &DynamoStore{
		estimates: NewEstimateDynamoRepository(ddb),
		backups:   NewBackupDynamoRepository(ddb),
		catalogs:  NewCatalogDynamoRepository(ddb),
	}
}

func (s *DynamoStore) Estimates() interfaces.IEstimateRepository { return s.estimates }
func (s *DynamoStore) Backups() interfaces.IBackupRepository     { return s.backups }
func (s *DynamoStore) Catalogs() interfaces.ICatalogRepository   { return s.catalogs }
func (s *DynamoStore) Kind() string                              { return Kind }
func (s *DynamoStore) Close() error                              { return nil }
