package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultBackupsTableName = "backups"

type backupItem struct {
	EstimateID  string `dynamodbav:"estimate_id"`
	VersionRank int64  `dynamodbav:"version_rank"`
	ID          string `dynamodbav:"id"`
	Version     string `dynamodbav:"version"`
	CreatedAt   string `dynamodbav:"created_at"`
	Data        string `dynamodbav:"data"`
}

// BackupDynamoRepository is the append-only backup log in DynamoDB.
//
// Table requirements:
//   - PK: estimate_id (string)
//   - SK: version_rank (number)
type BackupDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IBackupRepository = (*BackupDynamoRepository)(nil)

func NewBackupDynamoRepository(ddb dynamoAPI) *BackupDynamoRepository {
	return &BackupDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BACKUPS_TABLE", defaultBackupsTableName),
	}
}

func (r *BackupDynamoRepository) Append(ctx context.Context, s entities.BackupSnapshot) error {
	it, err := toBackupItem(s)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#eid)"),
		ExpressionAttributeNames: map[string]string{
			"#eid": "estimate_id",
		},
	})
	if isConditionFailed(err) {
		return entities.ErrConflict
	}
	return err
}

func (r *BackupDynamoRepository) Get(ctx context.Context, estimateID string, version entities.Version) (entities.BackupSnapshot, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            backupKey(estimateID, version),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BackupSnapshot{}, err
	}
	if len(out.Item) == 0 {
		return entities.BackupSnapshot{}, entities.ErrNotFound
	}
	var it backupItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.BackupSnapshot{}, err
	}
	return fromBackupItem(it)
}

func (r *BackupDynamoRepository) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BackupSnapshot, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("estimate_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: estimateID},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	})
	var raw []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		raw = append(raw, page.Items...)
	}
	return fromBackupItems(raw)
}

func (r *BackupDynamoRepository) ListAll(ctx context.Context) ([]entities.BackupSnapshot, error) {
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	out, err := fromBackupItems(raw)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EstimateID != out[j].EstimateID {
			return out[i].EstimateID < out[j].EstimateID
		}
		return out[i].Version.Compare(out[j].Version) < 0
	})
	return out, nil
}

func (r *BackupDynamoRepository) Discard(ctx context.Context, estimateID string, version entities.Version) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       backupKey(estimateID, version),
	})
	return err
}

func backupKey(estimateID string, version entities.Version) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"estimate_id":  &types.AttributeValueMemberS{Value: estimateID},
		"version_rank": &types.AttributeValueMemberN{Value: strconv.FormatInt(version.Rank(), 10)},
	}
}

func toBackupItem(s entities.BackupSnapshot) (backupItem, error) {
	if !json.Valid(s.Body) {
		return backupItem{}, errors.New("backup body is not valid JSON")
	}
	return backupItem{
		EstimateID:  s.EstimateID,
		VersionRank: s.Version.Rank(),
		ID:          s.ID,
		Version:     s.Version.String(),
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339Nano),
		Data:        string(s.Body),
	}, nil
}

func fromBackupItem(it backupItem) (entities.BackupSnapshot, error) {
	v, err := entities.ParseVersion(it.Version)
	if err != nil {
		return entities.BackupSnapshot{}, err
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.BackupSnapshot{
		ID:         it.ID,
		EstimateID: it.EstimateID,
		Version:    v,
		Body:       json.RawMessage(it.Data),
		CreatedAt:  createdAt,
	}, nil
}

func fromBackupItems(raw []map[string]types.AttributeValue) ([]entities.BackupSnapshot, error) {
	out := make([]entities.BackupSnapshot, 0, len(raw))
	for _, item := range raw {
		var it backupItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		s, err := fromBackupItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
