package repository

import (
	"context"
	"encoding/json"
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

const defaultEstimatesTableName = "estimates"

type estimateItem struct {
	ID          string `dynamodbav:"id"`
	Version     string `dynamodbav:"version"`
	VersionRank int64  `dynamodbav:"version_rank"`
	ClientName  string `dynamodbav:"client_name"`
	Pax         int    `dynamodbav:"pax"`
	TourStart   string `dynamodbav:"tour_start"`
	UpdatedAt   string `dynamodbav:"updated_at"`
	Data        string `dynamodbav:"data"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The body is kept as canonical JSON in "data"; version_rank drives the
// conditional write that implements optimistic concurrency.
type EstimateDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb dynamoAPI) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) Get(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, entities.ErrNotFound
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it)
}

func (r *EstimateDynamoRepository) Put(ctx context.Context, e entities.Estimate) error {
	it, err := toEstimateItem(e)
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
		ConditionExpression: aws.String("attribute_not_exists(#id) OR #rank < :rank"),
		ExpressionAttributeNames: map[string]string{
			"#id":   "id",
			"#rank": "version_rank",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rank": &types.AttributeValueMemberN{Value: strconv.FormatInt(it.VersionRank, 10)},
		},
	})
	if isConditionFailed(err) {
		return entities.ErrConflict
	}
	return err
}

func (r *EstimateDynamoRepository) Replace(ctx context.Context, e entities.Estimate) error {
	it, err := toEstimateItem(e)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *EstimateDynamoRepository) List(ctx context.Context) ([]entities.EstimateSummary, error) {
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:            aws.String(r.tableName),
		ProjectionExpression: aws.String("#id, #version, #client, #pax, #start, #updated"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
			"#client":  "client_name",
			"#pax":     "pax",
			"#start":   "tour_start",
			"#updated": "updated_at",
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.EstimateSummary, 0, len(raw))
	for _, item := range raw {
		var it estimateItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		v, err := entities.ParseVersion(it.Version)
		if err != nil {
			return nil, err
		}
		updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
		out = append(out, entities.EstimateSummary{
			ID:         it.ID,
			ClientName: it.ClientName,
			Pax:        it.Pax,
			TourStart:  it.TourStart,
			Version:    v,
			UpdatedAt:  updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EstimateDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if isConditionFailed(err) {
		return entities.ErrNotFound
	}
	return err
}

func toEstimateItem(e entities.Estimate) (estimateItem, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return estimateItem{}, err
	}
	return estimateItem{
		ID:          e.ID,
		Version:     e.Version.String(),
		VersionRank: e.Version.Rank(),
		ClientName:  e.Customer.Name,
		Pax:         e.Pax,
		TourStart:   e.TourStart,
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Data:        string(b),
	}, nil
}

func fromEstimateItem(it estimateItem) (entities.Estimate, error) {
	var e entities.Estimate
	if err := json.Unmarshal([]byte(it.Data), &e); err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}
