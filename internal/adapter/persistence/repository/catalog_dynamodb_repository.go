package repository

import (
	"context"
	"encoding/json"
	"sort"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCatalogsTableName = "catalogs"

type catalogItem struct {
	Name string `dynamodbav:"name"`
	Data string `dynamodbav:"data"`
}

type CatalogDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb dynamoAPI) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CATALOGS_TABLE", defaultCatalogsTableName),
	}
}

func (r *CatalogDynamoRepository) Get(ctx context.Context, name string) (entities.Catalog, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Catalog{}, err
	}
	if len(out.Item) == 0 {
		return entities.Catalog{}, entities.ErrNotFound
	}
	var it catalogItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Catalog{}, err
	}
	return entities.Catalog{Name: it.Name, Data: json.RawMessage(it.Data)}, nil
}

func (r *CatalogDynamoRepository) Put(ctx context.Context, c entities.Catalog) error {
	av, err := attributevalue.MarshalMap(catalogItem{Name: c.Name, Data: string(c.Data)})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *CatalogDynamoRepository) List(ctx context.Context) ([]entities.Catalog, error) {
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Catalog, 0, len(raw))
	for _, item := range raw {
		var it catalogItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		out = append(out, entities.Catalog{Name: it.Name, Data: json.RawMessage(it.Data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CatalogDynamoRepository) Delete(ctx context.Context, name string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_exists(#name)"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
	})
	if isConditionFailed(err) {
		return entities.ErrNotFound
	}
	return err
}
