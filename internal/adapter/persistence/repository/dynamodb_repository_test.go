package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"quote_calculator/internal/adapter/persistence/storetest"
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory table set that understands the condition
// expressions the repositories send.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
	puts   []*dynamodb.PutItemInput
}

var tableKeys = map[string][]string{
	defaultEstimatesTableName: {"id"},
	defaultBackupsTableName:   {"estimate_id", "version_rank"},
	defaultCatalogsTableName:  {"name"},
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func attrString(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

func attrInt(av types.AttributeValue) int64 {
	n, _ := strconv.ParseInt(attrString(av), 10, 64)
	return n
}

func (f *fakeDynamo) key(table string, item map[string]types.AttributeValue) string {
	parts := make([]string, 0, 2)
	for _, k := range tableKeys[table] {
		parts = append(parts, attrString(item[k]))
	}
	return strings.Join(parts, "|")
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[name]
	if !ok {
		t = map[string]map[string]types.AttributeValue{}
		f.tables[name] = t
	}
	return t
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := f.table(*in.TableName)[f.key(*in.TableName, in.Key)]
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, in)
	t := f.table(*in.TableName)
	k := f.key(*in.TableName, in.Item)
	existing, exists := t[k]

	cond := aws.ToString(in.ConditionExpression)
	switch cond {
	case "":
	case "attribute_not_exists(#id) OR #rank < :rank":
		if exists && attrInt(existing["version_rank"]) >= attrInt(in.ExpressionAttributeValues[":rank"]) {
			return nil, conditionFailed()
		}
	case "attribute_not_exists(#eid)":
		if exists {
			return nil, conditionFailed()
		}
	default:
		return nil, fmt.Errorf("fake: unsupported condition %q", cond)
	}
	t[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(*in.TableName)
	k := f.key(*in.TableName, in.Key)
	if _, ok := t[k]; !ok && strings.HasPrefix(aws.ToString(in.ConditionExpression), "attribute_exists") {
		return nil, conditionFailed()
	}
	delete(t, k)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	eid := attrString(in.ExpressionAttributeValues[":eid"])
	var items []map[string]types.AttributeValue
	for _, item := range f.table(*in.TableName) {
		if attrString(item["estimate_id"]) == eid {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return attrInt(items[i]["version_rank"]) < attrInt(items[j]["version_rank"])
	})
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []map[string]types.AttributeValue
	for _, item := range f.table(*in.TableName) {
		items = append(items, item)
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func TestDynamoStore_Conformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) interfaces.IStore {
		return NewDynamoStore(newFakeDynamo())
	})
}

func TestEstimateDynamoRepository_PutSendsRankCondition(t *testing.T) {
	fake := newFakeDynamo()
	repo := NewEstimateDynamoRepository(fake)

	if err := repo.Put(context.Background(), storetest.SampleEstimate("est-1", "1.2.3")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(fake.puts))
	}
	in := fake.puts[0]
	rank := attrString(in.ExpressionAttributeValues[":rank"])
	if rank != strconv.FormatInt(entities.MustParseVersion("1.2.3").Rank(), 10) {
		t.Fatalf("unexpected rank %s", rank)
	}
	if attrString(in.Item["version"]) != "1.2.3" || attrString(in.Item["client_name"]) != "Anna Petrova" {
		t.Fatalf("unexpected item: %+v", in.Item)
	}
}

func TestEstimateDynamoRepository_TableFromEnv(t *testing.T) {
	t.Setenv("ESTIMATES_TABLE", "quotes-prod")
	repo := NewEstimateDynamoRepository(newFakeDynamo())
	if repo.tableName != "quotes-prod" {
		t.Fatalf("expected quotes-prod, got %s", repo.tableName)
	}
}

type failingDynamo struct {
	*fakeDynamo
}

func (f failingDynamo) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return nil, errors.New("throttled")
}

func TestEstimateDynamoRepository_GetPropagatesErrors(t *testing.T) {
	repo := NewEstimateDynamoRepository(failingDynamo{newFakeDynamo()})
	_, err := repo.Get(context.Background(), "est-1")
	if err == nil || errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
