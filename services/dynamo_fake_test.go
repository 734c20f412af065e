package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoClient. It understands the handful of
// expression shapes this codebase actually issues: equality-only key
// conditions joined with AND, and "SET field = :value" update expressions.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue

	putErr    error
	queryErr  error
	updateErr error

	// failWhenValue makes queries fail whenever one of the expression values
	// equals it, to simulate a per-party storage failure
	failWhenValue string
	failErr       error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string][]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) seed(table string, item interface{}) {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append(f.tables[table], marshaled)
}

func (f *fakeDynamo) rows(table string) []map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]types.AttributeValue, len(f.tables[table]))
	copy(out, f.tables[table])
	return out
}

func stringValue(attr types.AttributeValue) (string, bool) {
	s, ok := attr.(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func matchesCondition(item map[string]types.AttributeValue, condition string, values map[string]types.AttributeValue, names map[string]string) bool {
	for _, clause := range strings.Split(condition, " AND ") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return false
		}
		field := strings.TrimSpace(parts[0])
		if actual, ok := names[field]; ok {
			field = actual
		}
		placeholder := strings.TrimSpace(parts[1])

		want, ok := stringValue(values[placeholder])
		if !ok {
			return false
		}
		got, ok := stringValue(item[field])
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (f *fakeDynamo) query(tableName, condition string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.failWhenValue != "" {
		for _, v := range values {
			if s, ok := stringValue(v); ok && s == f.failWhenValue {
				return nil, f.failErr
			}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]types.AttributeValue
	for _, item := range f.tables[tableName] {
		if matchesCondition(item, condition, values, names) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeDynamo) QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return f.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
}

func (f *fakeDynamo) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return f.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
}

func (f *fakeDynamo) QueryItemsWithOptions(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32, ascending bool) ([]map[string]types.AttributeValue, error) {
	items, err := f.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := stringValue(items[i]["created_date"])
		b, _ := stringValue(items[j]["created_date"])
		if ascending {
			return a < b
		}
		return a > b
	})
	if limit > 0 && int(limit) < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	if f.putErr != nil {
		return f.putErr
	}
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Replace on matching id, mirroring a keyed overwrite
	if id, ok := stringValue(marshaled["id"]); ok {
		kept := f.tables[tableName][:0]
		for _, existing := range f.tables[tableName] {
			if existingID, ok := stringValue(existing["id"]); ok && existingID == id {
				continue
			}
			kept = append(kept, existing)
		}
		f.tables[tableName] = kept
	}

	f.tables[tableName] = append(f.tables[tableName], marshaled)
	return nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.tables[tableName] {
		if itemMatchesKey(item, key) {
			return item, nil
		}
	}
	return nil, nil
}

func itemMatchesKey(item, key map[string]types.AttributeValue) bool {
	for field, attr := range key {
		want, ok := stringValue(attr)
		if !ok {
			return false
		}
		got, ok := stringValue(item[field])
		if !ok || got != want {
			return false
		}
	}
	return true
}

func applyUpdateExpression(item map[string]types.AttributeValue, updateExpression string, values map[string]types.AttributeValue, names map[string]string) {
	assignments := strings.TrimPrefix(updateExpression, "SET ")
	for _, assignment := range strings.Split(assignments, ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			continue
		}
		field := strings.TrimSpace(parts[0])
		if actual, ok := names[field]; ok {
			field = actual
		}
		placeholder := strings.TrimSpace(parts[1])
		if value, ok := values[placeholder]; ok {
			item[field] = value
		}
	}
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, tableName, updateExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.tables[tableName] {
		if itemMatchesKey(item, key) {
			applyUpdateExpression(item, updateExpression, expressionAttributeValues, expressionAttributeNames)
			return item, nil
		}
	}
	return map[string]types.AttributeValue{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tables[tableName][:0]
	for _, item := range f.tables[tableName] {
		if itemMatchesKey(item, key) {
			continue
		}
		kept = append(kept, item)
	}
	f.tables[tableName] = kept
	return nil
}

func (f *fakeDynamo) TransactWriteItems(ctx context.Context, writeItems []types.TransactWriteItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, writeItem := range writeItems {
		update := writeItem.Update
		if update == nil {
			continue
		}
		for _, item := range f.tables[*update.TableName] {
			if itemMatchesKey(item, update.Key) {
				applyUpdateExpression(item, *update.UpdateExpression, update.ExpressionAttributeValues, nil)
			}
		}
	}
	return nil
}
