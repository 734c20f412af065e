package controllers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"connectping_server/models"
	"connectping_server/services"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// memDynamo is a minimal in-memory DynamoClient for handler tests. It matches
// the equality-only key conditions and SET updates the services emit.
type memDynamo struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue

	queryErr error
}

func newMemDynamo() *memDynamo {
	return &memDynamo{tables: map[string][]map[string]types.AttributeValue{}}
}

func (m *memDynamo) seed(table string, item interface{}) {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], marshaled)
}

func attrString(attr types.AttributeValue) (string, bool) {
	s, ok := attr.(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func itemMatches(item map[string]types.AttributeValue, condition string, values map[string]types.AttributeValue, names map[string]string) bool {
	for _, clause := range strings.Split(condition, " AND ") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return false
		}
		field := strings.TrimSpace(parts[0])
		if actual, ok := names[field]; ok {
			field = actual
		}
		want, ok := attrString(values[strings.TrimSpace(parts[1])])
		if !ok {
			return false
		}
		got, ok := attrString(item[field])
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (m *memDynamo) query(table, condition string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []map[string]types.AttributeValue
	for _, item := range m.tables[table] {
		if itemMatches(item, condition, values, names) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memDynamo) QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return m.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
}

func (m *memDynamo) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return m.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
}

func (m *memDynamo) QueryItemsWithOptions(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32, ascending bool) ([]map[string]types.AttributeValue, error) {
	items, err := m.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := attrString(items[i]["created_date"])
		b, _ := attrString(items[j]["created_date"])
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

func (m *memDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := attrString(marshaled["id"]); ok {
		kept := m.tables[tableName][:0]
		for _, existing := range m.tables[tableName] {
			if existingID, ok := attrString(existing["id"]); ok && existingID == id {
				continue
			}
			kept = append(kept, existing)
		}
		m.tables[tableName] = kept
	}
	m.tables[tableName] = append(m.tables[tableName], marshaled)
	return nil
}

func keyMatches(item, key map[string]types.AttributeValue) bool {
	for field, attr := range key {
		want, ok := attrString(attr)
		if !ok {
			return false
		}
		got, ok := attrString(item[field])
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (m *memDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.tables[tableName] {
		if keyMatches(item, key) {
			return item, nil
		}
	}
	return nil, nil
}

func applySet(item map[string]types.AttributeValue, updateExpression string, values map[string]types.AttributeValue, names map[string]string) {
	for _, assignment := range strings.Split(strings.TrimPrefix(updateExpression, "SET "), ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			continue
		}
		field := strings.TrimSpace(parts[0])
		if actual, ok := names[field]; ok {
			field = actual
		}
		if value, ok := values[strings.TrimSpace(parts[1])]; ok {
			item[field] = value
		}
	}
}

func (m *memDynamo) UpdateItem(ctx context.Context, tableName, updateExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.tables[tableName] {
		if keyMatches(item, key) {
			applySet(item, updateExpression, expressionAttributeValues, expressionAttributeNames)
			return item, nil
		}
	}
	return map[string]types.AttributeValue{}, nil
}

func (m *memDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tables[tableName][:0]
	for _, item := range m.tables[tableName] {
		if keyMatches(item, key) {
			continue
		}
		kept = append(kept, item)
	}
	m.tables[tableName] = kept
	return nil
}

func (m *memDynamo) TransactWriteItems(ctx context.Context, writeItems []types.TransactWriteItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, writeItem := range writeItems {
		update := writeItem.Update
		if update == nil {
			continue
		}
		for _, item := range m.tables[*update.TableName] {
			if keyMatches(item, update.Key) {
				applySet(item, *update.UpdateExpression, update.ExpressionAttributeValues, nil)
			}
		}
	}
	return nil
}

// newServiceSet wires the full service graph over one fake store
func newServiceSet() (*memDynamo, *services.ConnectionService, *services.MessageService, *services.GroupService) {
	store := newMemDynamo()
	profiles := &services.UserProfileService{Dynamo: store}
	notifications := &services.NotificationService{Dynamo: store}
	connections := &services.ConnectionService{Dynamo: store, Profiles: profiles, Notifications: notifications}
	messages := &services.MessageService{Dynamo: store, Connections: connections, Profiles: profiles, Notifications: notifications}
	groups := &services.GroupService{Connections: connections, Profiles: profiles}
	return store, connections, messages, groups
}

func seedTestProfile(store *memDynamo, id, name string) {
	store.seed(models.UsersTable, models.UserProfile{UserID: id, FullName: name, Organization: "Acme"})
}

func seedTestConnection(store *memDynamo, id, requesterID, recipientID, status string) {
	store.seed(models.ConnectionsTable, models.Connection{
		ConnectionID: id,
		RequesterID:  requesterID,
		RecipientID:  recipientID,
		Status:       status,
		CreatedDate:  "2026-01-10T09:00:00Z",
		UpdatedDate:  "2026-01-10T09:00:00Z",
	})
}
