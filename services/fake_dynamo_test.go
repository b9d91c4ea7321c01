package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory stand-in for the DynamoDB client. It
// serializes TransactWriteItems calls the way DynamoDB serializes
// conflicting transactions, evaluates the condition-expression subset
// the services use, and reports condition failures with the same error
// types as the real client, so the race behavior under test is the
// real arbitration logic.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	// conflictsRemaining cancels that many upcoming transactions with
	// TransactionConflict, simulating contention on an item.
	conflictsRemaining int
}

// key attribute names per table, in (partition, sort) order
var fakeKeySchemas = map[string][]string{
	models.UserProfilesTable:             {"userId"},
	models.SwipesTable:                   {"fromUserId", "toUserId"},
	models.MatchesTable:                  {"userAId", "userBId"},
	models.ConversationsTable:            {"conversationId"},
	models.ConversationParticipantsTable: {"conversationId", "userId"},
	models.NotificationsTable:            {"receiverId", "notificationId"},
	models.BlocksTable:                   {"blockerId", "blockedUserId"},
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[name]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		f.tables[name] = t
	}
	return t
}

func attrString(item map[string]types.AttributeValue, name string) string {
	if attr, ok := item[name]; ok {
		if s, ok := attr.(*types.AttributeValueMemberS); ok {
			return s.Value
		}
	}
	return ""
}

func (f *fakeDynamo) itemKey(tableName string, item map[string]types.AttributeValue) string {
	schema, ok := fakeKeySchemas[tableName]
	if !ok {
		panic(fmt.Sprintf("fakeDynamo: unknown table %q", tableName))
	}
	parts := make([]string, 0, len(schema))
	for _, attr := range schema {
		parts = append(parts, attrString(item, attr))
	}
	return strings.Join(parts, "|")
}

// sortedItems returns a table's rows in key order, the way DynamoDB
// scans return them.
func (f *fakeDynamo) sortedItems(tableName string) []map[string]types.AttributeValue {
	t := f.table(tableName)
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		items = append(items, t[k])
	}
	return items
}

// count returns the number of rows in a table.
func (f *fakeDynamo) count(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.table(tableName))
}

// items returns a snapshot of every row in a table.
func (f *fakeDynamo) items(tableName string) []map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedItems(tableName)
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item := f.table(*params.TableName)[f.itemKey(*params.TableName, params.Key)]
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tableName := *params.TableName
	key := f.itemKey(tableName, params.Item)
	existing := f.table(tableName)[key]

	if params.ConditionExpression != nil {
		ok := evalCondition(*params.ConditionExpression, existing, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}

	f.table(tableName)[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	field, valueRef, err := parseEquality(*params.KeyConditionExpression, params.ExpressionAttributeNames)
	if err != nil {
		return nil, err
	}
	want, ok := params.ExpressionAttributeValues[valueRef]
	if !ok {
		return nil, fmt.Errorf("fakeDynamo: unresolved value %s", valueRef)
	}
	wantStr, ok := want.(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("fakeDynamo: only string key conditions are supported")
	}

	var items []map[string]types.AttributeValue
	for _, item := range f.sortedItems(*params.TableName) {
		if attrString(item, field) == wantStr.Value {
			items = append(items, item)
		}
		if params.Limit != nil && len(items) >= int(*params.Limit) {
			break
		}
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return &dynamodb.ScanOutput{Items: f.sortedItems(*params.TableName)}, nil
}

func (f *fakeDynamo) TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conflictsRemaining > 0 {
		f.conflictsRemaining--
		reasons := make([]types.CancellationReason, len(params.TransactItems))
		for i := range reasons {
			reasons[i] = types.CancellationReason{Code: aws.String("TransactionConflict")}
		}
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled, please refer cancellation reasons for specific reasons"),
			CancellationReasons: reasons,
		}
	}

	// Phase one: evaluate every condition against current state.
	reasons := make([]types.CancellationReason, len(params.TransactItems))
	failed := false
	for i, item := range params.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		switch {
		case item.Put != nil:
			put := item.Put
			existing := f.table(*put.TableName)[f.itemKey(*put.TableName, put.Item)]
			if put.ConditionExpression != nil &&
				!evalCondition(*put.ConditionExpression, existing, put.ExpressionAttributeNames, put.ExpressionAttributeValues) {
				reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
				failed = true
			}
		case item.ConditionCheck != nil:
			check := item.ConditionCheck
			existing := f.table(*check.TableName)[f.itemKey(*check.TableName, check.Key)]
			if !evalCondition(*check.ConditionExpression, existing, check.ExpressionAttributeNames, check.ExpressionAttributeValues) {
				reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
				failed = true
			}
		default:
			return nil, fmt.Errorf("fakeDynamo: unsupported transact item %d", i)
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled, please refer cancellation reasons for specific reasons"),
			CancellationReasons: reasons,
		}
	}

	// Phase two: apply every write. Nothing was applied on failure.
	for _, item := range params.TransactItems {
		if item.Put != nil {
			f.table(*item.Put.TableName)[f.itemKey(*item.Put.TableName, item.Put.Item)] = item.Put.Item
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// evalCondition evaluates the condition subset the services emit:
// attribute_exists(x), attribute_not_exists(x), #name = :value and
// #name <> :value clauses joined with a single AND or OR. Comparisons
// against a missing attribute are false, matching DynamoDB.
func evalCondition(expr string, existing map[string]types.AttributeValue, names map[string]string, values map[string]types.AttributeValue) bool {
	if orClauses := strings.Split(expr, " OR "); len(orClauses) > 1 {
		for _, clause := range orClauses {
			if evalCondition(strings.TrimSpace(clause), existing, names, values) {
				return true
			}
		}
		return false
	}

	for _, clause := range strings.Split(expr, " AND ") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "attribute_not_exists("):
			if existing != nil {
				return false
			}
		case strings.HasPrefix(clause, "attribute_exists("):
			if existing == nil {
				return false
			}
		case strings.Contains(clause, " <> "):
			field, want := resolveComparison(clause, "<>", names, values)
			if existing == nil || attrString(existing, field) == want {
				return false
			}
		case strings.Contains(clause, " = "):
			field, want := resolveComparison(clause, "=", names, values)
			if existing == nil || attrString(existing, field) != want {
				return false
			}
		default:
			panic(fmt.Sprintf("fakeDynamo: unsupported condition clause %q", clause))
		}
	}
	return true
}

// resolveComparison splits a "field <op> :ref" clause and resolves the
// #alias and the :ref to their concrete name and string value.
func resolveComparison(clause, op string, names map[string]string, values map[string]types.AttributeValue) (field, want string) {
	parts := strings.SplitN(clause, op, 2)
	field = strings.TrimSpace(parts[0])
	valueRef := strings.TrimSpace(parts[1])
	if strings.HasPrefix(field, "#") {
		resolved, ok := names[field]
		if !ok {
			panic(fmt.Sprintf("fakeDynamo: unresolved name %s", field))
		}
		field = resolved
	}
	value, ok := values[valueRef].(*types.AttributeValueMemberS)
	if !ok {
		panic(fmt.Sprintf("fakeDynamo: unresolved condition value %s", valueRef))
	}
	return field, value.Value
}

// parseEquality splits a "field = :ref" expression, resolving #aliases.
func parseEquality(expr string, names map[string]string) (field, valueRef string, err error) {
	parts := strings.SplitN(expr, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("fakeDynamo: unsupported expression %q", expr)
	}
	field = strings.TrimSpace(parts[0])
	valueRef = strings.TrimSpace(parts[1])
	if strings.HasPrefix(field, "#") {
		resolved, ok := names[field]
		if !ok {
			return "", "", fmt.Errorf("fakeDynamo: unresolved name %s", field)
		}
		field = resolved
	}
	return field, valueRef, nil
}
