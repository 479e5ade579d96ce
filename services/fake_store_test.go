package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTableKeys mirrors the real table key schemas so the fake can locate
// items the way DynamoDB would.
var fakeTableKeys = map[string][]string{
	models.GamesTable:        {"gameId"},
	models.RSVPsTable:        {"gameId", "rsvpId"},
	models.UsersTable:        {"userId"},
	models.ChatTable:         {"roomId", "messageId"},
	models.WeatherCacheTable: {"date"},
}

// fakeDynamo is an in-memory DynamoAPI. It understands the expression
// subset the services actually use: "SET #a = :a, ..." updates and
// equality-only key conditions.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string][]map[string]types.AttributeValue)}
}

func avEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	}
	return false
}

func cloneItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

// findIndex locates the item whose key attributes all match. Caller must
// hold mu.
func (f *fakeDynamo) findIndex(tableName string, key map[string]types.AttributeValue) int {
	for i, item := range f.tables[tableName] {
		match := true
		for attr, want := range key {
			got, ok := item[attr]
			if !ok || !avEqual(want, got) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func (f *fakeDynamo) keyOf(tableName string, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	key := make(map[string]types.AttributeValue)
	for _, attr := range fakeTableKeys[tableName] {
		key[attr] = item[attr]
	}
	return key
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.findIndex(tableName, f.keyOf(tableName, marshaled)); i >= 0 {
		f.tables[tableName][i] = marshaled
		return nil
	}
	f.tables[tableName] = append(f.tables[tableName], marshaled)
	return nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.findIndex(tableName, key); i >= 0 {
		return cloneItem(f.tables[tableName][i]), nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, tableName, updateExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.findIndex(tableName, key)
	if i < 0 {
		f.tables[tableName] = append(f.tables[tableName], cloneItem(key))
		i = len(f.tables[tableName]) - 1
	}
	item := f.tables[tableName][i]

	if !strings.HasPrefix(updateExpression, "SET ") {
		return nil, fmt.Errorf("fake store only supports SET expressions, got %q", updateExpression)
	}
	for _, clause := range strings.Split(strings.TrimPrefix(updateExpression, "SET "), ", ") {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed SET clause %q", clause)
		}
		attr := parts[0]
		if name, ok := expressionAttributeNames[attr]; ok {
			attr = name
		}
		value, ok := expressionAttributeValues[parts[1]]
		if !ok {
			return nil, fmt.Errorf("missing value for placeholder %q", parts[1])
		}
		item[attr] = value
	}
	return cloneItem(item), nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.findIndex(tableName, key); i >= 0 {
		f.tables[tableName] = append(f.tables[tableName][:i], f.tables[tableName][i+1:]...)
	}
	return nil
}

func (f *fakeDynamo) QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	type condition struct {
		attr        string
		placeholder string
	}
	var conditions []condition
	for _, clause := range strings.Split(keyConditionExpression, " AND ") {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("fake store only supports equality conditions, got %q", clause)
		}
		attr := parts[0]
		if name, ok := expressionAttributeNames[attr]; ok {
			attr = name
		}
		conditions = append(conditions, condition{attr: attr, placeholder: parts[1]})
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var results []map[string]types.AttributeValue
	for _, item := range f.tables[tableName] {
		match := true
		for _, c := range conditions {
			want, ok := expressionAttributeValues[c.placeholder]
			if !ok {
				return nil, fmt.Errorf("missing value for placeholder %q", c.placeholder)
			}
			got, present := item[c.attr]
			if !present || !avEqual(want, got) {
				match = false
				break
			}
		}
		if match {
			results = append(results, cloneItem(item))
			if limit > 0 && int32(len(results)) >= limit {
				break
			}
		}
	}
	return results, nil
}

func (f *fakeDynamo) ScanItems(ctx context.Context, tableName string, out interface{}) error {
	f.mu.Lock()
	items := make([]map[string]types.AttributeValue, len(f.tables[tableName]))
	for i, item := range f.tables[tableName] {
		items[i] = cloneItem(item)
	}
	f.mu.Unlock()
	return attributevalue.UnmarshalListOfMaps(items, out)
}

func (f *fakeDynamo) BatchDeleteItems(ctx context.Context, tableName string, keys []map[string]types.AttributeValue) error {
	for _, key := range keys {
		if err := f.DeleteItem(ctx, tableName, key); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeDynamo) count(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[tableName])
}

// fakeEmailer records outbound mail instead of sending it.
type fakeEmailer struct {
	mu          sync.Mutex
	rsvp        []string
	attendance  []string
	gameChanges []string
}

func (f *fakeEmailer) SendRSVPReminder(ctx context.Context, toEmail, userName string, game models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rsvp = append(f.rsvp, toEmail)
	return nil
}

func (f *fakeEmailer) SendAttendanceReminder(ctx context.Context, toEmail, userName string, game models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attendance = append(f.attendance, toEmail)
	return nil
}

func (f *fakeEmailer) SendGameChangeNotification(ctx context.Context, toEmail, userName string, game models.Game, changes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gameChanges = append(f.gameChanges, toEmail)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
