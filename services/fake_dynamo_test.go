package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"petfectly_server/models"
	"petfectly_server/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type row = map[string]types.AttributeValue

// fakeDynamo is an in-memory table store that understands the handful of
// expressions the services issue.
type fakeDynamo struct {
	mu       sync.Mutex
	tables   map[string][]row
	scanPage int
	failOn   map[string]error
	calls    []string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string][]row{}, failOn: map[string]error{}}
}

var fakeKeys = map[string][]string{
	models.UsersTable:    {"email"},
	models.PetsTable:     {"petId"},
	models.MatchesTable:  {"matchId"},
	models.MessagesTable: {"matchId", "createdAt"},
}

func (f *fakeDynamo) record(op, table string) error {
	f.calls = append(f.calls, op+":"+table)
	return f.failOn[op+":"+table]
}

func (f *fakeDynamo) find(table string, key row) int {
	for i, it := range f.tables[table] {
		match := true
		for _, attr := range fakeKeys[table] {
			if stringAttr(it, attr) != stringAttr(key, attr) {
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

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	if err := f.record("PutItem", table); err != nil {
		return nil, err
	}
	idx := f.find(table, in.Item)
	if idx >= 0 && strings.HasPrefix(aws.ToString(in.ConditionExpression), "attribute_not_exists") {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	if idx >= 0 {
		f.tables[table][idx] = in.Item
	} else {
		f.tables[table] = append(f.tables[table], in.Item)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	if err := f.record("GetItem", table); err != nil {
		return nil, err
	}
	if idx := f.find(table, in.Key); idx >= 0 {
		return &dynamodb.GetItemOutput{Item: f.tables[table][idx]}, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

// UpdateItem supports "SET a = :a, b = :b" with an optional attribute_exists condition.
func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	if err := f.record("UpdateItem", table); err != nil {
		return nil, err
	}
	idx := f.find(table, in.Key)
	if idx < 0 {
		if strings.HasPrefix(aws.ToString(in.ConditionExpression), "attribute_exists") {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
		}
		f.tables[table] = append(f.tables[table], row{})
		idx = len(f.tables[table]) - 1
		for k, v := range in.Key {
			f.tables[table][idx][k] = v
		}
	}

	updated := row{}
	for k, v := range f.tables[table][idx] {
		updated[k] = v
	}
	for _, assignment := range strings.Split(strings.TrimPrefix(aws.ToString(in.UpdateExpression), "SET "), ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unsupported update %q", assignment)
		}
		name := resolveName(strings.TrimSpace(parts[0]), in.ExpressionAttributeNames)
		updated[name] = in.ExpressionAttributeValues[strings.TrimSpace(parts[1])]
	}
	f.tables[table][idx] = updated
	return &dynamodb.UpdateItemOutput{Attributes: updated}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	if err := f.record("DeleteItem", table); err != nil {
		return nil, err
	}
	if idx := f.find(table, in.Key); idx >= 0 {
		f.tables[table] = append(f.tables[table][:idx], f.tables[table][idx+1:]...)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

// Query supports a single equality key condition and orders by createdAt.
func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	if err := f.record("Query", table); err != nil {
		return nil, err
	}
	matches := filterRows(f.tables[table], aws.ToString(in.KeyConditionExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues)

	forward := in.ScanIndexForward == nil || *in.ScanIndexForward
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := stringAttr(matches[i], "createdAt"), stringAttr(matches[j], "createdAt")
		if forward {
			return a < b
		}
		return a > b
	})
	if in.Limit != nil && int(*in.Limit) < len(matches) {
		matches = matches[:*in.Limit]
	}
	return &dynamodb.QueryOutput{Items: matches}, nil
}

// Scan supports "#a = :a AND ..." filters and pages by scanPage items when set.
func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := aws.ToString(in.TableName)
	if err := f.record("Scan", table); err != nil {
		return nil, err
	}

	rows := f.tables[table]
	start := 0
	if in.ExclusiveStartKey != nil {
		start, _ = strconv.Atoi(stringAttr(in.ExclusiveStartKey, "offset"))
	}
	end := len(rows)
	out := &dynamodb.ScanOutput{}
	if f.scanPage > 0 && start+f.scanPage < end {
		end = start + f.scanPage
		out.LastEvaluatedKey = utils.StringKey("offset", strconv.Itoa(end))
	}

	out.Items = filterRows(rows[start:end], aws.ToString(in.FilterExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	return out, nil
}

func filterRows(rows []row, expr string, names map[string]string, values row) []row {
	var out []row
	for _, it := range rows {
		if matchesExpression(it, expr, names, values) {
			out = append(out, it)
		}
	}
	return out
}

func matchesExpression(it row, expr string, names map[string]string, values row) bool {
	if strings.TrimSpace(expr) == "" {
		return true
	}
	for _, clause := range strings.Split(expr, " AND ") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return false
		}
		name := resolveName(strings.TrimSpace(parts[0]), names)
		if !sameValue(it[name], values[strings.TrimSpace(parts[1])]) {
			return false
		}
	}
	return true
}

func resolveName(name string, names map[string]string) string {
	if resolved, ok := names[name]; ok {
		return resolved
	}
	return name
}

func sameValue(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	}
	return false
}

func stringAttr(it row, name string) string {
	if v, ok := it[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
