package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
	"github.com/hobbs-it/helpdesk-bot/internal/pkg/id"
)

// MessageLogRepo appends inbound messages to the audit table.
// PK: chat_id (N), SK: entry_id (S, ULID — sorts by arrival time).
// Write-mostly: the engine never reads it back, only the ops API does.
type MessageLogRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMessageLogRepo(client *dynamodb.Client, tableName string) *MessageLogRepo {
	return &MessageLogRepo{client: client, tableName: tableName}
}

func (r *MessageLogRepo) Append(ctx context.Context, chatID int64, text string) error {
	entry := domain.MessageLogEntry{
		ChatID:    chatID,
		EntryID:   id.New(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByChat returns up to limit most recent entries for a chat, newest
// first.
func (r *MessageLogRepo) ListByChat(ctx context.Context, chatID int64, limit int32) ([]domain.MessageLogEntry, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("chat_id = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberN{Value: strconv.FormatInt(chatID, 10)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}
	var entries []domain.MessageLogEntry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
