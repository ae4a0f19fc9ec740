package repository

import (
	"context"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName    = "quotes"
	quotesServiceIDIndex      = "service_id-index"
	quotesProfessionalIDIndex = "professional_id-index"
	quotesClientIDIndex       = "client_id-index"
)

type quoteMaterialItem struct {
	Name      string  `dynamodbav:"name"`
	Quantity  int     `dynamodbav:"quantity"`
	Unit      string  `dynamodbav:"unit,omitempty"`
	UnitPrice float64 `dynamodbav:"unit_price"`
}

type quoteLaborItem struct {
	Description string  `dynamodbav:"description,omitempty"`
	Total       float64 `dynamodbav:"total"`
}

type quoteItem struct {
	ID             string `dynamodbav:"id"`
	ServiceID      string `dynamodbav:"service_id"`
	ProfessionalID string `dynamodbav:"professional_id"`
	ClientID       string `dynamodbav:"client_id"`

	Materials  []quoteMaterialItem `dynamodbav:"materials,omitempty"`
	Labor      quoteLaborItem      `dynamodbav:"labor"`
	TotalPrice float64             `dynamodbav:"total_price"`

	Status        string `dynamodbav:"status"`
	PaymentStatus string `dynamodbav:"payment_status"`
	ValidUntil    string `dynamodbav:"valid_until"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_id-index (PK: service_id)
//   - GSI: professional_id-index (PK: professional_id)
//   - GSI: client_id-index (PK: client_id)
//
// The repository also knows the services table name because Accept spans both
// tables in one TransactWriteItems call.

type QuoteDynamoRepository struct {
	ddb               *dynamodb.Client
	tableName         string
	servicesTableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:               ddb,
		tableName:         getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
		servicesTableName: getenvDefault("SERVICES_TABLE", defaultServicesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it := toQuoteItem(q)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, mapConditionErr(err)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByServiceID(ctx context.Context, serviceID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.queryIndex(ctx, quotesServiceIDIndex, "service_id", serviceID, status)
}

func (r *QuoteDynamoRepository) ListByProfessionalID(ctx context.Context, professionalID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.queryIndex(ctx, quotesProfessionalIDIndex, "professional_id", professionalID, status)
}

func (r *QuoteDynamoRepository) ListByClientID(ctx context.Context, clientID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.queryIndex(ctx, quotesClientIDIndex, "client_id", clientID, status)
}

func (r *QuoteDynamoRepository) queryIndex(ctx context.Context, index, key, value string, status entities.QuoteStatus) ([]entities.Quote, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#key = :key"),
		ExpressionAttributeNames: map[string]string{
			"#key": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: value},
		},
	}
	if status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames["#status"] = "status"
		in.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: string(status)}
	}

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Quote, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromQuoteItem(it))
	}
	return items, nil
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:    aws.String("SET #status = :to, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Quote{}, mapConditionErr(err)
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) MarkExpired(ctx context.Context, id string) (entities.Quote, error) {
	return r.UpdateStatus(ctx, id, entities.QuoteStatusPending, entities.QuoteStatusExpired)
}

// Accept applies the whole acceptance in one DynamoDB transaction. The
// condition on the service row (status still pending) is the linearization
// point for competing accepts: the loser's transaction cancels with a
// conditional-check failure and nothing it contained is applied.
//
// DynamoDB caps a transaction at 100 items, which bounds the rejected
// siblings per call; service competitions stay far below that in practice.
func (r *QuoteDynamoRepository) Accept(ctx context.Context, serviceID, winnerID string, siblingIDs []string) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	items := []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName: aws.String(r.servicesTableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: serviceID},
				},
				ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
				UpdateExpression:    aws.String("SET #status = :in_progress, #updated_at = :updated_at"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pending":     &types.AttributeValueMemberS{Value: string(entities.ServiceStatusPending)},
					":in_progress": &types.AttributeValueMemberS{Value: string(entities.ServiceStatusInProgress)},
					":updated_at":  &types.AttributeValueMemberS{Value: now},
				},
				ExpressionAttributeNames: map[string]string{
					"#id":         "id",
					"#status":     "status",
					"#updated_at": "updated_at",
				},
			},
		},
		r.quoteStatusTransactItem(winnerID, entities.QuoteStatusAccepted, now),
	}
	for _, siblingID := range siblingIDs {
		items = append(items, r.quoteStatusTransactItem(siblingID, entities.QuoteStatusRejected, now))
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return entities.Quote{}, mapConditionErr(err)
	}

	return r.GetByID(ctx, winnerID)
}

func (r *QuoteDynamoRepository) quoteStatusTransactItem(id string, to entities.QuoteStatus, now string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
			ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
			UpdateExpression:    aws.String("SET #status = :to, #updated_at = :updated_at"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pending":    &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPending)},
				":to":         &types.AttributeValueMemberS{Value: string(to)},
				":updated_at": &types.AttributeValueMemberS{Value: now},
			},
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#status":     "status",
				"#updated_at": "updated_at",
			},
		},
	}
}

func toQuoteItem(q entities.Quote) quoteItem {
	materials := make([]quoteMaterialItem, 0, len(q.Materials))
	for _, m := range q.Materials {
		materials = append(materials, quoteMaterialItem{
			Name:      m.Name,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: m.UnitPrice,
		})
	}
	return quoteItem{
		ID:             q.ID,
		ServiceID:      q.ServiceID,
		ProfessionalID: q.ProfessionalID,
		ClientID:       q.ClientID,
		Materials:      materials,
		Labor: quoteLaborItem{
			Description: q.Labor.Description,
			Total:       q.Labor.Total,
		},
		TotalPrice:    q.TotalPrice,
		Status:        string(q.Status),
		PaymentStatus: string(q.PaymentStatus),
		ValidUntil:    q.ValidUntil.UTC().Format(time.RFC3339Nano),
		CreatedAt:     q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	validUntil, _ := time.Parse(time.RFC3339Nano, it.ValidUntil)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	materials := make([]entities.QuoteMaterial, 0, len(it.Materials))
	for _, m := range it.Materials {
		materials = append(materials, entities.QuoteMaterial{
			Name:      m.Name,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: m.UnitPrice,
		})
	}
	return entities.Quote{
		ID:             it.ID,
		ServiceID:      it.ServiceID,
		ProfessionalID: it.ProfessionalID,
		ClientID:       it.ClientID,
		Materials:      materials,
		Labor: entities.QuoteLabor{
			Description: it.Labor.Description,
			Total:       it.Labor.Total,
		},
		TotalPrice:    it.TotalPrice,
		Status:        entities.QuoteStatus(it.Status),
		PaymentStatus: entities.QuotePaymentStatus(it.PaymentStatus),
		ValidUntil:    validUntil,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
