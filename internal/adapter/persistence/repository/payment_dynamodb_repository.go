package repository

import (
	"context"
	"strconv"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsQuoteIDIndex     = "quote_id-index"
)

type paymentItem struct {
	ID        string `dynamodbav:"id"`
	QuoteID   string `dynamodbav:"quote_id"`
	ServiceID string `dynamodbav:"service_id"`

	Amount   string `dynamodbav:"amount"`
	Currency string `dynamodbav:"currency"`
	Method   string `dynamodbav:"method"`
	Status   string `dynamodbav:"status"`

	AppFee      string `dynamodbav:"app_fee"`
	GatewayFee  string `dynamodbav:"gateway_fee"`
	NetAmount   string `dynamodbav:"net_amount"`
	AvailableAt string `dynamodbav:"available_at"`

	ExternalReference string `dynamodbav:"external_reference"`
	ChargeRef         string `dynamodbav:"charge_ref,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
//
// Confirm and Refund span the payments and quotes tables, so the repository
// knows both table names and uses TransactWriteItems: a completed payment next
// to an unpaid quote must never be observable.
type PaymentDynamoRepository struct {
	ddb             *dynamodb.Client
	tableName       string
	quotesTableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:             ddb,
		tableName:       getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
		quotesTableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, mapConditionErr(err)
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

func (r *PaymentDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.PaymentStatus, chargeRef string) (entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #status = :to, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":from":       &types.AttributeValueMemberS{Value: string(from)},
		":to":         &types.AttributeValueMemberS{Value: string(to)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	if chargeRef != "" {
		expr += ", #charge_ref = :charge_ref"
		values[":charge_ref"] = &types.AttributeValueMemberS{Value: chargeRef}
		names["#charge_ref"] = "charge_ref"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Payment{}, mapConditionErr(err)
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

// Confirm settles the payment and marks the quote paid in one transaction.
func (r *PaymentDynamoRepository) Confirm(ctx context.Context, paymentID, quoteID, chargeRef string) (entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: paymentID},
					},
					ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
					UpdateExpression:    aws.String("SET #status = :completed, #charge_ref = :charge_ref, #updated_at = :updated_at"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":pending":    &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
						":completed":  &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCompleted)},
						":charge_ref": &types.AttributeValueMemberS{Value: chargeRef},
						":updated_at": &types.AttributeValueMemberS{Value: now},
					},
					ExpressionAttributeNames: map[string]string{
						"#id":         "id",
						"#status":     "status",
						"#charge_ref": "charge_ref",
						"#updated_at": "updated_at",
					},
				},
			},
			r.quotePaymentStatusTransactItem(quoteID, entities.QuotePaymentStatusPending, entities.QuotePaymentStatusPaid, now),
		},
	})
	if err != nil {
		return entities.Payment{}, mapConditionErr(err)
	}
	return r.GetByID(ctx, paymentID)
}

// Refund reverses a completed payment and the quote's paid flag together.
func (r *PaymentDynamoRepository) Refund(ctx context.Context, paymentID, quoteID string) (entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: paymentID},
					},
					ConditionExpression: aws.String("attribute_exists(#id) AND #status = :completed"),
					UpdateExpression:    aws.String("SET #status = :refunded, #updated_at = :updated_at"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed":  &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCompleted)},
						":refunded":   &types.AttributeValueMemberS{Value: string(entities.PaymentStatusRefunded)},
						":updated_at": &types.AttributeValueMemberS{Value: now},
					},
					ExpressionAttributeNames: map[string]string{
						"#id":         "id",
						"#status":     "status",
						"#updated_at": "updated_at",
					},
				},
			},
			r.quotePaymentStatusTransactItem(quoteID, entities.QuotePaymentStatusPaid, entities.QuotePaymentStatusRefunded, now),
		},
	})
	if err != nil {
		return entities.Payment{}, mapConditionErr(err)
	}
	return r.GetByID(ctx, paymentID)
}

func (r *PaymentDynamoRepository) quotePaymentStatusTransactItem(quoteID string, from, to entities.QuotePaymentStatus, now string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(r.quotesTableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: quoteID},
			},
			ConditionExpression: aws.String("attribute_exists(#id) AND #payment_status = :from"),
			UpdateExpression:    aws.String("SET #payment_status = :to, #updated_at = :updated_at"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":from":       &types.AttributeValueMemberS{Value: string(from)},
				":to":         &types.AttributeValueMemberS{Value: string(to)},
				":updated_at": &types.AttributeValueMemberS{Value: now},
			},
			ExpressionAttributeNames: map[string]string{
				"#id":             "id",
				"#payment_status": "payment_status",
				"#updated_at":     "updated_at",
			},
		},
	}
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		QuoteID:           p.QuoteID,
		ServiceID:         p.ServiceID,
		Amount:            floatToString(p.Amount),
		Currency:          p.Currency,
		Method:            string(p.Method),
		Status:            string(p.Status),
		AppFee:            floatToString(p.AppFee),
		GatewayFee:        floatToString(p.GatewayFee),
		NetAmount:         floatToString(p.NetAmount),
		AvailableAt:       p.AvailableAt.UTC().Format(time.RFC3339Nano),
		ExternalReference: p.ExternalReference,
		ChargeRef:         p.ChargeRef,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	appFee, _ := strconv.ParseFloat(it.AppFee, 64)
	gatewayFee, _ := strconv.ParseFloat(it.GatewayFee, 64)
	netAmount, _ := strconv.ParseFloat(it.NetAmount, 64)
	availableAt, _ := time.Parse(time.RFC3339Nano, it.AvailableAt)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	return entities.Payment{
		ID:                it.ID,
		QuoteID:           it.QuoteID,
		ServiceID:         it.ServiceID,
		Amount:            amount,
		Currency:          it.Currency,
		Method:            entities.PaymentMethod(it.Method),
		Status:            entities.PaymentStatus(it.Status),
		AppFee:            appFee,
		GatewayFee:        gatewayFee,
		NetAmount:         netAmount,
		AvailableAt:       availableAt,
		ExternalReference: it.ExternalReference,
		ChargeRef:         it.ChargeRef,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}
