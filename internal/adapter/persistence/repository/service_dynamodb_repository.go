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
	defaultServicesTableName = "services"
	servicesClientIDIndex    = "client_id-index"
)

type signatureItem struct {
	SignatureBlob string `dynamodbav:"signature_blob"`
	SignedAt      string `dynamodbav:"signed_at"`
	SignedBy      string `dynamodbav:"signed_by"`
}

// TimestampNanos duplicates Timestamp as epoch nanos so the last-write-wins
// condition compares numbers. RFC3339Nano trims trailing zeros, so its string
// order disagrees with time order within the same second.
type locationItem struct {
	Lat            float64 `dynamodbav:"lat"`
	Lng            float64 `dynamodbav:"lng"`
	Timestamp      string  `dynamodbav:"timestamp"`
	TimestampNanos int64   `dynamodbav:"ts_nanos"`
}

type serviceItem struct {
	ID          string  `dynamodbav:"id"`
	ClientID    string  `dynamodbav:"client_id"`
	Title       string  `dynamodbav:"title"`
	Description string  `dynamodbav:"description,omitempty"`
	Category    string  `dynamodbav:"category"`
	BudgetMin   float64 `dynamodbav:"budget_min"`
	BudgetMax   float64 `dynamodbav:"budget_max"`
	Priority    string  `dynamodbav:"priority"`
	Deadline    string  `dynamodbav:"deadline,omitempty"`

	Status      string `dynamodbav:"status"`
	RouteStatus string `dynamodbav:"route_status"`

	VerificationCode          string `dynamodbav:"verification_code,omitempty"`
	VerificationCodeExpiresAt string `dynamodbav:"verification_code_expires_at,omitempty"`

	ClientSignature      *signatureItem `dynamodbav:"client_signature,omitempty"`
	ProfessionalLocation *locationItem  `dynamodbav:"professional_location,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository persists Service entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
//
// Every state transition is a conditional UpdateItem so concurrent callers
// either apply a whole transition or fail with ErrConditionFailed; there is no
// read-modify-write window on the stored row.

type ServiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb *dynamodb.Client) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SERVICES_TABLE", defaultServicesTableName),
	}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	it := toServiceItem(s)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Service{}, err
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
		return entities.Service{}, mapConditionErr(err)
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Service{}, err
	}
	if len(out.Item) == 0 {
		return entities.Service{}, nil
	}

	var it serviceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Service{}, err
	}
	return fromServiceItem(it), nil
}

func (r *ServiceDynamoRepository) ListByClientID(ctx context.Context, clientID string, status entities.ServiceStatus) ([]entities.Service, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(servicesClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	}
	if status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: string(status)}
	}

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Service, 0, len(out.Items))
	for _, raw := range out.Items {
		var it serviceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromServiceItem(it))
	}
	return items, nil
}

func (r *ServiceDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.ServiceStatus) (entities.Service, error) {
	return r.update(ctx, id, updateSpec{
		expr:      "SET #status = :to, #updated_at = :updated_at",
		condition: "attribute_exists(#id) AND #status = :from",
		values: map[string]types.AttributeValue{
			":to":   &types.AttributeValueMemberS{Value: string(to)},
			":from": &types.AttributeValueMemberS{Value: string(from)},
		},
		names: map[string]string{"#status": "status"},
	})
}

func (r *ServiceDynamoRepository) UpdateRouteStatus(ctx context.Context, id string, from, to entities.RouteStatus) (entities.Service, error) {
	return r.update(ctx, id, updateSpec{
		expr:      "SET #route_status = :to, #updated_at = :updated_at",
		condition: "attribute_exists(#id) AND #route_status = :from AND #status = :in_progress",
		values: map[string]types.AttributeValue{
			":to":          &types.AttributeValueMemberS{Value: string(to)},
			":from":        &types.AttributeValueMemberS{Value: string(from)},
			":in_progress": &types.AttributeValueMemberS{Value: string(entities.ServiceStatusInProgress)},
		},
		names: map[string]string{"#route_status": "route_status", "#status": "status"},
	})
}

func (r *ServiceDynamoRepository) MarkArrived(ctx context.Context, id string, from entities.RouteStatus, code string, expiresAt time.Time) (entities.Service, error) {
	return r.update(ctx, id, updateSpec{
		expr:      "SET #route_status = :arrived, #code = :code, #code_exp = :code_exp, #updated_at = :updated_at",
		condition: "attribute_exists(#id) AND #route_status = :from AND #status = :in_progress",
		values: map[string]types.AttributeValue{
			":arrived":     &types.AttributeValueMemberS{Value: string(entities.RouteStatusArrived)},
			":from":        &types.AttributeValueMemberS{Value: string(from)},
			":in_progress": &types.AttributeValueMemberS{Value: string(entities.ServiceStatusInProgress)},
			":code":        &types.AttributeValueMemberS{Value: code},
			":code_exp":    &types.AttributeValueMemberS{Value: expiresAt.UTC().Format(time.RFC3339Nano)},
		},
		names: map[string]string{
			"#route_status": "route_status",
			"#status":       "status",
			"#code":         "verification_code",
			"#code_exp":     "verification_code_expires_at",
		},
	})
}

// SetVerificationCode swaps the stored code while still arrived. Because the
// old code is overwritten in the same write that issues the new one, a verify
// attempt carrying the old code can never succeed after this returns.
func (r *ServiceDynamoRepository) SetVerificationCode(ctx context.Context, id string, code string, expiresAt time.Time) (entities.Service, error) {
	return r.update(ctx, id, updateSpec{
		expr:      "SET #code = :code, #code_exp = :code_exp, #updated_at = :updated_at",
		condition: "attribute_exists(#id) AND #route_status = :arrived",
		values: map[string]types.AttributeValue{
			":arrived":  &types.AttributeValueMemberS{Value: string(entities.RouteStatusArrived)},
			":code":     &types.AttributeValueMemberS{Value: code},
			":code_exp": &types.AttributeValueMemberS{Value: expiresAt.UTC().Format(time.RFC3339Nano)},
		},
		names: map[string]string{
			"#route_status": "route_status",
			"#code":         "verification_code",
			"#code_exp":     "verification_code_expires_at",
		},
	})
}

// ConsumeVerificationCode is the single-use gate: the stored code must still
// equal the supplied one at write time, and the code attributes are removed in
// the same write.
func (r *ServiceDynamoRepository) ConsumeVerificationCode(ctx context.Context, id string, code string) (entities.Service, error) {
	return r.update(ctx, id, updateSpec{
		expr:      "SET #route_status = :started, #updated_at = :updated_at REMOVE #code, #code_exp",
		condition: "attribute_exists(#id) AND #route_status = :arrived AND #code = :code",
		values: map[string]types.AttributeValue{
			":started": &types.AttributeValueMemberS{Value: string(entities.RouteStatusServiceStarted)},
			":arrived": &types.AttributeValueMemberS{Value: string(entities.RouteStatusArrived)},
			":code":    &types.AttributeValueMemberS{Value: code},
		},
		names: map[string]string{
			"#route_status": "route_status",
			"#code":         "verification_code",
			"#code_exp":     "verification_code_expires_at",
		},
	})
}

func (r *ServiceDynamoRepository) SetSignature(ctx context.Context, id string, sig entities.ClientSignature) (entities.Service, error) {
	sigAV, err := attributevalue.Marshal(signatureItem{
		SignatureBlob: sig.SignatureBlob,
		SignedAt:      sig.SignedAt.UTC().Format(time.RFC3339Nano),
		SignedBy:      sig.SignedBy,
	})
	if err != nil {
		return entities.Service{}, err
	}

	return r.update(ctx, id, updateSpec{
		expr:      "SET #sig = :sig, #updated_at = :updated_at",
		condition: "attribute_exists(#id) AND #route_status = :started AND attribute_not_exists(#sig)",
		values: map[string]types.AttributeValue{
			":sig":     sigAV,
			":started": &types.AttributeValueMemberS{Value: string(entities.RouteStatusServiceStarted)},
		},
		names: map[string]string{
			"#sig":          "client_signature",
			"#route_status": "route_status",
		},
	})
}

// Complete is the one write that touches both state machines: it requires the
// signature to exist and closes route and commercial status together.
func (r *ServiceDynamoRepository) Complete(ctx context.Context, id string) (entities.Service, error) {
	return r.update(ctx, id, updateSpec{
		expr:      "SET #route_status = :done, #status = :completed, #updated_at = :updated_at",
		condition: "attribute_exists(#id) AND #route_status = :started AND #status = :in_progress AND attribute_exists(#sig)",
		values: map[string]types.AttributeValue{
			":done":        &types.AttributeValueMemberS{Value: string(entities.RouteStatusServiceCompleted)},
			":started":     &types.AttributeValueMemberS{Value: string(entities.RouteStatusServiceStarted)},
			":completed":   &types.AttributeValueMemberS{Value: string(entities.ServiceStatusCompleted)},
			":in_progress": &types.AttributeValueMemberS{Value: string(entities.ServiceStatusInProgress)},
		},
		names: map[string]string{
			"#route_status": "route_status",
			"#status":       "status",
			"#sig":          "client_signature",
		},
	})
}

// SetProfessionalLocation is last-write-wins keyed on the location timestamp:
// an update carrying an older timestamp fails the condition instead of
// rolling the position back. It deliberately has no condition on the route
// status, so location writes never serialize against lifecycle transitions.
func (r *ServiceDynamoRepository) SetProfessionalLocation(ctx context.Context, id string, loc entities.ProfessionalLocation) (entities.Service, error) {
	locAV, err := attributevalue.Marshal(toLocationItem(loc))
	if err != nil {
		return entities.Service{}, err
	}

	return r.update(ctx, id, updateSpec{
		expr:      "SET #loc = :loc, #updated_at = :updated_at",
		condition: "attribute_exists(#id) AND (attribute_not_exists(#loc) OR #loc.#ts <= :ts)",
		values: map[string]types.AttributeValue{
			":loc": locAV,
			":ts":  &types.AttributeValueMemberN{Value: strconv.FormatInt(loc.Timestamp.UnixNano(), 10)},
		},
		names: map[string]string{
			"#loc": "professional_location",
			"#ts":  "ts_nanos",
		},
	})
}

type updateSpec struct {
	expr      string
	condition string
	values    map[string]types.AttributeValue
	names     map[string]string
}

func (r *ServiceDynamoRepository) update(ctx context.Context, id string, spec updateSpec) (entities.Service, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	spec.values[":updated_at"] = &types.AttributeValueMemberS{Value: now}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(spec.condition),
		UpdateExpression:          aws.String(spec.expr),
		ExpressionAttributeValues: spec.values,
		ExpressionAttributeNames:  mergeNames(spec.names, map[string]string{"#id": "id", "#updated_at": "updated_at"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Service{}, mapConditionErr(err)
	}
	if len(out.Attributes) == 0 {
		return entities.Service{}, nil
	}
	var it serviceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Service{}, err
	}
	return fromServiceItem(it), nil
}

func toServiceItem(s entities.Service) serviceItem {
	it := serviceItem{
		ID:          s.ID,
		ClientID:    s.ClientID,
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		BudgetMin:   s.BudgetMin,
		BudgetMax:   s.BudgetMax,
		Priority:    string(s.Priority),
		Status:      string(s.Status),
		RouteStatus: string(s.RouteStatus),
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if !s.Deadline.IsZero() {
		it.Deadline = s.Deadline.UTC().Format(time.RFC3339Nano)
	}
	if s.VerificationCode != "" {
		it.VerificationCode = s.VerificationCode
	}
	if s.VerificationCodeExpiresAt != nil {
		it.VerificationCodeExpiresAt = s.VerificationCodeExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	if s.ClientSignature != nil {
		it.ClientSignature = &signatureItem{
			SignatureBlob: s.ClientSignature.SignatureBlob,
			SignedAt:      s.ClientSignature.SignedAt.UTC().Format(time.RFC3339Nano),
			SignedBy:      s.ClientSignature.SignedBy,
		}
	}
	if s.ProfessionalLocation != nil {
		li := toLocationItem(*s.ProfessionalLocation)
		it.ProfessionalLocation = &li
	}
	return it
}

func toLocationItem(loc entities.ProfessionalLocation) locationItem {
	return locationItem{
		Lat:            loc.Lat,
		Lng:            loc.Lng,
		Timestamp:      loc.Timestamp.UTC().Format(time.RFC3339Nano),
		TimestampNanos: loc.Timestamp.UnixNano(),
	}
}

func fromServiceItem(it serviceItem) entities.Service {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	s := entities.Service{
		ID:          it.ID,
		ClientID:    it.ClientID,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		BudgetMin:   it.BudgetMin,
		BudgetMax:   it.BudgetMax,
		Priority:    entities.ServicePriority(it.Priority),
		Status:      entities.ServiceStatus(it.Status),
		RouteStatus: entities.RouteStatus(it.RouteStatus),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if it.Deadline != "" {
		s.Deadline, _ = time.Parse(time.RFC3339Nano, it.Deadline)
	}
	if it.VerificationCode != "" {
		s.VerificationCode = it.VerificationCode
	}
	if it.VerificationCodeExpiresAt != "" {
		if exp, err := time.Parse(time.RFC3339Nano, it.VerificationCodeExpiresAt); err == nil {
			s.VerificationCodeExpiresAt = &exp
		}
	}
	if it.ClientSignature != nil {
		signedAt, _ := time.Parse(time.RFC3339Nano, it.ClientSignature.SignedAt)
		s.ClientSignature = &entities.ClientSignature{
			SignatureBlob: it.ClientSignature.SignatureBlob,
			SignedAt:      signedAt,
			SignedBy:      it.ClientSignature.SignedBy,
		}
	}
	if it.ProfessionalLocation != nil {
		ts, _ := time.Parse(time.RFC3339Nano, it.ProfessionalLocation.Timestamp)
		s.ProfessionalLocation = &entities.ProfessionalLocation{
			Lat:       it.ProfessionalLocation.Lat,
			Lng:       it.ProfessionalLocation.Lng,
			Timestamp: ts,
		}
	}
	return s
}
