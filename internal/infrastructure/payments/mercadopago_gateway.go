package payments

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"servihub/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidChargeRef = errors.New("invalid charge reference")

// MercadoPagoGateway settles charges through Mercado Pago. The platform's cut
// is carried on the charge as an application fee so the split happens at the
// provider, not in our books.
type MercadoPagoGateway struct {
	payments payment.Client
	refunds  refund.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[settlement][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[settlement][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[settlement][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[settlement][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, req interfaces.ChargeRequest) (interfaces.ChargeResult, error) {
	if g != nil && g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[settlement][gateway] mock charge external_reference=%s amount=%.2f charge_ref=%s",
			req.ExternalReference, req.Amount, id)
		return interfaces.ChargeResult{ID: id, Status: "approved"}, nil
	}

	if g == nil || g.payments == nil {
		log.Printf("[settlement][gateway] gateway not configured")
		return interfaces.ChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[settlement][gateway] charge start external_reference=%s method=%s amount=%.2f",
		req.ExternalReference, req.Method, req.Amount)

	sdkReq := payment.Request{
		TransactionAmount: req.Amount,
		PaymentMethodID:   req.Method,
		ExternalReference: req.ExternalReference,
		Description:       req.Description,
		ApplicationFee:    roundCents(req.Amount * req.SplitPct),
		Payer: &payment.PayerRequest{
			Email: req.CustomerRef,
		},
	}

	resp, err := g.payments.Create(ctx, sdkReq)
	if err != nil {
		log.Printf("[settlement][gateway] sdk create failed err=%v", err)
		return interfaces.ChargeResult{}, err
	}
	log.Printf("[settlement][gateway] charge done charge_ref=%d status=%s", resp.ID, resp.Status)

	return interfaces.ChargeResult{
		ID:     strconv.Itoa(resp.ID),
		Status: resp.Status,
	}, nil
}

func (g *MercadoPagoGateway) Refund(ctx context.Context, chargeRef string) error {
	if g != nil && g.mockMode {
		log.Printf("[settlement][gateway] mock refund charge_ref=%s", chargeRef)
		return nil
	}

	if g == nil || g.refunds == nil {
		log.Printf("[settlement][gateway] gateway not configured")
		return ErrMercadoPagoGatewayNotConfigured
	}

	paymentID, err := strconv.Atoi(chargeRef)
	if err != nil {
		log.Printf("[settlement][gateway] bad charge_ref=%q err=%v", chargeRef, err)
		return ErrInvalidChargeRef
	}

	resp, err := g.refunds.Create(ctx, paymentID)
	if err != nil {
		log.Printf("[settlement][gateway] sdk refund failed charge_ref=%s err=%v", chargeRef, err)
		return err
	}
	log.Printf("[settlement][gateway] refund done charge_ref=%s refund_id=%d status=%s", chargeRef, resp.ID, resp.Status)

	return nil
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
