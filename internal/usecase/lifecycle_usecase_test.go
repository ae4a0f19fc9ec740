package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase/interfaces"
	mock_interfaces "servihub/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type lifecycleMocks struct {
	serviceRepo *mock_interfaces.MockIServiceRepository
	quoteRepo   *mock_interfaces.MockIQuoteRepository
	notifier    *mock_interfaces.MockIEventNotifier
	uc          *LifecycleUseCase
}

func newLifecycleMocks(t *testing.T) lifecycleMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := lifecycleMocks{
		serviceRepo: mock_interfaces.NewMockIServiceRepository(ctrl),
		quoteRepo:   mock_interfaces.NewMockIQuoteRepository(ctrl),
		notifier:    mock_interfaces.NewMockIEventNotifier(ctrl),
	}
	m.uc = NewLifecycleUseCase(m.serviceRepo, m.quoteRepo, m.notifier)
	return m
}

func assignedService(routeStatus entities.RouteStatus) entities.Service {
	return entities.Service{
		ID:          "svc-1",
		ClientID:    "cli-1",
		Status:      entities.ServiceStatusInProgress,
		RouteStatus: routeStatus,
	}
}

func acceptedPaidQuote() entities.Quote {
	return entities.Quote{
		ID:             "q-1",
		ServiceID:      "svc-1",
		ProfessionalID: "pro-1",
		ClientID:       "cli-1",
		Status:         entities.QuoteStatusAccepted,
		PaymentStatus:  entities.QuotePaymentStatusPaid,
	}
}

func (m lifecycleMocks) expectAssigned(svc entities.Service, q entities.Quote) {
	m.serviceRepo.EXPECT().GetByID(gomock.Any(), "svc-1").Return(svc, nil)
	m.quoteRepo.EXPECT().ListByServiceID(gomock.Any(), "svc-1", entities.QuoteStatusAccepted).Return([]entities.Quote{q}, nil)
}

func TestLifecycleUseCase_StartRoute(t *testing.T) {
	t.Run("service not in progress", func(t *testing.T) {
		m := newLifecycleMocks(t)
		svc := assignedService(entities.RouteStatusNotStarted)
		svc.Status = entities.ServiceStatusPending
		m.serviceRepo.EXPECT().GetByID(gomock.Any(), "svc-1").Return(svc, nil)

		_, err := m.uc.StartRoute(context.Background(), "svc-1", "pro-1")
		if !errors.Is(err, ErrServiceNotInProgress) {
			t.Fatalf("expected ErrServiceNotInProgress, got %v", err)
		}
	})

	t.Run("no accepted quote", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.serviceRepo.EXPECT().GetByID(gomock.Any(), "svc-1").Return(assignedService(entities.RouteStatusNotStarted), nil)
		m.quoteRepo.EXPECT().ListByServiceID(gomock.Any(), "svc-1", entities.QuoteStatusAccepted).Return(nil, nil)

		_, err := m.uc.StartRoute(context.Background(), "svc-1", "pro-1")
		if !errors.Is(err, ErrNoAcceptedQuote) {
			t.Fatalf("expected ErrNoAcceptedQuote, got %v", err)
		}
	})

	t.Run("wrong professional", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusNotStarted), acceptedPaidQuote())

		_, err := m.uc.StartRoute(context.Background(), "svc-1", "pro-2")
		if !errors.Is(err, ErrNotAssignedProfessional) {
			t.Fatalf("expected ErrNotAssignedProfessional, got %v", err)
		}
	})

	t.Run("unpaid quote blocks the route", func(t *testing.T) {
		m := newLifecycleMocks(t)
		q := acceptedPaidQuote()
		q.PaymentStatus = entities.QuotePaymentStatusPending
		m.expectAssigned(assignedService(entities.RouteStatusNotStarted), q)

		_, err := m.uc.StartRoute(context.Background(), "svc-1", "pro-1")
		if !errors.Is(err, ErrQuoteNotPaid) {
			t.Fatalf("expected ErrQuoteNotPaid, got %v", err)
		}
	})

	t.Run("route already started", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusRouteStarted), acceptedPaidQuote())

		_, err := m.uc.StartRoute(context.Background(), "svc-1", "pro-1")
		if !errors.Is(err, ErrInvalidRouteTransition) {
			t.Fatalf("expected ErrInvalidRouteTransition, got %v", err)
		}
	})

	t.Run("start route success", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusNotStarted), acceptedPaidQuote())
		m.serviceRepo.EXPECT().UpdateRouteStatus(gomock.Any(), "svc-1", entities.RouteStatusNotStarted, entities.RouteStatusRouteStarted).Return(
			assignedService(entities.RouteStatusRouteStarted), nil)
		m.notifier.EXPECT().Notify(gomock.Any(), "cli-1", interfaces.EventRouteStarted, gomock.Any()).Return(nil)

		res, err := m.uc.StartRoute(context.Background(), "svc-1", "pro-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RouteStatus != entities.RouteStatusRouteStarted {
			t.Fatalf("expected route_started, got %s", res.RouteStatus)
		}
	})
}

func TestLifecycleUseCase_ReportLocation(t *testing.T) {
	loc := entities.ProfessionalLocation{Lat: -23.55, Lng: -46.63, Timestamp: time.Now().UTC()}

	t.Run("out-of-range coordinates", func(t *testing.T) {
		m := newLifecycleMocks(t)
		_, err := m.uc.ReportLocation(context.Background(), "svc-1", "pro-1", entities.ProfessionalLocation{Lat: 91})
		if !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation, got %v", err)
		}
	})

	t.Run("route not started yet", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusNotStarted), acceptedPaidQuote())

		_, err := m.uc.ReportLocation(context.Background(), "svc-1", "pro-1", loc)
		if !errors.Is(err, ErrInvalidRouteTransition) {
			t.Fatalf("expected ErrInvalidRouteTransition, got %v", err)
		}
	})

	t.Run("first report flips to in_transit", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusRouteStarted), acceptedPaidQuote())
		m.serviceRepo.EXPECT().SetProfessionalLocation(gomock.Any(), "svc-1", loc).Return(
			assignedService(entities.RouteStatusRouteStarted), nil)
		m.serviceRepo.EXPECT().UpdateRouteStatus(gomock.Any(), "svc-1", entities.RouteStatusRouteStarted, entities.RouteStatusInTransit).Return(
			assignedService(entities.RouteStatusInTransit), nil)

		res, err := m.uc.ReportLocation(context.Background(), "svc-1", "pro-1", loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RouteStatus != entities.RouteStatusInTransit {
			t.Fatalf("expected in_transit, got %s", res.RouteStatus)
		}
	})

	t.Run("stale timestamp loses quietly", func(t *testing.T) {
		m := newLifecycleMocks(t)
		svc := assignedService(entities.RouteStatusInTransit)
		m.expectAssigned(svc, acceptedPaidQuote())
		m.serviceRepo.EXPECT().SetProfessionalLocation(gomock.Any(), "svc-1", loc).Return(
			entities.Service{}, interfaces.ErrConditionFailed)

		res, err := m.uc.ReportLocation(context.Background(), "svc-1", "pro-1", loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RouteStatus != entities.RouteStatusInTransit {
			t.Fatalf("expected current state back, got %s", res.RouteStatus)
		}
	})
}

func TestLifecycleUseCase_MarkArrived(t *testing.T) {
	t.Run("cannot arrive before starting the route", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusNotStarted), acceptedPaidQuote())

		_, err := m.uc.MarkArrived(context.Background(), "svc-1", "pro-1")
		if !errors.Is(err, ErrInvalidRouteTransition) {
			t.Fatalf("expected ErrInvalidRouteTransition, got %v", err)
		}
	})

	t.Run("arrival issues a five-digit code", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusInTransit), acceptedPaidQuote())

		var issued string
		m.serviceRepo.EXPECT().MarkArrived(gomock.Any(), "svc-1", entities.RouteStatusInTransit, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.RouteStatus, code string, expiresAt time.Time) (entities.Service, error) {
				if len(code) != 5 || !digitsOnly(code) {
					t.Fatalf("unexpected code %q", code)
				}
				if remaining := time.Until(expiresAt); remaining < 14*time.Minute || remaining > 16*time.Minute {
					t.Fatalf("unexpected expiry window: %v", remaining)
				}
				issued = code
				svc := assignedService(entities.RouteStatusArrived)
				svc.VerificationCode = code
				svc.VerificationCodeExpiresAt = &expiresAt
				return svc, nil
			})
		m.notifier.EXPECT().Notify(gomock.Any(), "cli-1", interfaces.EventProfessionalHere, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ string, payload map[string]any) error {
				if payload["verification_code"] != issued {
					t.Fatalf("notification carries wrong code: %v", payload["verification_code"])
				}
				return nil
			})

		res, err := m.uc.MarkArrived(context.Background(), "svc-1", "pro-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RouteStatus != entities.RouteStatusArrived {
			t.Fatalf("expected arrived, got %s", res.RouteStatus)
		}
	})
}

func TestLifecycleUseCase_VerifyAndStart(t *testing.T) {
	arrived := func(code string, expiresAt time.Time) entities.Service {
		svc := assignedService(entities.RouteStatusArrived)
		svc.VerificationCode = code
		svc.VerificationCodeExpiresAt = &expiresAt
		return svc
	}

	t.Run("malformed code", func(t *testing.T) {
		m := newLifecycleMocks(t)
		for _, code := range []string{"", "1234", "123456", "12a45"} {
			if _, err := m.uc.VerifyAndStart(context.Background(), "svc-1", "pro-1", code); !errors.Is(err, ErrInvalidCode) {
				t.Fatalf("code %q: expected ErrInvalidCode, got %v", code, err)
			}
		}
	})

	t.Run("expired code", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(arrived("12345", time.Now().UTC().Add(-time.Minute)), acceptedPaidQuote())

		_, err := m.uc.VerifyAndStart(context.Background(), "svc-1", "pro-1", "12345")
		if !errors.Is(err, ErrCodeExpired) {
			t.Fatalf("expected ErrCodeExpired, got %v", err)
		}
	})

	t.Run("wrong or already consumed code", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(arrived("12345", time.Now().UTC().Add(10*time.Minute)), acceptedPaidQuote())
		m.serviceRepo.EXPECT().ConsumeVerificationCode(gomock.Any(), "svc-1", "54321").Return(
			entities.Service{}, interfaces.ErrConditionFailed)

		_, err := m.uc.VerifyAndStart(context.Background(), "svc-1", "pro-1", "54321")
		if !errors.Is(err, ErrCodeMismatch) {
			t.Fatalf("expected ErrCodeMismatch, got %v", err)
		}
	})

	t.Run("verify success starts the service", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(arrived("12345", time.Now().UTC().Add(10*time.Minute)), acceptedPaidQuote())
		m.serviceRepo.EXPECT().ConsumeVerificationCode(gomock.Any(), "svc-1", "12345").Return(
			assignedService(entities.RouteStatusServiceStarted), nil)
		m.notifier.EXPECT().Notify(gomock.Any(), "cli-1", interfaces.EventServiceStarted, gomock.Any()).Return(nil)

		res, err := m.uc.VerifyAndStart(context.Background(), "svc-1", "pro-1", "12345")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RouteStatus != entities.RouteStatusServiceStarted {
			t.Fatalf("expected service_started, got %s", res.RouteStatus)
		}
	})
}

func TestLifecycleUseCase_Sign(t *testing.T) {
	started := func() entities.Service { return assignedService(entities.RouteStatusServiceStarted) }

	t.Run("empty signature", func(t *testing.T) {
		m := newLifecycleMocks(t)
		_, err := m.uc.Sign(context.Background(), "svc-1", SignInput{ActorID: "cli-1", ActorRole: "client", SignatureBlob: " "})
		if !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("before the service starts", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.serviceRepo.EXPECT().GetByID(gomock.Any(), "svc-1").Return(assignedService(entities.RouteStatusArrived), nil)

		_, err := m.uc.Sign(context.Background(), "svc-1", SignInput{ActorID: "cli-1", ActorRole: "client", SignatureBlob: "sig"})
		if !errors.Is(err, ErrInvalidRouteTransition) {
			t.Fatalf("expected ErrInvalidRouteTransition, got %v", err)
		}
	})

	t.Run("second signature refused", func(t *testing.T) {
		m := newLifecycleMocks(t)
		svc := started()
		svc.ClientSignature = &entities.ClientSignature{SignatureBlob: "old", SignedBy: "cli-1"}
		m.serviceRepo.EXPECT().GetByID(gomock.Any(), "svc-1").Return(svc, nil)

		_, err := m.uc.Sign(context.Background(), "svc-1", SignInput{ActorID: "cli-1", ActorRole: "client", SignatureBlob: "sig"})
		if !errors.Is(err, ErrAlreadySigned) {
			t.Fatalf("expected ErrAlreadySigned, got %v", err)
		}
	})

	t.Run("stranger cannot sign", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.serviceRepo.EXPECT().GetByID(gomock.Any(), "svc-1").Return(started(), nil)

		_, err := m.uc.Sign(context.Background(), "svc-1", SignInput{ActorID: "cli-2", ActorRole: "client", SignatureBlob: "sig"})
		if !errors.Is(err, ErrNotSignParty) {
			t.Fatalf("expected ErrNotSignParty, got %v", err)
		}
	})

	t.Run("professional uploads on behalf of the client", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.serviceRepo.EXPECT().GetByID(gomock.Any(), "svc-1").Return(started(), nil)
		m.quoteRepo.EXPECT().ListByServiceID(gomock.Any(), "svc-1", entities.QuoteStatusAccepted).Return(
			[]entities.Quote{acceptedPaidQuote()}, nil)
		m.serviceRepo.EXPECT().SetSignature(gomock.Any(), "svc-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, sig entities.ClientSignature) (entities.Service, error) {
				if sig.SignedBy != "cli-1" {
					t.Fatalf("signature must be attributed to the client, got %s", sig.SignedBy)
				}
				svc := started()
				svc.ClientSignature = &sig
				return svc, nil
			})
		m.notifier.EXPECT().Notify(gomock.Any(), "cli-1", interfaces.EventServiceSigned, gomock.Any()).Return(nil)

		res, err := m.uc.Sign(context.Background(), "svc-1", SignInput{ActorID: "pro-1", ActorRole: "professional", SignatureBlob: "sig"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ClientSignature == nil {
			t.Fatal("expected stored signature")
		}
	})
}

func TestLifecycleUseCase_Complete(t *testing.T) {
	t.Run("unsigned service cannot complete", func(t *testing.T) {
		m := newLifecycleMocks(t)
		m.expectAssigned(assignedService(entities.RouteStatusServiceStarted), acceptedPaidQuote())

		_, err := m.uc.Complete(context.Background(), "svc-1", "pro-1")
		if !errors.Is(err, ErrNotSigned) {
			t.Fatalf("expected ErrNotSigned, got %v", err)
		}
	})

	t.Run("complete success", func(t *testing.T) {
		m := newLifecycleMocks(t)
		svc := assignedService(entities.RouteStatusServiceStarted)
		svc.ClientSignature = &entities.ClientSignature{SignatureBlob: "sig", SignedBy: "cli-1"}
		m.expectAssigned(svc, acceptedPaidQuote())

		done := assignedService(entities.RouteStatusServiceCompleted)
		done.Status = entities.ServiceStatusCompleted
		m.serviceRepo.EXPECT().Complete(gomock.Any(), "svc-1").Return(done, nil)
		m.notifier.EXPECT().Notify(gomock.Any(), "cli-1", interfaces.EventServiceCompleted, gomock.Any()).Return(nil)

		res, err := m.uc.Complete(context.Background(), "svc-1", "pro-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.ServiceStatusCompleted || res.RouteStatus != entities.RouteStatusServiceCompleted {
			t.Fatalf("unexpected state: %s/%s", res.Status, res.RouteStatus)
		}
	})
}

func TestGenerateVerificationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := generateVerificationCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != verificationCodeLength {
			t.Fatalf("expected %d digits, got %q", verificationCodeLength, code)
		}
		if !digitsOnly(code) {
			t.Fatalf("expected digits only, got %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes never vary")
	}
}
