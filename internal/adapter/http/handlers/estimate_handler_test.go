package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"quote_calculator/internal/adapter/http/handlers/mocks"
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/domain/pricing"
	"quote_calculator/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newEstimateRouter(uc *mocks.MockIEstimateUseCase) *gin.Engine {
	h := NewEstimateHandler(uc)
	r := gin.New()
	r.GET("/api/estimates", h.ListEstimates)
	r.GET("/api/estimates/:id", h.GetEstimate)
	r.GET("/api/estimates/:id/client", h.GetClientEstimate)
	r.DELETE("/api/estimates/:id", h.DeleteEstimate)
	r.POST("/api/pricing/calculate", h.Calculate)
	return r
}

func TestEstimateHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)

	uc.EXPECT().List(gomock.Any()).Return([]entities.EstimateSummary{
		{ID: "est-1", ClientName: "Anna", Version: entities.MustParseVersion("1.0.2"), UpdatedAt: time.Now()},
	}, nil)

	w := performRequest(newEstimateRouter(uc), http.MethodGet, "/api/estimates", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestEstimateHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		uc.EXPECT().Get(gomock.Any(), "missing").Return(usecase.EstimateView{}, usecase.ErrEstimateNotFound)

		w := performRequest(newEstimateRouter(uc), http.MethodGet, "/api/estimates/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["code"] != "ESTIMATE_NOT_FOUND" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("internal error hides cause", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		uc.EXPECT().Get(gomock.Any(), "est-1").Return(usecase.EstimateView{}, errors.New("db password wrong"))

		w := performRequest(newEstimateRouter(uc), http.MethodGet, "/api/estimates/est-1", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["message"] != "An internal error occurred" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("success with breakdown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		uc.EXPECT().Get(gomock.Any(), "est-1").Return(usecase.EstimateView{
			Estimate:  entities.Estimate{ID: "est-1"},
			Breakdown: pricing.Breakdown{ClientTotal: decimal.RequireFromString("113.3333"), Currency: "USD"},
		}, nil)

		w := performRequest(newEstimateRouter(uc), http.MethodGet, "/api/estimates/est-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		b := decodeBody(t, w)["breakdown"].(map[string]any)
		if b["client_total"] != 113.33 {
			t.Fatalf("expected rounded total, got %v", b["client_total"])
		}
	})
}

func TestEstimateHandler_ClientView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	uc.EXPECT().ClientView(gomock.Any(), "est-1").Return(usecase.ClientEstimate{ID: "est-1", Total: decimal.NewFromInt(10)}, nil)

	w := performRequest(newEstimateRouter(uc), http.MethodGet, "/api/estimates/est-1/client", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if _, leaked := body["internal_comments"]; leaked {
		t.Fatalf("client view must not carry internal comments")
	}
}

func TestEstimateHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", usecase.ErrEstimateNotFound, http.StatusNotFound},
		{"lock timeout", entities.ErrTimeout, http.StatusServiceUnavailable},
		{"disk full", &entities.InsufficientStorageError{FreeBytes: 1 << 20, MinFreeBytes: 100 << 20}, http.StatusInsufficientStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIEstimateUseCase(ctrl)
			uc.EXPECT().Delete(gomock.Any(), "est-1").Return(tc.err)

			w := performRequest(newEstimateRouter(uc), http.MethodDelete, "/api/estimates/est-1", "")
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
		})
	}
}

func TestEstimateHandler_Calculate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)

		w := performRequest(newEstimateRouter(uc), http.MethodPost, "/api/pricing/calculate", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).Return(pricing.Breakdown{}, &entities.ValidationError{
			Fields: []entities.FieldError{{Field: "services[1].price", Message: "must be numeric"}},
		})

		w := performRequest(newEstimateRouter(uc), http.MethodPost, "/api/pricing/calculate", `{"services":[{"price":1},{"price":"x"}],"pax":1}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		details := decodeBody(t, w)["details"].([]any)
		if details[0].(map[string]any)["field"] != "services[1].price" {
			t.Fatalf("unexpected details %v", details)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in usecase.CalculateInput) (pricing.Breakdown, error) {
			if in.Pax != 2 || len(in.Services) != 1 || in.Pricing.Currency != "USD" {
				t.Fatalf("unexpected input %+v", in)
			}
			return pricing.Calculate(in.Services, in.Pricing, in.Pax)
		})

		w := performRequest(newEstimateRouter(uc), http.MethodPost, "/api/pricing/calculate",
			`{"services":[{"name":"Hotel","day":1,"price":100,"markup_pct":10}],"pricing":{"hidden_markup_pct":3,"currency":"usd"},"pax":2}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["client_total"] != 113.3 {
			t.Fatalf("unexpected body %v", body)
		}
	})
}
