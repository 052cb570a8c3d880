package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/statistics/model"
	"github.com/festy23/fantasy_roster/internal/statistics/service"
)

// mockService is a mock implementation of service.Service for unit tests.
type mockService struct {
	mock.Mock
}

func (m *mockService) GetManagerActivity(ctx context.Context, leagueID string) (*model.ManagerActivityResponse, error) {
	args := m.Called(ctx, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ManagerActivityResponse), args.Error(1)
}

func (m *mockService) GetTransactionStatistics(ctx context.Context, leagueID string) (*model.TransactionStatisticsResponse, error) {
	args := m.Called(ctx, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionStatisticsResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_GetManagerActivity(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/statistics/managers", h.GetManagerActivity)

		expected := &model.ManagerActivityResponse{
			LeagueID: "l1",
			Managers: []model.ManagerActivity{{ManagerID: "alice", Adds: 2, Total: 2}},
			Total:    1,
		}
		mockSvc.On("GetManagerActivity", mock.Anything, "l1").Return(expected, nil)

		req := httptest.NewRequest(http.MethodGet, "/statistics/managers?league_id=l1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.ManagerActivityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "alice", resp.Managers[0].ManagerID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing league", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/statistics/managers", h.GetManagerActivity)

		req := httptest.NewRequest(http.MethodGet, "/statistics/managers", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "GetManagerActivity")
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/statistics/managers", h.GetManagerActivity)

		mockSvc.On("GetManagerActivity", mock.Anything, "l1").Return(nil, errors.New("database error"))

		req := httptest.NewRequest(http.MethodGet, "/statistics/managers?league_id=l1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp apierror.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, apierror.CodeInternal, resp.Error.Code)
		assert.Equal(t, "internal server error", resp.Error.Message)
	})
}

func TestHandler_GetTransactionStatistics(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/statistics/transactions", h.GetTransactionStatistics)

		expected := &model.TransactionStatisticsResponse{
			LeagueID:   "l1",
			Statistics: model.TransactionStatistics{TotalTransactions: 7, Adds: 3, PendingTrades: 1},
		}
		mockSvc.On("GetTransactionStatistics", mock.Anything, "l1").Return(expected, nil)

		req := httptest.NewRequest(http.MethodGet, "/statistics/transactions?league_id=l1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.TransactionStatisticsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.Statistics.TotalTransactions)
		assert.Equal(t, 1, resp.Statistics.PendingTrades)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing league", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/statistics/transactions", h.GetTransactionStatistics)

		req := httptest.NewRequest(http.MethodGet, "/statistics/transactions", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
