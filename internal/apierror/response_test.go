package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/rules"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", rules.Reject(rules.ErrInvalidRequest, "empty side"), http.StatusBadRequest, CodeInvalidRequest},
		{"not found wrapped", fmt.Errorf("player %w", rules.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"limit", rules.RejectViolations(nil), http.StatusConflict, CodeLimitViolation},
		{"ineligible", rules.Reject(rules.ErrIneligibleSlot, "C"), http.StatusConflict, CodeIneligibleSlot},
		{"locked", rules.Reject(rules.ErrPlayerLocked, ""), http.StatusConflict, CodePlayerLocked},
		{"stale", rules.RejectStale("changed", nil), http.StatusConflict, CodeStaleState},
		{"move locked", rules.Reject(rules.ErrMoveLocked, ""), http.StatusConflict, CodeMoveLocked},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("limit violation carries violations", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		violations := []rules.Violation{{Kind: rules.ViolationTotal, Attempted: 26, Limit: 25, Message: "Total Players: 26/25"}}
		Write(c, zap.NewNop().Sugar(), rules.RejectViolations(violations), "add failed")

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, CodeLimitViolation, resp.Error.Code)
		require.Len(t, resp.Error.Violations, 1)
		assert.Equal(t, "Total Players: 26/25", resp.Error.Violations[0].Message)
	})

	t.Run("internal error hides message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Write(c, zap.NewNop().Sugar(), errors.New("pq: connection reset"), "add failed", "player_id", "p1")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
		assert.Contains(t, w.Body.String(), CodeInternal)
	})

	t.Run("invalid request helper", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		InvalidRequest(c, "league_id is required")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, w.Body.String(), "violations")
	})
}
