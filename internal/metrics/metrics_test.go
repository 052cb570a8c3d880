package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/rules"
)

func TestRecordTransaction(t *testing.T) {
	before := testutil.ToFloat64(transactionsTotal.WithLabelValues("add", OutcomeCommitted))
	RecordTransaction("add", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(transactionsTotal.WithLabelValues("add", OutcomeCommitted)))

	violations := []rules.Violation{
		{Kind: rules.ViolationForeignerOnTeam, Attempted: 2, Limit: 1},
		{Kind: rules.ViolationTotal, Attempted: 26, Limit: 25},
	}
	rejectedBefore := testutil.ToFloat64(transactionsTotal.WithLabelValues("add", apierror.CodeLimitViolation))
	totalBefore := testutil.ToFloat64(violationsTotal.WithLabelValues(string(rules.ViolationTotal)))

	RecordTransaction("add", rules.RejectViolations(violations))

	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(transactionsTotal.WithLabelValues("add", apierror.CodeLimitViolation)))
	assert.Equal(t, totalBefore+1, testutil.ToFloat64(violationsTotal.WithLabelValues(string(rules.ViolationTotal))))

	internalBefore := testutil.ToFloat64(transactionsTotal.WithLabelValues("drop", apierror.CodeInternal))
	RecordTransaction("drop", errors.New("db down"))
	assert.Equal(t, internalBefore+1, testutil.ToFloat64(transactionsTotal.WithLabelValues("drop", apierror.CodeInternal)))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/roster/add", "201"))
	RecordHTTPRequest("POST", "/roster/add", http.StatusCreated, 12*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/roster/add", "201")))
}

func TestRegisterDBStatsAndHandler(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, RegisterDBStats(db))
	require.NoError(t, RegisterDBStats(db))

	ObserveLockWait(3 * time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "db_open_connections")
	assert.Contains(t, rec.Body.String(), "roster_lock_wait_seconds")
}
