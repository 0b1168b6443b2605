package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/internal/casefile/repository"
	casefileservice "github.com/juristech/legara/internal/casefile/service"
	"github.com/juristech/legara/internal/casenumber"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/config"
	departmentdomain "github.com/juristech/legara/internal/department/domain"
	departmentrepository "github.com/juristech/legara/internal/department/repository"
	departmentservice "github.com/juristech/legara/internal/department/service"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	firmrepository "github.com/juristech/legara/internal/firm/repository"
	firmservice "github.com/juristech/legara/internal/firm/service"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
	paymentrepository "github.com/juristech/legara/internal/payment/repository"
	paymentservice "github.com/juristech/legara/internal/payment/service"
	revenuedomain "github.com/juristech/legara/internal/revenuetarget/domain"
	revenuerepository "github.com/juristech/legara/internal/revenuetarget/repository"
	revenueservice "github.com/juristech/legara/internal/revenuetarget/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&firmdomain.Firm{},
		&departmentdomain.Department{},
		&casenumber.CaseCounter{},
		&casefiledomain.CaseFile{},
		&paymentdomain.Payment{},
		&revenuedomain.RevenueTarget{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	firms := firmservice.NewService(firmservice.Params{
		DB: db, Repo: firmrepository.NewRepository(db), GenID: node, Clock: clk, Log: log,
	})
	departments := departmentservice.NewService(departmentservice.Params{
		Repo: departmentrepository.NewRepository(db), GenID: node, Clock: clk, Log: log,
	})
	allocator := casenumber.NewAllocator(casenumber.Params{
		Store:    casenumber.NewGormStore(db, clk),
		Lookup:   casenumber.NewGormCaseLookup(db),
		Metadata: casenumber.NewGormMetadata(db),
		Clock:    clk,
		Log:      log,
	})
	cases := casefileservice.NewService(casefileservice.Params{
		DB:        db,
		Repo:      repository.NewRepository(db),
		Depts:     departmentrepository.NewRepository(db),
		Allocator: allocator,
		Policy:    config.NewStaticCollectionsPolicyHolder(config.DefaultCollectionsPolicy()),
		GenID:     node,
		Clock:     clk,
		Log:       log,
	})
	payments := paymentservice.NewService(paymentservice.Params{
		Repo:  paymentrepository.NewRepository(db),
		Cases: repository.NewRepository(db),
		GenID: node,
		Clock: clk,
		Log:   log,
	})
	targets := revenueservice.NewService(revenueservice.Params{
		Repo: revenuerepository.NewRepository(db), GenID: node, Clock: clk, Log: log,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:           engine,
		Cfg:           config.Config{},
		GenID:         node,
		FirmSvc:       firms,
		DepartmentSvc: departments,
		CaseSvc:       cases,
		PaymentSvc:    payments,
		TargetSvc:     targets,
		Log:           log,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestCaseLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/firms", gin.H{"name": "Acme Collections", "prefix": "ACME"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var firm struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &firm))

	auth := map[string]string{HeaderFirm: firm.ID}

	w = doJSON(t, s, http.MethodPost, "/api/departments", gin.H{"name": "Collections", "code": "COLL"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var dept struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dept))

	w = doJSON(t, s, http.MethodPost, "/api/cases", gin.H{
		"department_id": dept.ID,
		"type":          "credit",
		"debtor_name":   "Debtor Inc",
		"principal":     12_500,
	}, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID     string `json:"id"`
		Number string `json:"number"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ACME-COLL-2024-0001", created.Number)

	w = doJSON(t, s, http.MethodPost, "/api/cases/"+created.ID+"/escalate", nil, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var legal struct {
		Number string `json:"number"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &legal))
	assert.Equal(t, "ACME-COLL-LGL-2024-0001", legal.Number)

	// A second escalation conflicts.
	w = doJSON(t, s, http.MethodPost, "/api/cases/"+created.ID+"/escalate", nil, auth)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFirmContextRequired(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/cases", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/cases", nil, map[string]string{HeaderFirm: "12345"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIntakeEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/firms", gin.H{"name": "Acme Collections", "prefix": "ACME"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var firm struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &firm))
	auth := map[string]string{HeaderFirm: firm.ID}

	w = doJSON(t, s, http.MethodPost, "/api/departments", gin.H{"name": "Collections", "code": "COLL"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/intake", gin.H{
		"firm_prefix":     "acme",
		"department_code": "coll",
		"debtor_name":     "Walk-in Debtor",
		"principal":       800,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Number string `json:"number"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ACME-COLL-2024-0001", resp.Number)

	w = doJSON(t, s, http.MethodPost, "/api/intake", gin.H{
		"firm_prefix":     "NOPE",
		"department_code": "COLL",
		"debtor_name":     "X",
		"principal":       1,
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
