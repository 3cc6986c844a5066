package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glycostats/engine"
	"glycostats/engine/defs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type fakeReporter struct {
	filter defs.DateFilter
	err    error
}

func (f *fakeReporter) Generate(_ context.Context, filter defs.DateFilter) (*engine.Report, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return &engine.Report{Filter: filter, NumDays: 1, Unit: defs.MgdL}, nil
}

type HttpTestSuite struct {
	suite.Suite
	reporter *fakeReporter
	server   *HttpServer
}

func TestHttpTestSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(HttpTestSuite))
}

func (suite *HttpTestSuite) SetupTest() {
	suite.reporter = &fakeReporter{}
	suite.server = New(suite.reporter, zap.NewExample())
}

func (suite *HttpTestSuite) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	suite.server.Router().ServeHTTP(w, req)
	return w
}

func (suite *HttpTestSuite) TestStats() {
	w := suite.get("/stats?start=1000&end=2000&weekDays=1,3")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), []time.Weekday{time.Monday, time.Wednesday}, suite.reporter.filter.WeekDays)

	var body map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(suite.T(), 1, body["numDays"])
	assert.Equal(suite.T(), "mg/dL", body["unit"])
	assert.Nil(suite.T(), body["averageGlucose"].(map[string]interface{})["averageGlucose"])
}

func (suite *HttpTestSuite) TestStatsBadRequest() {
	for _, target := range []string{
		"/stats",
		"/stats?start=abc&end=2000",
		"/stats?start=1000",
		"/stats?start=2000&end=1000",
		"/stats?start=1000&end=2000&weekDays=7",
	} {
		assert.Equal(suite.T(), http.StatusBadRequest, suite.get(target).Code, target)
	}
}

func (suite *HttpTestSuite) TestStatsReportError() {
	suite.reporter.err = errors.New("store down")
	assert.Equal(suite.T(), http.StatusInternalServerError, suite.get("/stats?start=1000&end=2000").Code)
}

func (suite *HttpTestSuite) TestBounds() {
	w := suite.get("/bounds?diabeticType=DT1Pregnancy&unit=mmol/L")
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var b defs.BgBounds
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(suite.T(), 3.5, b.TargetLowerBound)

	assert.Equal(suite.T(), http.StatusNotFound, suite.get("/bounds?unit=g").Code)
}
