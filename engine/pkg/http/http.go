package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"glycostats/engine"
	"glycostats/engine/defs"
	"glycostats/engine/pkg/bounds"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

type reportGenerator interface {
	Generate(ctx context.Context, filter defs.DateFilter) (*engine.Report, error)
}

type HttpServer struct {
	Reporter reportGenerator
	Logger   *zap.Logger

	router *gin.Engine
}

func New(rg reportGenerator, logger *zap.Logger) *HttpServer {
	hs := &HttpServer{
		Reporter: rg,
		Logger:   logger,
	}
	hs.router = hs.routes()
	return hs
}

func (s *HttpServer) Router() http.Handler {
	return s.router
}

func (s *HttpServer) Run(addr string) error {
	s.Logger.Info("serving statistics", zap.String("address", addr))
	return s.router.Run(addr)
}

func (s *HttpServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/stats", s.stats)
	r.GET("/bounds", s.bounds)

	return r
}

// stats expects start and end in epoch milliseconds, and optionally a comma
// separated list of weekdays (0 is Sunday).
func (s *HttpServer) stats(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "expected epoch milliseconds for start")
		return
	}
	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "expected epoch milliseconds for end")
		return
	}
	if end <= start {
		c.String(http.StatusBadRequest, "end must be after start")
		return
	}

	filter := defs.DateFilter{Start: start, End: end}
	if wd := c.Query("weekDays"); wd != "" {
		for _, f := range strings.Split(wd, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil || d < 0 || d > 6 {
				c.String(http.StatusBadRequest, "expected weekdays between 0 and 6")
				return
			}
			filter.WeekDays = append(filter.WeekDays, time.Weekday(d))
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rep, err := s.Reporter.Generate(ctx, filter)
	if err != nil {
		s.Logger.Debug("unable to generate report", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong generating the report")
		return
	}

	c.JSON(http.StatusOK, rep.JSONValue())
}

func (s *HttpServer) bounds(c *gin.Context) {
	dt := defs.DiabeticType(c.DefaultQuery("diabeticType", string(defs.DT1DT2)))
	unit := defs.BgUnit(c.DefaultQuery("unit", string(defs.MgdL)))

	b, err := bounds.Get(dt, unit)
	if errors.Is(err, bounds.ErrUnknownBounds) {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "something went wrong reading bounds")
		return
	}

	c.JSON(http.StatusOK, b)
}
