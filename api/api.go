package api

import (
	"errors"
	"net/http"

	"github.com/TimeWtr/batch_scheduler"
	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ScheduleRequest struct {
	Jobs []domain.Job `json:"jobs"`
}

type Server struct {
	sim    batch_scheduler.Simulator
	logger batch_scheduler.Logger
}

func NewServer(sim batch_scheduler.Simulator, logger batch_scheduler.Logger) *Server {
	return &Server{sim: sim, logger: logger}
}

// AddApis 注册接口，gatherer为nil时不暴露/metrics
func AddApis(r *gin.Engine, s *Server, gatherer prometheus.Gatherer) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1")
	v1.POST("/schedule/:algorithm", s.ScheduleHandler)
	v1.POST("/compare", s.CompareHandler)
}

func (s *Server) ScheduleHandler(c *gin.Context) {
	alg, err := _const.ParseAlgorithm(c.Param("algorithm"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, ok := s.bindBatch(c)
	if !ok {
		return
	}

	res, err := s.sim.Run(c.Request.Context(), batch, alg)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) CompareHandler(c *gin.Context) {
	batch, ok := s.bindBatch(c)
	if !ok {
		return
	}

	results, err := s.sim.Compare(c.Request.Context(), batch)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) bindBatch(c *gin.Context) (*batch_scheduler.Batch, bool) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	batch, err := batch_scheduler.NewBatch(req.Jobs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if batch.Empty() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": batch_scheduler.ErrEmptyBatch.Error()})
		return nil, false
	}
	return batch, true
}

func (s *Server) abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, batch_scheduler.ErrEmptyBatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, _const.ErrUnknownAlgorithm):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("failed to schedule batch", batch_scheduler.Field{Key: "err", Val: err})
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
