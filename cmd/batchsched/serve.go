package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/TimeWtr/batch_scheduler"
	"github.com/TimeWtr/batch_scheduler/api"
	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

const shutdownTimeout = 5 * time.Second

// serve 定时重跑模拟并/或提供HTTP接口，直到ctx被取消
func (a *app) serve(ctx context.Context) error {
	if a.cfg.Cron != "" && a.repo != nil {
		c := cron.New(
			cron.WithParser(_const.Parser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
		_, err := c.AddFunc(a.cfg.Cron, func() {
			if err := a.simulate(ctx); err != nil {
				a.diagnose(err)
			}
		})
		if err != nil {
			return err
		}
		c.Start()
		defer func() {
			<-c.Stop().Done()
		}()
		a.logger.Info("cron started", batch_scheduler.Field{Key: "spec", Val: a.cfg.Cron})
	}

	errCh := make(chan error, 1)
	var srv *http.Server
	if a.cfg.Listen != "" {
		srv = &http.Server{
			Addr:              a.cfg.Listen,
			Handler:           a.router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.logger.Info("http api listening", batch_scheduler.Field{Key: "addr", Val: a.cfg.Listen})
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
	return nil
}

func (a *app) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	api.AddApis(r, api.NewServer(a.sim, a.logger), a.registry)
	return r
}
