package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/TimeWtr/batch_scheduler"
	"github.com/TimeWtr/batch_scheduler/config"
	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/report"
	"github.com/TimeWtr/batch_scheduler/repository"
	"github.com/TimeWtr/batch_scheduler/repository/dao"
	"github.com/TimeWtr/batch_scheduler/telemetry"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 所有错误都只输出提示信息，进程正常退出
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		_, _ = fmt.Fprintln(os.Stdout, err)
	}
}

type options struct {
	configPath string
	format     string
	preempt    string
	compare    bool
	list       bool
	dsn        string
	importFile string
	cron       string
	listen     string
	logLevel   string
}

func parseFlags(args []string, out io.Writer) (*options, []string, error) {
	var o options
	fs := flag.NewFlagSet("batchsched", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(out, "usage: batchsched [flags] <batchFileName> <FCFS|ShortestFirst|Priority>")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.configPath, "config", "", "path of the YAML config file")
	fs.StringVar(&o.format, "format", "", "report format: text or table")
	fs.StringVar(&o.preempt, "preempt", "", "requeue policy for split jobs: unbounded or once")
	fs.BoolVar(&o.compare, "compare", false, "run all algorithms on the batch")
	fs.BoolVar(&o.list, "list", false, "list the batches stored in the database given by -db")
	fs.StringVar(&o.dsn, "db", "", "sqlite DSN; the first argument names a batch stored there")
	fs.StringVar(&o.importFile, "import", "", "batch file to store under the batch name before running (requires -db)")
	fs.StringVar(&o.cron, "cron", "", "re-run the simulation on this schedule, e.g. \"@every 1m\"")
	fs.StringVar(&o.listen, "listen", "", "serve the HTTP API on this address")
	fs.StringVar(&o.logLevel, "log-level", "", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &o, fs.Args(), nil
}

func loadConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if o.format != "" {
		cfg.Format = o.format
	}
	if o.preempt != "" {
		cfg.Preempt = o.preempt
	}
	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}
	if o.cron != "" {
		cfg.Cron = o.cron
	}
	if o.listen != "" {
		cfg.Listen = o.listen
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	return cfg, cfg.Validate()
}

// app 一次命令行调用所需的组件
type app struct {
	cfg     *config.Config
	compare bool
	name    string
	// 错误提示中使用的文件名
	source   string
	alg      _const.Algorithm
	repo     repository.JobRepository
	sim      batch_scheduler.Simulator
	reporter report.Reporter
	registry *prometheus.Registry
	logger   batch_scheduler.Logger
	out      io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	o, positional, err := parseFlags(args, out)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	zl, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	logger := batch_scheduler.NewZapLogger(zl)

	a := &app{
		cfg:      cfg,
		compare:  o.compare,
		registry: prometheus.NewRegistry(),
		logger:   logger,
		out:      out,
	}
	if a.reporter, err = report.New(cfg.Format); err != nil {
		return err
	}
	a.sim = batch_scheduler.NewSimulatorCore(logger,
		batch_scheduler.WithPreemptPolicy(cfg.PreemptPolicy()),
		batch_scheduler.WithLimiter(cfg.Limiter),
		batch_scheduler.WithObserver(telemetry.NewCollector(a.registry)))

	if o.list {
		if err := a.listBatches(ctx); err != nil {
			a.diagnose(err)
		}
		return nil
	}

	// 只启动HTTP接口，不处理本地批次
	if len(positional) == 0 && cfg.Listen != "" {
		return a.serve(ctx)
	}

	if err := a.parseArgs(positional); err != nil {
		a.diagnose(err)
		return nil
	}

	if err := a.openRepository(ctx, o.importFile); err != nil {
		a.diagnose(err)
		return nil
	}

	if err := a.simulate(ctx); err != nil {
		a.diagnose(err)
		if cfg.Cron == "" && cfg.Listen == "" {
			return nil
		}
	}

	if cfg.Cron == "" && cfg.Listen == "" {
		return nil
	}
	return a.serve(ctx)
}

func (a *app) parseArgs(positional []string) error {
	if len(positional) == 0 || len(positional) > 2 {
		return errUsage
	}
	a.name = positional[0]
	a.source = positional[0]
	if a.compare {
		return nil
	}

	name := a.cfg.Algorithm
	if len(positional) == 2 {
		name = positional[1]
	}
	if name == "" {
		return errUsage
	}

	alg, err := _const.ParseAlgorithm(name)
	if err != nil {
		return err
	}
	a.alg = alg
	return nil
}

// openDB 打开数据库并迁移作业表
func (a *app) openDB(ctx context.Context) (*dao.JobDAO, error) {
	db, err := gorm.Open(sqlite.Open(a.cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	d := dao.NewJobDAO(db)
	if err := d.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return d, nil
}

// listBatches 每行输出一个已保存的批次名称
func (a *app) listBatches(ctx context.Context) error {
	if a.cfg.Database.DSN == "" {
		return errors.New("-list requires -db")
	}

	d, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	batches, err := repository.NewDBRepository(d, "").Batches(ctx)
	if err != nil {
		return err
	}
	for _, b := range batches {
		if _, err := fmt.Fprintln(a.out, b); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) openRepository(ctx context.Context, importFile string) error {
	if a.cfg.Database.DSN == "" {
		if importFile != "" {
			return errors.New("-import requires -db")
		}
		file := repository.NewFileRepository(a.name)
		a.source = file.Path()
		a.repo = file
		return nil
	}

	d, err := a.openDB(ctx)
	if err != nil {
		return err
	}

	repo := repository.NewDBRepository(d, a.name)
	if importFile != "" {
		file := repository.NewFileRepository(importFile)
		a.source = file.Path()
		jobs, err := file.Load(ctx)
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, jobs); err != nil {
			return fmt.Errorf("importing batch: %w", err)
		}
		a.source = a.name
		a.logger.Info("batch imported",
			batch_scheduler.Field{Key: "batch", Val: a.name},
			batch_scheduler.Field{Key: "jobs", Val: len(jobs)})
	}
	a.repo = repo
	return nil
}

// simulate 读取批次，运行算法并输出结果
func (a *app) simulate(ctx context.Context) error {
	jobs, err := a.repo.Load(ctx)
	if err != nil {
		return err
	}

	batch, err := batch_scheduler.NewBatch(jobs)
	if err != nil {
		return err
	}
	if batch.Empty() {
		return batch_scheduler.ErrEmptyBatch
	}

	if a.compare {
		results, err := a.sim.Compare(ctx, batch)
		if err != nil {
			return err
		}
		return report.ReportAll(a.out, a.reporter, results)
	}

	res, err := a.sim.Run(ctx, batch, a.alg)
	if err != nil {
		return err
	}
	a.logger.Debug("writing report",
		batch_scheduler.Field{Key: "format", Val: a.reporter.Name()},
		batch_scheduler.Field{Key: "run_id", Val: res.RunID})
	return a.reporter.Report(a.out, res)
}

// diagnose 输出用户可读的错误提示
func (a *app) diagnose(err error) {
	var msg string
	switch {
	case errors.Is(err, errUsage):
		msg = "Please enter arguments as: 'BatchfileName.txt' 'SchedulingAlgorithm'"
	case errors.Is(err, _const.ErrUnknownAlgorithm):
		msg = "Valid process scheduling algorithms are 'FCFS', 'ShortestFirst', and 'Priority'."
	case errors.Is(err, repository.ErrInputFileMissing):
		msg = fmt.Sprintf("File %s does not exist.", a.source)
	case errors.Is(err, repository.ErrBatchNotFound):
		msg = fmt.Sprintf("Batch %s does not exist in the database.", a.name)
	case errors.Is(err, repository.ErrMalformedRecord):
		msg = fmt.Sprintf("Batch %s is malformed: %v", a.source, err)
	case errors.Is(err, batch_scheduler.ErrEmptyBatch):
		msg = fmt.Sprintf("Batch %s has no jobs.", a.name)
	case errors.Is(err, batch_scheduler.ErrInvalidJob),
		errors.Is(err, batch_scheduler.ErrDuplicateJobID):
		msg = fmt.Sprintf("Batch %s is invalid: %v", a.name, err)
	default:
		msg = err.Error()
	}

	a.logger.Warn("simulation aborted", batch_scheduler.Field{Key: "err", Val: err})
	_, _ = fmt.Fprintln(a.out, msg)
}
