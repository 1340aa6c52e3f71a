package cmd

import (
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/jobs"
	"shipping/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger, m *metrics.Metrics) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New(metrics.DefaultNamespace)
	}
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		metrics:    m,
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) intakeUoWFactory() commands.IntakeUoWFactory {
	return FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) branchUoWFactory() commands.BranchUoWFactory {
	return FuncBranchUoWFactory(func() commands.BranchUoW {
		return c.uowFactory.Create()
	})
}

// Package commands

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	return commands.NewCreatePackageCommandHandler(c.intakeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateTransitionStatusCommandHandler() commands.TransitionStatusCommandHandler {
	return commands.NewTransitionStatusCommandHandler(c.parcelUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateToggleCancelCommandHandler() commands.ToggleCancelCommandHandler {
	return commands.NewToggleCancelCommandHandler(c.parcelUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(c.parcelUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateResolveIssueCommandHandler() commands.ResolveIssueCommandHandler {
	return commands.NewResolveIssueCommandHandler(c.parcelUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRequestReturnCommandHandler() commands.RequestReturnCommandHandler {
	return commands.NewRequestReturnCommandHandler(c.parcelUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateProcessRefundCommandHandler() commands.ProcessRefundCommandHandler {
	return commands.NewProcessRefundCommandHandler(c.parcelUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.parcelUoWFactory(), c.logger)
}

// Route commands

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	return commands.NewCreateRouteCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateAssignRouteCommandHandler() commands.AssignRouteCommandHandler {
	return commands.NewAssignRouteCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateStartRouteCommandHandler() commands.StartRouteCommandHandler {
	return commands.NewStartRouteCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreatePauseRouteCommandHandler() commands.PauseRouteCommandHandler {
	return commands.NewPauseRouteCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateResumeRouteCommandHandler() commands.ResumeRouteCommandHandler {
	return commands.NewResumeRouteCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCancelRouteCommandHandler() commands.CancelRouteCommandHandler {
	return commands.NewCancelRouteCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCompleteRouteCommandHandler() commands.CompleteRouteCommandHandler {
	return commands.NewCompleteRouteCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateArriveAtStopCommandHandler() commands.ArriveAtStopCommandHandler {
	return commands.NewArriveAtStopCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCompleteStopCommandHandler() commands.CompleteStopCommandHandler {
	return commands.NewCompleteStopCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateFailStopCommandHandler() commands.FailStopCommandHandler {
	return commands.NewFailStopCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSkipStopCommandHandler() commands.SkipStopCommandHandler {
	return commands.NewSkipStopCommandHandler(c.routeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateReorderStopsCommandHandler() commands.ReorderStopsCommandHandler {
	return commands.NewReorderStopsCommandHandler(c.routeUoWFactory(), c.logger)
}

// Branch commands

func (c *CompositionRoot) CreateCreateBranchCommandHandler() commands.CreateBranchCommandHandler {
	return commands.NewCreateBranchCommandHandler(c.branchUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateUpdateBranchCapacityCommandHandler() commands.UpdateBranchCapacityCommandHandler {
	return commands.NewUpdateBranchCapacityCommandHandler(c.branchUoWFactory(), c.logger)
}

// Queries

func (c *CompositionRoot) CreateGetPackageDetailsQueryHandler() queries.GetPackageDetailsQueryHandler {
	return queries.NewGetPackageDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackageRoutesQueryHandler() queries.GetPackageRoutesQueryHandler {
	return queries.NewGetPackageRoutesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteDetailsQueryHandler() queries.GetRouteDetailsQueryHandler {
	return queries.NewGetRouteDetailsQueryHandler(c.uowFactory.Create().RouteRepository())
}

func (c *CompositionRoot) CreateGetPackagesDueForRetryQueryHandler() queries.GetPackagesDueForRetryQueryHandler {
	return queries.NewGetPackagesDueForRetryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchLoadQueryHandler() queries.GetBranchLoadQueryHandler {
	return queries.NewGetBranchLoadQueryHandler(c.gormDB)
}

// Inbound adapters and jobs

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreatePackage:    c.CreateCreatePackageCommandHandler(),
		TransitionStatus: c.CreateTransitionStatusCommandHandler(),
		ToggleCancel:     c.CreateToggleCancelCommandHandler(),
		ReportIssue:      c.CreateReportIssueCommandHandler(),
		ResolveIssue:     c.CreateResolveIssueCommandHandler(),
		RequestReturn:    c.CreateRequestReturnCommandHandler(),
		ProcessRefund:    c.CreateProcessRefundCommandHandler(),
		RecordPayment:    c.CreateRecordPaymentCommandHandler(),

		CreateRoute:   c.CreateCreateRouteCommandHandler(),
		AssignRoute:   c.CreateAssignRouteCommandHandler(),
		StartRoute:    c.CreateStartRouteCommandHandler(),
		PauseRoute:    c.CreatePauseRouteCommandHandler(),
		ResumeRoute:   c.CreateResumeRouteCommandHandler(),
		CancelRoute:   c.CreateCancelRouteCommandHandler(),
		CompleteRoute: c.CreateCompleteRouteCommandHandler(),
		ArriveAtStop:  c.CreateArriveAtStopCommandHandler(),
		CompleteStop:  c.CreateCompleteStopCommandHandler(),
		FailStop:      c.CreateFailStopCommandHandler(),
		SkipStop:      c.CreateSkipStopCommandHandler(),
		ReorderStops:  c.CreateReorderStopsCommandHandler(),

		CreateBranch:         c.CreateCreateBranchCommandHandler(),
		UpdateBranchCapacity: c.CreateUpdateBranchCapacityCommandHandler(),

		GetPackageDetails:      c.CreateGetPackageDetailsQueryHandler(),
		GetPackageRoutes:       c.CreateGetPackageRoutesQueryHandler(),
		GetRouteDetails:        c.CreateGetRouteDetailsQueryHandler(),
		GetPackagesDueForRetry: c.CreateGetPackagesDueForRetryQueryHandler(),
		GetBranchLoad:          c.CreateGetBranchLoadQueryHandler(),
	}, c.metrics, c.logger, c.cfg.DefaultMaxAttempts)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.Config{
			RetrySchedule: c.cfg.RetrySchedule,
			RetryBatch:    jobs.DefaultRetryBatch,
			Recorder:      c.metrics,
		},
		c.CreateGetPackagesDueForRetryQueryHandler(),
		c.CreateTransitionStatusCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncBranchUoWFactory func() commands.BranchUoW

func (f FuncBranchUoWFactory) Create() commands.BranchUoW {
	return f()
}
