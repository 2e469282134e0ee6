package cmd

import (
	"log/slog"

	"aidmatch/internal/adapters/in/http"
	"aidmatch/internal/adapters/out/postgres"
	"aidmatch/internal/adapters/out/postgres/addressrepo"
	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/services"
	"aidmatch/internal/core/ports"
	"aidmatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	addressRepo *addressrepo.GormAddressRepository
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		addressRepo: addressrepo.NewGormAddressRepository(gormDB),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateSubmitRequestCommandHandler() commands.SubmitRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterVolunteerCommandHandler() commands.RegisterVolunteerCommandHandler {
	var f commands.VolunteerUoWFactory = FuncVolunteerUoWFactory(func() commands.VolunteerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterVolunteerCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveRequestCommandHandler() commands.ApproveRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveRequestCommandHandler(f, c.config.TaskCeiling)
}

func (c *CompositionRoot) CreateRejectRequestCommandHandler() commands.RejectRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteRequestCommandHandler() commands.CompleteRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateFindNearbyRequestsQueryHandler() queries.FindNearbyRequestsQueryHandler {
	return queries.NewFindNearbyRequestsQueryHandler(
		c.requestRepository(),
		c.volunteerRepository(),
		c.addressRepo,
		services.NewRequestRankerWithBand(c.config.MinDistanceKm, c.config.MaxDistanceKm),
		ports.MatchingPageSize,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCheckTaskLimitQueryHandler() queries.CheckTaskLimitQueryHandler {
	return queries.NewCheckTaskLimitQueryHandler(c.volunteerRepository(), c.config.TaskCeiling)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateSubmitRequestCommandHandler(),
		c.CreateRegisterVolunteerCommandHandler(),
		c.CreateApproveRequestCommandHandler(),
		c.CreateRejectRequestCommandHandler(),
		c.CreateCompleteRequestCommandHandler(),
		c.CreateFindNearbyRequestsQueryHandler(),
		c.CreateCheckTaskLimitQueryHandler(),
		c.addressRepo,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.requestRepository(), c.logger)
}

// requestRepository returns a repository bound to the main connection, for
// read paths and jobs that run outside any unit of work.
func (c *CompositionRoot) requestRepository() ports.RequestRepository {
	return c.uowFactory.Create().RequestRepository()
}

func (c *CompositionRoot) volunteerRepository() ports.VolunteerRepository {
	return c.uowFactory.Create().VolunteerRepository()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncVolunteerUoWFactory func() commands.VolunteerUoW

func (f FuncVolunteerUoWFactory) Create() commands.VolunteerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
