package postgres_test

import (
	"context"
	"sync"
	"testing"

	postgres_adapter "aidmatch/internal/adapters/out/postgres"
	"aidmatch/internal/adapters/out/postgres/addressrepo"
	"aidmatch/internal/adapters/out/postgres/requestrepo"
	"aidmatch/internal/adapters/out/postgres/volunteerrepo"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/domain/model/volunteer"
	"aidmatch/internal/core/ports"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work and repositories with a real PostgreSQL database.
// The claim and rejection tests exercise the conditional-UPDATE semantics
// that in-memory fakes cannot reproduce.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(&requestrepo.RequestDTO{}, &volunteerrepo.VolunteerDTO{}, &addressrepo.AddressDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE assistance_requests, volunteers, addresses").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.RequestRepository(), "First instance should provide request repository")
	suite.NotNil(uow1.VolunteerRepository(), "First instance should provide volunteer repository")
	suite.NotNil(uow2.RequestRepository(), "Second instance should provide request repository")
	suite.NotNil(uow2.VolunteerRepository(), "Second instance should provide volunteer repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_RequestRoundTrip verifies a request survives persistence
// with its kind, category, schedule, and rejection set intact.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RequestRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := createTestRequest(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.RequestRepository().Add(ctx, testRequest)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(testRequest.ID(), retrieved.ID())
	suite.Equal(request.KindVolunteerAssistance, retrieved.Kind())
	suite.Equal(request.CategoryMedical, retrieved.Category())
	suite.Equal(request.Pending, retrieved.Status())
	suite.Nil(retrieved.AssignedVolunteer())
	suite.Empty(retrieved.RejectedBy())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across both repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := createTestRequest(suite.T())
	testVolunteer := createTestVolunteer(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.RequestRepository().Add(ctx, testRequest)
	suite.Require().NoError(err)

	err = uow.VolunteerRepository().Add(ctx, testVolunteer)
	suite.Require().NoError(err)

	// Visible inside the transaction
	_, err = uow.RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().Error(err, "Request should not exist after rollback")

	_, err = newUow.VolunteerRepository().Get(ctx, testVolunteer.ID())
	suite.Require().Error(err, "Volunteer should not exist after rollback")
}

// TestRequestRepository_Claim verifies a successful claim transitions the
// request to Approved with the claiming volunteer recorded.
func (suite *UnitOfWorkIntegrationTestSuite) TestRequestRepository_Claim() {
	ctx := context.Background()
	repo := suite.factory.Create().RequestRepository()

	testRequest := createTestRequest(suite.T())
	suite.Require().NoError(repo.Add(ctx, testRequest))

	volunteerID := kernel.NewUUID()
	claimed, err := repo.Claim(ctx, testRequest.ID(), volunteerID)
	suite.Require().NoError(err)
	suite.Equal(request.Approved, claimed.Status())
	suite.Require().NotNil(claimed.AssignedVolunteer())
	suite.True(volunteerID.IsEqual(*claimed.AssignedVolunteer()))
}

// TestRequestRepository_Claim_AlreadyClaimed verifies a second claim on the
// same request fails with ErrAlreadyClaimed and leaves the winner assigned.
func (suite *UnitOfWorkIntegrationTestSuite) TestRequestRepository_Claim_AlreadyClaimed() {
	ctx := context.Background()
	repo := suite.factory.Create().RequestRepository()

	testRequest := createTestRequest(suite.T())
	suite.Require().NoError(repo.Add(ctx, testRequest))

	winnerID := kernel.NewUUID()
	_, err := repo.Claim(ctx, testRequest.ID(), winnerID)
	suite.Require().NoError(err)

	_, err = repo.Claim(ctx, testRequest.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, ports.ErrAlreadyClaimed)

	retrieved, err := repo.Get(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.True(winnerID.IsEqual(*retrieved.AssignedVolunteer()))
}

// TestRequestRepository_Claim_NotFound verifies claiming an unknown id
// reports a not-found error rather than a claim conflict.
func (suite *UnitOfWorkIntegrationTestSuite) TestRequestRepository_Claim_NotFound() {
	ctx := context.Background()
	repo := suite.factory.Create().RequestRepository()

	_, err := repo.Claim(ctx, kernel.NewUUID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestRequestRepository_Claim_Concurrent verifies exactly one of many
// simultaneous claimants wins the conditional update.
func (suite *UnitOfWorkIntegrationTestSuite) TestRequestRepository_Claim_Concurrent() {
	ctx := context.Background()
	repo := suite.factory.Create().RequestRepository()

	testRequest := createTestRequest(suite.T())
	suite.Require().NoError(repo.Add(ctx, testRequest))

	const claimants = 8
	var wg sync.WaitGroup
	results := make([]error, claimants)

	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, results[n] = repo.Claim(ctx, testRequest.ID(), kernel.NewUUID())
		}(i)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case suite.ErrorIs(err, ports.ErrAlreadyClaimed):
			losses++
		}
	}
	suite.Equal(1, wins, "Exactly one claimant should win")
	suite.Equal(claimants-1, losses, "All other claimants should observe the claim conflict")
}

// TestVolunteerRepository_ConcurrentTaskCountIncrements verifies the
// row-locked volunteer read serializes concurrent counter mutations: each
// transaction increments from the previous one's committed value, so no
// increment is lost to a stale overwrite.
func (suite *UnitOfWorkIntegrationTestSuite) TestVolunteerRepository_ConcurrentTaskCountIncrements() {
	ctx := context.Background()

	testVolunteer := createTestVolunteer(suite.T())
	suite.Require().NoError(suite.factory.Create().VolunteerRepository().Add(ctx, testVolunteer))

	const claims = 4
	var wg sync.WaitGroup
	results := make([]error, claims)

	for i := 0; i < claims; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = func() error {
				uow := suite.factory.Create()
				if err := uow.Begin(ctx); err != nil {
					return err
				}
				defer func() { _ = uow.Rollback(ctx) }()

				repo := uow.VolunteerRepository()
				claimant, err := repo.GetForUpdate(ctx, testVolunteer.ID())
				if err != nil {
					return err
				}
				if err = claimant.BeginTask(claims); err != nil {
					return err
				}
				if err = repo.Update(ctx, claimant); err != nil {
					return err
				}
				return uow.Commit(ctx)
			}()
		}(i)
	}
	wg.Wait()

	for _, err := range results {
		suite.Require().NoError(err)
	}

	final, err := suite.factory.Create().VolunteerRepository().Get(ctx, testVolunteer.ID())
	suite.Require().NoError(err)
	suite.Equal(claims, final.TaskCount(), "Every committed claim should count exactly once")
}

// TestRequestRepository_AppendRejection verifies rejection is recorded,
// hides the request from the rejecting volunteer's pending page, and is
// idempotent on repeat calls.
func (suite *UnitOfWorkIntegrationTestSuite) TestRequestRepository_AppendRejection() {
	ctx := context.Background()
	repo := suite.factory.Create().RequestRepository()

	testRequest := createTestRequest(suite.T())
	suite.Require().NoError(repo.Add(ctx, testRequest))

	rejectorID := kernel.NewUUID()
	suite.Require().NoError(repo.AppendRejection(ctx, testRequest.ID(), rejectorID))
	suite.Require().NoError(repo.AppendRejection(ctx, testRequest.ID(), rejectorID), "Repeat rejection should be a no-op")

	retrieved, err := repo.Get(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.Len(retrieved.RejectedBy(), 1, "Rejection set should hold the volunteer exactly once")
	suite.True(retrieved.IsRejectedBy(rejectorID))
	suite.Equal(request.Pending, retrieved.Status(), "Rejection should not change the request status")

	// Hidden from the rejector, still visible to everyone else
	page, err := repo.GetPendingPage(ctx, ports.PendingFilter{ExcludeVolunteer: rejectorID, Page: 1, PageSize: ports.MatchingPageSize})
	suite.Require().NoError(err)
	suite.Empty(page)

	page, err = repo.GetPendingPage(ctx, ports.PendingFilter{ExcludeVolunteer: kernel.NewUUID(), Page: 1, PageSize: ports.MatchingPageSize})
	suite.Require().NoError(err)
	suite.Len(page, 1)
}

// TestRequestRepository_AppendRejection_NotFound verifies rejecting an
// unknown request reports a not-found error.
func (suite *UnitOfWorkIntegrationTestSuite) TestRequestRepository_AppendRejection_NotFound() {
	ctx := context.Background()
	repo := suite.factory.Create().RequestRepository()

	err := repo.AppendRejection(ctx, kernel.NewUUID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestRequestRepository_GetPendingPage verifies pending-page filtering: only
// pending unassigned requests appear, and kind filtering narrows the set.
func (suite *UnitOfWorkIntegrationTestSuite) TestRequestRepository_GetPendingPage() {
	ctx := context.Background()
	repo := suite.factory.Create().RequestRepository()

	pending := createTestRequest(suite.T())
	suite.Require().NoError(repo.Add(ctx, pending))

	ambulance, err := request.NewAssistanceRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		request.KindAmbulance, request.CategoryNone, request.PriorityUrgent,
		"chest pain", request.Schedule{},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, ambulance))

	claimedRequest := createTestRequest(suite.T())
	suite.Require().NoError(repo.Add(ctx, claimedRequest))
	_, err = repo.Claim(ctx, claimedRequest.ID(), kernel.NewUUID())
	suite.Require().NoError(err)

	viewerID := kernel.NewUUID()

	page, err := repo.GetPendingPage(ctx, ports.PendingFilter{ExcludeVolunteer: viewerID, Page: 1, PageSize: ports.MatchingPageSize})
	suite.Require().NoError(err)
	suite.Len(page, 2, "Claimed request should be excluded from the pending pool")

	page, err = repo.GetPendingPage(ctx, ports.PendingFilter{
		ExcludeVolunteer: viewerID,
		Kind:             request.KindAmbulance,
		Page:             1,
		PageSize:         ports.MatchingPageSize,
	})
	suite.Require().NoError(err)
	suite.Require().Len(page, 1)
	suite.Equal(request.KindAmbulance, page[0].Kind())
}

// TestAddressRepository_GetCoordinates verifies coordinate round trip and the
// not-found behavior for both missing rows and rows without coordinates.
func (suite *UnitOfWorkIntegrationTestSuite) TestAddressRepository_GetCoordinates() {
	ctx := context.Background()
	repo := addressrepo.NewGormAddressRepository(suite.db)

	addressID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(10.0, 76.0)
	suite.Require().NoError(err)

	err = repo.Put(ctx, addressID, "12 Hill Road", "Kochi", "682001", &point)
	suite.Require().NoError(err)

	got, err := repo.GetCoordinates(ctx, addressID)
	suite.Require().NoError(err)
	suite.InDelta(10.0, got.Lat(), 1e-9)
	suite.InDelta(76.0, got.Lon(), 1e-9)

	_, err = repo.GetCoordinates(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// Stored without coordinates: geocoding failed for this address
	ungeocoded := kernel.NewUUID()
	err = repo.Put(ctx, ungeocoded, "unknown lane", "", "", nil)
	suite.Require().NoError(err)

	_, err = repo.GetCoordinates(ctx, ungeocoded)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// createTestRequest creates a valid pending volunteer-assistance request.
func createTestRequest(t *testing.T) *request.AssistanceRequest {
	t.Helper()
	testRequest, err := request.NewAssistanceRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		request.KindVolunteerAssistance,
		request.CategoryMedical,
		request.PriorityNormal,
		"pick up prescription refill",
		request.Schedule{Date: "2026-09-03", Time: "10:00"},
	)
	if err != nil {
		t.Fatalf("failed to create test request: %v", err)
	}
	return testRequest
}

// createTestVolunteer creates a valid volunteer with no active tasks.
func createTestVolunteer(t *testing.T) *volunteer.Volunteer {
	t.Helper()
	testVolunteer, err := volunteer.NewVolunteer(kernel.NewUUID(), "Asha", kernel.NewUUID())
	if err != nil {
		t.Fatalf("failed to create test volunteer: %v", err)
	}
	return testVolunteer
}

// TestUnitOfWorkIntegrationTestSuite runs the integration test suite.
// Requires Docker to be available for the PostgreSQL container.
func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
