package orderrepo_test

import (
	"context"
	"testing"
	"time"

	pg "autoservice/internal/adapters/out/postgres"
	"autoservice/internal/adapters/out/postgres/catalogrepo"
	"autoservice/internal/adapters/out/postgres/orderrepo"
	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderRepositoryIntegrationTestSuite exercises the order repository
// against a real PostgreSQL database, including the destructive
// composition replacement on update.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	repo        *orderrepo.GormOrderRepository
	catalogRepo *catalogrepo.GormCatalogRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(pg.AutoMigrate(db))

	suite.repo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
	suite.catalogRepo = catalogrepo.NewGormCatalogRepository(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	for _, table := range []string{"order_jobs", "order_vehicles", "order_history", "orders"} {
		suite.Require().NoError(suite.db.Exec("DELETE FROM " + table).Error)
	}
}

// createFullOrder persists an anonymous order with a driver contact,
// coordinates and one vehicle carrying two categories, one with a task.
func (suite *OrderRepositoryIntegrationTestSuite) createFullOrder() *order.Order {
	ctx := context.Background()

	contact, err := suite.catalogRepo.GetOrCreateContact(ctx, "Ivan", "+79990001122")
	suite.Require().NoError(err)
	driver, err := suite.catalogRepo.GetOrCreateContact(ctx, "Semyon", "+79990005566")
	suite.Require().NoError(err)
	address, err := suite.catalogRepo.GetOrCreateAddress(ctx, "Lenina 1", "Tver", "Tver Oblast")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), nil, &contact, &driver, address,
		"brakes squeal", true, false, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.SetCoordinates(56.8587, 35.9176))

	vehicle, err := suite.catalogRepo.GetOrCreateVehicle(
		ctx, "Volvo", "FH16", catalog.VehicleTypeTruck, "curtainsider")
	suite.Require().NoError(err)
	assignment, err := order.NewVehicleAssignment(
		kernel.NewUUID(), vehicle, "A123BC", "WVWZZZ1JZXW000001", 120000)
	suite.Require().NoError(err)

	category3, err := suite.catalogRepo.GetOrCreateJobCategory(ctx, 3)
	suite.Require().NoError(err)
	category7, err := suite.catalogRepo.GetOrCreateJobCategory(ctx, 7)
	suite.Require().NoError(err)
	task, err := suite.catalogRepo.GetOrCreateTask(ctx, "replace brake pads", true)
	suite.Require().NoError(err)

	suite.Require().NoError(assignment.ReplaceJobs([]order.JobSpec{
		{Category: category3, Tasks: []catalog.Task{task}},
		{Category: category7},
	}))
	suite.Require().NoError(aggregate.AttachVehicle(assignment))

	suite.Require().NoError(suite.repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_FullComposition() {
	ctx := context.Background()
	aggregate := suite.createFullOrder()

	restored, err := suite.repo.Get(ctx, aggregate.ID())

	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(aggregate.ID()))
	suite.Equal(order.Created, restored.Status())
	suite.Equal("brakes squeal", restored.Description())
	suite.True(restored.NeedEvacuator())
	suite.False(restored.NeedFieldTechnician())
	suite.Require().NotNil(restored.CustomerContact())
	suite.Equal("+79990001122", restored.CustomerContact().Phone())
	suite.Require().NotNil(restored.DriverContact())
	suite.Equal("Semyon", restored.DriverContact().Name())
	suite.Equal("Tver Oblast", restored.Address().Region())

	vehicles := restored.Vehicles()
	suite.Require().Len(vehicles, 1)
	suite.Equal("Volvo", vehicles[0].Vehicle().Brand())
	suite.Equal("WVWZZZ1JZXW000001", vehicles[0].VIN())
	suite.Equal(120000, vehicles[0].Mileage())
	suite.Equal(2, vehicles[0].DistinctCategoryCount())

	jobs := vehicles[0].Jobs()
	suite.Require().Len(jobs, 2)
	suite.Equal(3, jobs[0].Category().CategoryID())
	suite.Require().NotNil(jobs[0].Task())
	suite.Equal("replace brake pads", jobs[0].Task().Name())
	suite.Nil(jobs[1].Task())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesComposition() {
	ctx := context.Background()
	aggregate := suite.createFullOrder()

	category5, err := suite.catalogRepo.GetOrCreateJobCategory(ctx, 5)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Vehicles()[0].ReplaceJobs([]order.JobSpec{
		{Category: category5},
	}))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	restored, err := suite.repo.Get(ctx, aggregate.ID())

	suite.Require().NoError(err)
	jobs := restored.Vehicles()[0].Jobs()
	suite.Require().Len(jobs, 1)
	suite.Equal(5, jobs[0].Category().CategoryID())

	var jobRows int64
	suite.Require().NoError(suite.db.Table("order_jobs").Count(&jobRows).Error)
	suite.Equal(int64(1), jobRows, "replaced job rows must be deleted, not orphaned")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CancellationReleasesReferences() {
	ctx := context.Background()
	aggregate := suite.createFullOrder()
	masterID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Accept(masterID, time.Now()))
	suite.Require().NoError(aggregate.AttachChat(kernel.NewUUID()))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	clone, err := aggregate.CloneForCancel(kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Reopen(time.Now()))
	suite.Require().NoError(suite.repo.Add(ctx, clone))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	restored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, restored.Status())
	suite.Nil(restored.MasterID(), "released contractor must be written back as NULL")
	suite.Nil(restored.ChatID(), "chat reference must be written back as NULL")
	suite.False(restored.Hidden())

	snapshot, err := suite.repo.Get(ctx, clone.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, snapshot.Status())
	suite.True(snapshot.Hidden())
	suite.Require().NotNil(snapshot.CloneOrderID())
	suite.True(snapshot.CloneOrderID().IsEqual(aggregate.ID()))
	suite.Require().NotNil(snapshot.MasterID())
	suite.True(snapshot.MasterID().IsEqual(masterID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	ctx := context.Background()
	aggregate := suite.createFullOrder()
	suite.Require().NoError(suite.db.Exec("DELETE FROM order_jobs").Error)
	suite.Require().NoError(suite.db.Exec("DELETE FROM order_vehicles").Error)
	suite.Require().NoError(suite.db.Exec("DELETE FROM orders").Error)

	err := suite.repo.Update(ctx, aggregate)

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_LoadsComposition() {
	aggregate := suite.createFullOrder()

	restored, err := suite.repo.GetForUpdate(context.Background(), aggregate.ID())

	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(aggregate.ID()))
	suite.Len(restored.Vehicles(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllAnonymousByPhone() {
	ctx := context.Background()
	anonymous := suite.createFullOrder()

	customerID := kernel.NewUUID()
	address, err := suite.catalogRepo.GetOrCreateAddress(ctx, "Mira 5", "Tver", "Tver Oblast")
	suite.Require().NoError(err)
	owned, err := order.NewOrder(
		kernel.NewUUID(), &customerID, nil, nil, address, "", false, false, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, owned))

	found, err := suite.repo.GetAllAnonymousByPhone(ctx, "+79990001122")

	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(found[0].ID().IsEqual(anonymous.ID()))

	none, err := suite.repo.GetAllAnonymousByPhone(ctx, "+70000000000")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllCreatedBefore() {
	ctx := context.Background()

	contact, err := suite.catalogRepo.GetOrCreateContact(ctx, "Ivan", "+79990001122")
	suite.Require().NoError(err)
	address, err := suite.catalogRepo.GetOrCreateAddress(ctx, "Lenina 1", "Tver", "Tver Oblast")
	suite.Require().NoError(err)

	stale, err := order.NewOrder(
		kernel.NewUUID(), nil, &contact, nil, address, "", false, false,
		time.Now().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, stale))

	fresh, err := order.NewOrder(
		kernel.NewUUID(), nil, &contact, nil, address, "", false, false, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, fresh))

	taken, err := order.NewOrder(
		kernel.NewUUID(), nil, &contact, nil, address, "", false, false,
		time.Now().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(taken.Accept(kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.repo.Add(ctx, taken))

	found, err := suite.repo.GetAllCreatedBefore(ctx, time.Now().Add(-30*time.Minute))

	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(found[0].ID().IsEqual(stale.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddHistory() {
	ctx := context.Background()
	aggregate := suite.createFullOrder()
	masterID := kernel.NewUUID()

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), aggregate.ID(), order.InProgress, &masterID, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.AddHistory(ctx, entry))

	var historyRows int64
	suite.Require().NoError(suite.db.Table("order_history").
		Where("order_id = ?", aggregate.ID().Bytes()).Count(&historyRows).Error)
	suite.Equal(int64(1), historyRows)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
