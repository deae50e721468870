package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct {
	tracked []kernel.UUID
}

func (m *mockAggregateTracker) TrackAggregate(id kernel.UUID, _ any) {
	m.tracked = append(m.tracked, id)
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
	tracker   *mockAggregateTracker
}

func (suite *OrderRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)

	suite.tracker = &mockAggregateTracker{}
	suite.repo = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryTestSuite) newOrder(notes string) *order.Order {
	pickup, err := kernel.NewGeoPoint(1.3521, 103.8198)
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(1.3644, 103.9915)
	suite.Require().NoError(err)

	ramen, err := order.NewItem("ramen", 2, 5.00)
	suite.Require().NoError(err)
	gyoza, err := order.NewItem("gyoza", 1, 3.00)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		pickup, dropoff, []order.Item{ramen, gyoza}, notes)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryTestSuite) TestAddAndGet_Roundtrip() {
	ctx := context.Background()
	created := suite.newOrder("leave at door")

	suite.Require().NoError(suite.repo.Add(ctx, created))
	suite.Len(suite.tracker.tracked, 1)

	loaded, err := suite.repo.Get(ctx, created.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(created.ID()))
	suite.True(loaded.CustomerID().IsEqual(created.CustomerID()))
	suite.True(loaded.MerchantID().IsEqual(created.MerchantID()))
	suite.Nil(loaded.Driver())
	suite.Equal(order.Created, loaded.Status())
	suite.Equal("leave at door", loaded.Notes())
	suite.InDelta(13.00, loaded.TotalPrice(), 0.001)
	suite.Len(loaded.Items(), 2)
	suite.Equal("ramen", loaded.Items()[0].Name())
	suite.InDelta(1.3521, loaded.Pickup().Latitude(), 0.000001)
	suite.InDelta(103.9915, loaded.Dropoff().Longitude(), 0.000001)
}

func (suite *OrderRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_PersistsStatusChange() {
	ctx := context.Background()
	o := suite.newOrder("")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	suite.Require().NoError(o.Accept(kernel.NewUUID()))
	suite.Require().NoError(suite.repo.Update(ctx, o))

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
	suite.Require().NotNil(loaded.Driver())
	suite.True(loaded.Driver().IsEqual(*o.Driver()))
}

func (suite *OrderRepositoryTestSuite) TestUpdate_MissingRowReturnsNotFound() {
	err := suite.repo.Update(context.Background(), suite.newOrder(""))

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestGetAllInCreatedStatus_OldestFirst() {
	ctx := context.Background()

	first := suite.newOrder("first")
	suite.Require().NoError(suite.repo.Add(ctx, first))
	time.Sleep(10 * time.Millisecond)

	second := suite.newOrder("second")
	suite.Require().NoError(suite.repo.Add(ctx, second))

	accepted := suite.newOrder("accepted")
	suite.Require().NoError(accepted.Accept(kernel.NewUUID()))
	suite.Require().NoError(suite.repo.Add(ctx, accepted))

	waiting, err := suite.repo.GetAllInCreatedStatus(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(waiting, 2)
	suite.True(waiting[0].ID().IsEqual(first.ID()))
	suite.True(waiting[1].ID().IsEqual(second.ID()))
}

func (suite *OrderRepositoryTestSuite) TestActiveDriverIDs_CoversActiveStatusesOnly() {
	ctx := context.Background()

	activeDriver := kernel.NewUUID()
	active := suite.newOrder("")
	suite.Require().NoError(active.Accept(activeDriver))
	suite.Require().NoError(suite.repo.Add(ctx, active))

	doneDriver := kernel.NewUUID()
	done := suite.newOrder("")
	suite.Require().NoError(done.Accept(doneDriver))
	merchant, err := order.NewActor(done.MerchantID(), order.RoleMerchant)
	suite.Require().NoError(err)
	suite.Require().NoError(done.TransitionTo(order.Preparing, merchant))
	driverActor, err := order.NewActor(doneDriver, order.RoleDriver)
	suite.Require().NoError(err)
	suite.Require().NoError(done.TransitionTo(order.PickedUp, driverActor))
	suite.Require().NoError(done.TransitionTo(order.Delivered, driverActor))
	suite.Require().NoError(suite.repo.Add(ctx, done))

	unassigned := suite.newOrder("")
	suite.Require().NoError(suite.repo.Add(ctx, unassigned))

	ids, err := suite.repo.ActiveDriverIDs(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(ids, 1)
	suite.True(ids[0].IsEqual(activeDriver))
}

func (suite *OrderRepositoryTestSuite) TestAcceptIfCreated_AssignsOnce() {
	ctx := context.Background()
	o := suite.newOrder("")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	winner := kernel.NewUUID()
	accepted, err := suite.repo.AcceptIfCreated(ctx, o.ID(), winner)
	suite.Require().NoError(err)
	suite.True(accepted)

	loser := kernel.NewUUID()
	accepted, err = suite.repo.AcceptIfCreated(ctx, o.ID(), loser)
	suite.Require().NoError(err)
	suite.False(accepted)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
	suite.Require().NotNil(loaded.Driver())
	suite.True(loaded.Driver().IsEqual(winner))
}

func (suite *OrderRepositoryTestSuite) TestAcceptIfCreated_ConcurrentSingleWinner() {
	ctx := context.Background()
	o := suite.newOrder("")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	const attempts = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			accepted, err := suite.repo.AcceptIfCreated(ctx, o.ID(), kernel.NewUUID())
			suite.NoError(err)
			if accepted {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, winners)
}

func (suite *OrderRepositoryTestSuite) TestUpdateIfStatus_LosesWhenStatusMoved() {
	ctx := context.Background()
	o := suite.newOrder("")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	// A competing dispatcher moves the row first.
	accepted, err := suite.repo.AcceptIfCreated(ctx, o.ID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().True(accepted)

	// The in-memory aggregate still thinks the order is created.
	admin, err := order.NewActor(kernel.NewUUID(), order.RoleAdmin)
	suite.Require().NoError(err)
	suite.Require().NoError(o.TransitionTo(order.Cancelled, admin))

	updated, err := suite.repo.UpdateIfStatus(ctx, o, order.Created)
	suite.Require().NoError(err)
	suite.False(updated)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
}

func (suite *OrderRepositoryTestSuite) TestUpdateIfStatus_WinsWhenStatusUnchanged() {
	ctx := context.Background()
	o := suite.newOrder("")
	suite.Require().NoError(suite.repo.Add(ctx, o))

	customer, err := order.NewActor(o.CustomerID(), order.RoleCustomer)
	suite.Require().NoError(err)
	suite.Require().NoError(o.TransitionTo(order.Cancelled, customer))

	updated, err := suite.repo.UpdateIfStatus(ctx, o, order.Created)
	suite.Require().NoError(err)
	suite.True(updated)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, loaded.Status())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}
