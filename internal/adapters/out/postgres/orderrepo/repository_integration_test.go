package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"cropflow/internal/adapters/out/postgres/orderrepo"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/order"
	"cropflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrderWithItems() {
	ctx := context.Background()

	recipeID := kernel.NewUUID()
	item, err := order.NewOrderItem(recipeID, 500)
	suite.Require().NoError(err)

	id := kernel.NewUUID()
	deliveryDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	originalOrder, err := order.NewOrder(id, deliveryDate, []order.OrderItem{item})
	suite.Require().NoError(err)
	originalOrder.AssignBillingAccount("ACC-42")

	suite.tracker.On("TrackAggregate", id, originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrieved, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.Equal(id, retrieved.ID())
	suite.Equal(order.StatusDraft, retrieved.Status())
	suite.True(deliveryDate.Equal(retrieved.DeliveryDate()))
	suite.Equal("ACC-42", retrieved.BillingAccount())
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(recipeID, retrieved.Items()[0].RecipeID())
	suite.InDelta(500.0, retrieved.Items()[0].RequiredGrams(), 0.001)
	suite.Nil(retrieved.Recurrence())
	suite.Nil(retrieved.ParentTemplateID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusChange_Persisted() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	graph := order.DefaultTransitionGraph()
	suite.Require().NoError(testOrder.ChangeStatus(order.StatusConfirmed, graph, false))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	err := suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateWithStatusCheck_MatchingStatus_Succeeds() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	graph := order.DefaultTransitionGraph()
	suite.Require().NoError(testOrder.ChangeStatus(order.StatusConfirmed, graph, false))

	err := suite.repository.UpdateWithStatusCheck(ctx, testOrder, order.StatusDraft)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateWithStatusCheck_StatusMovedOn_ReturnsNotFound() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Another transition already moved the row out of draft
	graph := order.DefaultTransitionGraph()
	suite.Require().NoError(testOrder.ChangeStatus(order.StatusConfirmed, graph, false))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	// The losing writer still expects draft
	err := suite.repository.UpdateWithStatusCheck(ctx, testOrder, order.StatusDraft)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// The stored status keeps the winner's value
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByStatus_FiltersByCode() {
	ctx := context.Background()

	draft := suite.createTestOrder()
	confirmed := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	graph := order.DefaultTransitionGraph()
	suite.Require().NoError(confirmed.ChangeStatus(order.StatusConfirmed, graph, false))

	suite.Require().NoError(suite.repository.Add(ctx, draft))
	suite.Require().NoError(suite.repository.Add(ctx, confirmed))

	drafts, err := suite.repository.GetByStatus(ctx, order.StatusDraft)
	suite.Require().NoError(err)
	suite.Require().Len(drafts, 1)
	suite.Equal(draft.ID(), drafts[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetDueTemplates_ReturnsActiveDueOnly() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	now := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	graph := order.DefaultTransitionGraph()

	dueTemplate := suite.createTestOrder()
	suite.convertToTemplate(dueTemplate, graph, now.AddDate(0, 0, -1))

	futureTemplate := suite.createTestOrder()
	suite.convertToTemplate(futureTemplate, graph, now.AddDate(0, 0, 3))

	stoppedTemplate := suite.createTestOrder()
	suite.convertToTemplate(stoppedTemplate, graph, now.AddDate(0, 0, -2))
	suite.Require().NoError(stoppedTemplate.StopRecurrence())

	plainOrder := suite.createTestOrder()

	for _, o := range []*order.Order{dueTemplate, futureTemplate, stoppedTemplate, plainOrder} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	due, err := suite.repository.GetDueTemplates(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(dueTemplate.ID(), due[0].ID())
	suite.Require().NotNil(due[0].Recurrence())
	suite.True(due[0].Recurrence().IsActive())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StoppedRecurrence_PersistsInactiveFlag() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	graph := order.DefaultTransitionGraph()
	template := suite.createTestOrder()
	suite.convertToTemplate(template, graph, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(suite.repository.Add(ctx, template))

	suite.Require().NoError(template.StopRecurrence())
	suite.Require().NoError(suite.repository.Update(ctx, template))

	retrieved, err := suite.repository.Get(ctx, template.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Recurrence())
	suite.False(retrieved.Recurrence().IsActive())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	item, err := order.NewOrderItem(kernel.NewUUID(), 350)
	suite.Require().NoError(err)

	deliveryDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewUUID(), deliveryDate, []order.OrderItem{item})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) convertToTemplate(o *order.Order, graph *order.TransitionGraph, startDate time.Time) {
	settings, err := order.NewRecurrenceSettings(order.Weekly, 0, startDate, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(o.ConvertToTemplate(settings, graph))
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
