package croprepo_test

import (
	"context"
	"testing"
	"time"

	"cropflow/internal/adapters/out/postgres/croprepo"
	"cropflow/internal/adapters/out/postgres/reciperepo"
	"cropflow/internal/core/domain/model/crop"
	"cropflow/internal/core/domain/model/kernel"
	"cropflow/internal/core/domain/model/recipe"
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

// CropRepositoryIntegrationTestSuite provides integration tests for CropRepository
// using PostgreSQL containers to verify database persistence behavior.
type CropRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *croprepo.GormCropRepository
	recipes    *reciperepo.GormRecipeRepository
	tracker    *MockAggregateTracker
}

func (suite *CropRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&reciperepo.RecipeDTO{}, &croprepo.CropUnitDTO{}))
}

func (suite *CropRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE crop_units, recipes").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = croprepo.NewGormCropRepository(suite.db, suite.tracker)
	suite.recipes = reciperepo.NewGormRecipeRepository(suite.db, suite.tracker)
}

func (suite *CropRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CropRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsStageHistory() {
	ctx := context.Background()

	rec := suite.createTestRecipe("Radish")
	plantedAt := time.Date(2026, 2, 9, 6, 0, 0, 0, time.UTC)

	unit, err := crop.NewCropUnit(kernel.NewUUID(), kernel.NewUUID(), rec, plantedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, unit))

	retrieved, err := suite.repository.Get(ctx, unit.ID())
	suite.Require().NoError(err)

	suite.Equal(unit.ID(), retrieved.ID())
	suite.Equal(unit.OrderID(), retrieved.OrderID())
	suite.Equal(crop.Soaking, retrieved.Stage())
	suite.Equal("Radish", retrieved.Recipe().SeedVariety())
	suite.Require().NotNil(retrieved.StageEnteredAt(crop.Soaking))
	suite.True(plantedAt.Equal(*retrieved.StageEnteredAt(crop.Soaking)))
	suite.Nil(retrieved.StageEnteredAt(crop.Germination))
}

func (suite *CropRepositoryIntegrationTestSuite) TestUpdate_AdvancedStage_PersistsNewEntry() {
	ctx := context.Background()

	rec := suite.createTestRecipe("Pea")
	plantedAt := time.Date(2026, 2, 9, 6, 0, 0, 0, time.UTC)

	unit, err := crop.NewCropUnit(kernel.NewUUID(), kernel.NewUUID(), rec, plantedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, unit))

	advancedAt := plantedAt.Add(12 * time.Hour)
	suite.Require().NoError(unit.Advance(crop.Germination, advancedAt))
	suite.Require().NoError(suite.repository.Update(ctx, unit))

	retrieved, err := suite.repository.Get(ctx, unit.ID())
	suite.Require().NoError(err)
	suite.Equal(crop.Germination, retrieved.Stage())
	suite.Require().NotNil(retrieved.StageEnteredAt(crop.Germination))
	suite.True(advancedAt.Equal(*retrieved.StageEnteredAt(crop.Germination)))
	suite.True(plantedAt.Equal(*retrieved.StageEnteredAt(crop.Soaking)))
}

func (suite *CropRepositoryIntegrationTestSuite) TestGet_NonExistentUnit_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CropRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesHarvestedUnits() {
	ctx := context.Background()

	rec := suite.createTestRecipe("Broccoli")
	plantedAt := time.Date(2026, 2, 1, 6, 0, 0, 0, time.UTC)

	growing, err := crop.NewCropUnit(kernel.NewUUID(), kernel.NewUUID(), rec, plantedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, growing))

	harvested, err := crop.NewCropUnit(kernel.NewUUID(), kernel.NewUUID(), rec, plantedAt)
	suite.Require().NoError(err)
	at := plantedAt
	for _, stage := range []crop.Stage{crop.Germination, crop.Blackout, crop.Light, crop.Harvested} {
		at = at.Add(24 * time.Hour)
		suite.Require().NoError(harvested.Advance(stage, at))
	}
	suite.Require().NoError(suite.repository.Add(ctx, harvested))

	active, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.Equal(growing.ID(), active[0].ID())
}

func (suite *CropRepositoryIntegrationTestSuite) TestGetByOrder_ReturnsOnlyThatOrdersUnits() {
	ctx := context.Background()

	rec := suite.createTestRecipe("Kale")
	plantedAt := time.Date(2026, 2, 1, 6, 0, 0, 0, time.UTC)
	orderID := kernel.NewUUID()

	mine, err := crop.NewCropUnit(kernel.NewUUID(), orderID, rec, plantedAt)
	suite.Require().NoError(err)
	other, err := crop.NewCropUnit(kernel.NewUUID(), kernel.NewUUID(), rec, plantedAt)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, mine))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	units, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(units, 1)
	suite.Equal(mine.ID(), units[0].ID())
}

func (suite *CropRepositoryIntegrationTestSuite) createTestRecipe(variety string) *recipe.Recipe {
	ctx := context.Background()

	soak := suite.growDuration(0.5)
	germination := suite.growDuration(3)
	blackout := suite.growDuration(2)
	light := suite.growDuration(5)

	rec, err := recipe.NewRecipe(kernel.NewUUID(), variety, soak, germination, blackout, light, 350, 0)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.recipes.Add(ctx, rec))
	return rec
}

func (suite *CropRepositoryIntegrationTestSuite) growDuration(days float64) kernel.GrowDuration {
	d, err := kernel.NewGrowDuration(days)
	suite.Require().NoError(err)
	return d
}

func TestCropRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CropRepositoryIntegrationTestSuite))
}
