package tests

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/repository"
	testingutil "github.com/amirphl/Yatagarasu/testing"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShortLinkFlow(testDB *testingutil.TestDB) businessflow.ShortLinkFlow {
	linkRepo := repository.NewShortLinkRepository(testDB.DB)
	clickRepo := repository.NewShortLinkClickRepository(testDB.DB)
	return businessflow.NewShortLinkFlow(linkRepo, clickRepo, testDB.DB, "http://localhost:8080", utils.DefaultLinkTTL, utils.DefaultUIDLength)
}

func TestShortLinkFlowCreate(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newShortLinkFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		t.Run("GeneratedIdentifier", func(t *testing.T) {
			before := utils.UTCNow()
			result, err := flow.Create(ctx, customer.ID, &dto.CreateShortLinkRequest{
				LongLink: "https://example.com/articles/42",
			})
			require.NoError(t, err)
			assert.Len(t, result.UID, utils.DefaultUIDLength)
			assert.Equal(t, "https://example.com/articles/42", result.LongLink)
			assert.Equal(t, "http://localhost:8080/"+result.UID, result.ShortLink)
			assert.Equal(t, int64(0), result.Clicks)

			// Default lifetime is three days from creation
			expiresAt, err := time.Parse(time.RFC3339, result.ExpiresAt)
			require.NoError(t, err)
			assert.WithinDuration(t, before.Add(utils.DefaultLinkTTL), expiresAt, 5*time.Second)
		})

		t.Run("CustomAlias", func(t *testing.T) {
			result, err := flow.Create(ctx, customer.ID, &dto.CreateShortLinkRequest{
				LongLink:    "https://example.com/landing",
				CustomAlias: "promo",
			})
			require.NoError(t, err)
			assert.Equal(t, "promo", result.UID)
		})

		t.Run("AliasConflict", func(t *testing.T) {
			_, err := flow.Create(ctx, customer.ID, &dto.CreateShortLinkRequest{
				LongLink:    "https://example.com/something-else",
				CustomAlias: "promo",
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsAliasTaken(err))
		})

		t.Run("ExplicitExpiry", func(t *testing.T) {
			expiry := utils.UTCNowAdd(time.Hour).Format(time.RFC3339)
			result, err := flow.Create(ctx, customer.ID, &dto.CreateShortLinkRequest{
				LongLink:  "https://example.com/flash-sale",
				ExpiresAt: expiry,
			})
			require.NoError(t, err)
			assert.Equal(t, expiry, result.ExpiresAt)
		})

		t.Run("InvalidExpiry", func(t *testing.T) {
			_, err := flow.Create(ctx, customer.ID, &dto.CreateShortLinkRequest{
				LongLink:  "https://example.com/bad-date",
				ExpiresAt: "tomorrow",
			})
			require.Error(t, err)
			berr, ok := err.(*businessflow.BusinessError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", berr.Code)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestShortLinkFlowList(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newShortLinkFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		t.Run("EmptyIsSuccess", func(t *testing.T) {
			result, err := flow.List(ctx, customer.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, result.Total)
			assert.Empty(t, result.Links)
		})

		t.Run("OwnLinksOnly", func(t *testing.T) {
			other, err := fixtures.CreateTestCustomer()
			require.NoError(t, err)

			_, err = fixtures.CreateTestShortLink(customer.ID, "mine0001", "https://example.com/mine", nil)
			require.NoError(t, err)
			_, err = fixtures.CreateTestShortLink(other.ID, "their001", "https://example.com/theirs", nil)
			require.NoError(t, err)

			result, err := flow.List(ctx, customer.ID)
			require.NoError(t, err)
			require.Equal(t, 1, result.Total)
			assert.Equal(t, "mine0001", result.Links[0].UID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestShortLinkFlowDelete(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newShortLinkFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()
		clickRepo := repository.NewShortLinkClickRepository(testDB.DB)
		linkRepo := repository.NewShortLinkRepository(testDB.DB)

		owner, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)
		intruder, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		_, err = fixtures.CreateTestShortLink(owner.ID, "doomed01", "https://example.com/doomed", nil)
		require.NoError(t, err)
		_, err = fixtures.CreateTestClick("doomed01", "chrome", "windows", utils.DeviceDesktop)
		require.NoError(t, err)
		_, err = fixtures.CreateTestClick("doomed01", "safari", "ios", utils.DeviceMobile)
		require.NoError(t, err)

		t.Run("NotOwner", func(t *testing.T) {
			err := flow.Delete(ctx, intruder.ID, "doomed01")
			require.Error(t, err)
			assert.True(t, businessflow.IsNotLinkOwner(err))

			// Nothing was touched
			link, err := linkRepo.ByUID(ctx, "doomed01")
			require.NoError(t, err)
			assert.NotNil(t, link)
			clicks, err := clickRepo.ListByUID(ctx, "doomed01")
			require.NoError(t, err)
			assert.Len(t, clicks, 2)
		})

		t.Run("NotFound", func(t *testing.T) {
			err := flow.Delete(ctx, owner.ID, "zzz999")
			require.Error(t, err)
			assert.True(t, businessflow.IsShortLinkNotFound(err))
		})

		t.Run("CascadesOverClicks", func(t *testing.T) {
			require.NoError(t, flow.Delete(ctx, owner.ID, "doomed01"))

			link, err := linkRepo.ByUID(ctx, "doomed01")
			require.NoError(t, err)
			assert.Nil(t, link)

			clicks, err := clickRepo.ListByUID(ctx, "doomed01")
			require.NoError(t, err)
			assert.Empty(t, clicks)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestShortLinkFlowClickInfo(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newShortLinkFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		_, err = fixtures.CreateTestShortLink(customer.ID, "stats001", "https://example.com/stats", nil)
		require.NoError(t, err)

		t.Run("UnknownLink", func(t *testing.T) {
			_, err := flow.ClickInfo(ctx, "zzz999")
			require.Error(t, err)
			assert.True(t, businessflow.IsShortLinkNotFound(err))
		})

		t.Run("NoClicksYet", func(t *testing.T) {
			_, err := flow.ClickInfo(ctx, "stats001")
			require.Error(t, err)
			assert.True(t, businessflow.IsNoClicksRecorded(err))
		})

		t.Run("WithClicks", func(t *testing.T) {
			_, err = fixtures.CreateTestClick("stats001", "firefox", "linux", utils.DeviceDesktop)
			require.NoError(t, err)

			result, err := flow.ClickInfo(ctx, "stats001")
			require.NoError(t, err)
			assert.Equal(t, "stats001", result.Link.UID)
			require.Len(t, result.Clicks, 1)
			assert.Equal(t, "firefox", result.Clicks[0].Browser)
			assert.Equal(t, utils.DeviceDesktop, result.Clicks[0].DeviceType)
		})

		return nil
	})
	require.NoError(t, err)
}

// Seeded model sanity for the expiry helper used by the visit flow.
func TestShortLinkIsExpiredAt(t *testing.T) {
	now := utils.UTCNow()

	fresh := models.ShortLink{ExpiresAt: utils.ToPtr(now.Add(time.Hour))}
	assert.False(t, fresh.IsExpiredAt(now))

	stale := models.ShortLink{ExpiresAt: utils.ToPtr(now.Add(-time.Hour))}
	assert.True(t, stale.IsExpiredAt(now))

	forever := models.ShortLink{}
	assert.False(t, forever.IsExpiredAt(now))
}
