package tests

import (
	"testing"
	"time"

	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/amirphl/Yatagarasu/repository"
	testingutil "github.com/amirphl/Yatagarasu/testing"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortLinkVisitFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		linkRepo := repository.NewShortLinkRepository(testDB.DB)
		flow := businessflow.NewShortLinkVisitFlow(linkRepo)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		_, err = fixtures.CreateTestShortLink(customer.ID, "live0001", "https://example.com/target", utils.ToPtr(utils.UTCNowAdd(time.Hour)))
		require.NoError(t, err)
		_, err = fixtures.CreateTestShortLink(customer.ID, "dead0001", "https://example.com/expired", utils.ToPtr(utils.UTCNowAdd(-time.Hour)))
		require.NoError(t, err)

		t.Run("ResolvesAndCounts", func(t *testing.T) {
			target, err := flow.Visit(ctx, "live0001")
			require.NoError(t, err)
			assert.Equal(t, "https://example.com/target", target)

			// Exactly one click counted per visit
			link, err := linkRepo.ByUID(ctx, "live0001")
			require.NoError(t, err)
			require.NotNil(t, link)
			assert.Equal(t, int64(1), link.Clicks)

			_, err = flow.Visit(ctx, "live0001")
			require.NoError(t, err)
			link, err = linkRepo.ByUID(ctx, "live0001")
			require.NoError(t, err)
			assert.Equal(t, int64(2), link.Clicks)
		})

		t.Run("UnknownIdentifier", func(t *testing.T) {
			_, err := flow.Visit(ctx, "zzz999")
			require.Error(t, err)
			assert.True(t, businessflow.IsShortLinkNotFound(err))
		})

		t.Run("ExpiredIsDistinctFromUnknown", func(t *testing.T) {
			_, err := flow.Visit(ctx, "dead0001")
			require.Error(t, err)
			assert.True(t, businessflow.IsShortLinkExpired(err))
			assert.False(t, businessflow.IsShortLinkNotFound(err))

			// An expired visit never bumps the counter
			link, lookupErr := linkRepo.ByUID(ctx, "dead0001")
			require.NoError(t, lookupErr)
			require.NotNil(t, link)
			assert.Equal(t, int64(0), link.Clicks)
		})

		return nil
	})
	require.NoError(t, err)
}
