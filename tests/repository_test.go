// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/repository"
	testingutil "github.com/amirphl/Yatagarasu/testing"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortLinkRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewShortLinkRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		t.Run("SaveAndByUID", func(t *testing.T) {
			link := &models.ShortLink{
				UID:        "abc12345",
				LongLink:   "https://example.com/some/long/path",
				CustomerID: &customer.ID,
			}
			require.NoError(t, repo.Save(ctx, link))
			assert.NotZero(t, link.ID)

			found, err := repo.ByUID(ctx, "abc12345")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "https://example.com/some/long/path", found.LongLink)
			assert.Equal(t, int64(0), found.Clicks)
		})

		t.Run("ByUIDNotFound", func(t *testing.T) {
			found, err := repo.ByUID(ctx, "zzz999")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("DuplicateUIDRejected", func(t *testing.T) {
			dup := &models.ShortLink{
				UID:        "abc12345",
				LongLink:   "https://example.com/other",
				CustomerID: &customer.ID,
			}
			err := repo.Save(ctx, dup)
			require.Error(t, err)
			assert.True(t, repository.IsDuplicateKeyError(err))
		})

		t.Run("IncrementClicksByUID", func(t *testing.T) {
			require.NoError(t, repo.IncrementClicksByUID(ctx, "abc12345"))
			require.NoError(t, repo.IncrementClicksByUID(ctx, "abc12345"))

			found, err := repo.ByUID(ctx, "abc12345")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, int64(2), found.Clicks)
		})

		t.Run("IncrementClicksUnknownUID", func(t *testing.T) {
			err := repo.IncrementClicksByUID(ctx, "missing1")
			assert.Error(t, err)
		})

		t.Run("ListByCustomer", func(t *testing.T) {
			_, err := fixtures.CreateTestShortLink(customer.ID, "second01", "https://example.com/second", nil)
			require.NoError(t, err)

			links, err := repo.ListByCustomer(ctx, customer.ID)
			require.NoError(t, err)
			assert.Len(t, links, 2)
		})

		t.Run("ListByCustomerEmpty", func(t *testing.T) {
			other, err := fixtures.CreateTestCustomer()
			require.NoError(t, err)

			links, err := repo.ListByCustomer(ctx, other.ID)
			require.NoError(t, err)
			assert.Empty(t, links)
		})

		t.Run("DeleteByUID", func(t *testing.T) {
			require.NoError(t, repo.DeleteByUID(ctx, "second01"))

			found, err := repo.ByUID(ctx, "second01")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestShortLinkClickRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewShortLinkClickRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndListByUID", func(t *testing.T) {
			click := &models.ShortLinkClick{
				UID:        "abc12345",
				Browser:    "chrome",
				OS:         "windows",
				DeviceType: utils.DeviceDesktop,
			}
			require.NoError(t, repo.Save(ctx, click))

			_, err := fixtures.CreateTestClick("abc12345", "firefox", "linux", utils.DeviceDesktop)
			require.NoError(t, err)

			clicks, err := repo.ListByUID(ctx, "abc12345")
			require.NoError(t, err)
			require.Len(t, clicks, 2)
			browsers := []string{clicks[0].Browser, clicks[1].Browser}
			assert.ElementsMatch(t, []string{"chrome", "firefox"}, browsers)
		})

		t.Run("ListByUIDEmpty", func(t *testing.T) {
			clicks, err := repo.ListByUID(ctx, "unseen99")
			require.NoError(t, err)
			assert.Empty(t, clicks)
		})

		t.Run("DeleteByUID", func(t *testing.T) {
			require.NoError(t, repo.DeleteByUID(ctx, "abc12345"))

			clicks, err := repo.ListByUID(ctx, "abc12345")
			require.NoError(t, err)
			assert.Empty(t, clicks)
		})

		t.Run("DeleteByUIDNoRows", func(t *testing.T) {
			// Deleting clicks for an identifier without any is not an error
			assert.NoError(t, repo.DeleteByUID(ctx, "unseen99"))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCustomerRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewCustomerRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		customer, err := fixtures.CreateTestCustomer()
		require.NoError(t, err)

		t.Run("ByEmail", func(t *testing.T) {
			found, err := repo.ByEmail(ctx, customer.Email)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, customer.ID, found.ID)
		})

		t.Run("ByEmailNotFound", func(t *testing.T) {
			found, err := repo.ByEmail(ctx, "nobody@example.com")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ByUUID", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, customer.UUID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, customer.Email, found.Email)
		})

		t.Run("UpdateLastLogin", func(t *testing.T) {
			require.NoError(t, repo.UpdateLastLogin(ctx, customer.ID))

			found, err := repo.ByID(ctx, customer.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.NotNil(t, found.LastLoginAt)
		})

		t.Run("CountShortLinks", func(t *testing.T) {
			count, err := repo.CountShortLinks(ctx, customer.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)

			_, err = fixtures.CreateTestShortLink(customer.ID, "count001", "https://example.com", nil)
			require.NoError(t, err)

			count, err = repo.CountShortLinks(ctx, customer.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		return nil
	})
	require.NoError(t, err)
}
