package tests

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/app/workers"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/amirphl/Yatagarasu/repository"
	testingutil "github.com/amirphl/Yatagarasu/testing"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chromeWindowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	safariIPhoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	safariIPadUA    = "Mozilla/5.0 (iPad; CPU OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
)

func TestClassifyUserAgent(t *testing.T) {
	t.Run("Desktop", func(t *testing.T) {
		browser, os, device, err := businessflow.ClassifyUserAgent(chromeWindowsUA)
		require.NoError(t, err)
		assert.Equal(t, "chrome", browser)
		assert.Equal(t, "windows", os)
		assert.Equal(t, utils.DeviceDesktop, device)
	})

	t.Run("Mobile", func(t *testing.T) {
		browser, os, device, err := businessflow.ClassifyUserAgent(safariIPhoneUA)
		require.NoError(t, err)
		assert.Equal(t, "safari", browser)
		assert.Equal(t, "ios", os)
		assert.Equal(t, utils.DeviceMobile, device)
	})

	t.Run("Tablet", func(t *testing.T) {
		_, _, device, err := businessflow.ClassifyUserAgent(safariIPadUA)
		require.NoError(t, err)
		assert.Equal(t, utils.DeviceTablet, device)
	})

	t.Run("UnknownDeviceFailsRecording", func(t *testing.T) {
		_, _, _, err := businessflow.ClassifyUserAgent("curl/8.5.0")
		require.Error(t, err)
		assert.True(t, businessflow.IsUnknownDeviceType(err))
	})

	t.Run("EmptyUserAgentFailsRecording", func(t *testing.T) {
		_, _, _, err := businessflow.ClassifyUserAgent("")
		require.Error(t, err)
		assert.True(t, businessflow.IsUnknownDeviceType(err))
	})
}

func TestClickRecorder(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		clickRepo := repository.NewShortLinkClickRepository(testDB.DB)
		recorder := businessflow.NewClickRecorder(clickRepo)
		ctx := testingutil.CreateTestContext()

		t.Run("PersistsClassifiedClick", func(t *testing.T) {
			err := recorder.Record(ctx, businessflow.ClickEvent{
				UID:       "rec00001",
				UserAgent: safariIPhoneUA,
				IPAddress: "203.0.113.7",
				Timestamp: utils.UTCNow(),
			})
			require.NoError(t, err)

			clicks, err := clickRepo.ListByUID(ctx, "rec00001")
			require.NoError(t, err)
			require.Len(t, clicks, 1)
			assert.Equal(t, "safari", clicks[0].Browser)
			assert.Equal(t, "ios", clicks[0].OS)
			assert.Equal(t, utils.DeviceMobile, clicks[0].DeviceType)
			require.NotNil(t, clicks[0].IP)
			assert.Equal(t, "203.0.113.7", *clicks[0].IP)
		})

		t.Run("RejectsUnclassifiableDevice", func(t *testing.T) {
			err := recorder.Record(ctx, businessflow.ClickEvent{
				UID:       "rec00002",
				UserAgent: "curl/8.5.0",
				Timestamp: utils.UTCNow(),
			})
			require.Error(t, err)

			clicks, listErr := clickRepo.ListByUID(ctx, "rec00002")
			require.NoError(t, listErr)
			assert.Empty(t, clicks)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestClickWorkers(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		clickRepo := repository.NewShortLinkClickRepository(testDB.DB)
		recorder := businessflow.NewClickRecorder(clickRepo)
		ctx := testingutil.CreateTestContext()

		t.Run("DrainsQueueOnStop", func(t *testing.T) {
			events := make(chan businessflow.ClickEvent, 16)
			stop := workers.StartClickWorkers(2, events, recorder)

			for i := 0; i < 5; i++ {
				workers.Enqueue(events, businessflow.ClickEvent{
					UID:       "pool0001",
					UserAgent: chromeWindowsUA,
					IPAddress: "203.0.113.9",
					Timestamp: utils.UTCNow(),
				})
			}

			// Stop closes the channel and waits for the workers to drain it
			stop()

			clicks, err := clickRepo.ListByUID(ctx, "pool0001")
			require.NoError(t, err)
			assert.Len(t, clicks, 5)
		})

		t.Run("EnqueueNeverBlocks", func(t *testing.T) {
			// No workers attached, buffer of one: the second event must be
			// dropped rather than stall the caller.
			events := make(chan businessflow.ClickEvent, 1)

			done := make(chan struct{})
			go func() {
				workers.Enqueue(events, businessflow.ClickEvent{UID: "full0001"})
				workers.Enqueue(events, businessflow.ClickEvent{UID: "full0002"})
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("Enqueue blocked on a full buffer")
			}

			assert.Len(t, events, 1)
		})

		return nil
	})
	require.NoError(t, err)
}
