package runlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mcdpromo-backend/lib/sqliteutil"
	"mcdpromo-backend/lib/telemetry"
	"mcdpromo-backend/services/runlog/db"
)

func TestService(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "services/runlog")
	defer cleanup()

	database, err := sqliteutil.OpenDB(db.Schema, ":memory:")
	require.NoError(t, err)
	defer database.Close()
	service := NewService(database)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		entries, err := service.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 0)
	}

	base := time.Unix(1760000000, 0)
	err = service.Record(ctx, Entry{
		Time:       base,
		Mode:       "full",
		Success:    3,
		Failed:     1,
		Coupons:    3,
		Activities: 5,
	})
	require.NoError(t, err)

	err = service.Record(ctx, Entry{
		Time:    base.Add(time.Hour * 24),
		Mode:    "claim",
		Message: "暂无可领取的优惠券",
	})
	require.NoError(t, err)

	{
		entries, err := service.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		// newest first
		require.Equal(t, "claim", entries[0].Mode)
		require.Equal(t, "暂无可领取的优惠券", entries[0].Message)
		require.Equal(t, base.Add(time.Hour*24).Unix(), entries[0].Time.Unix())

		require.Equal(t, "full", entries[1].Mode)
		require.Equal(t, 3, entries[1].Success)
		require.Equal(t, 1, entries[1].Failed)
		require.Equal(t, 5, entries[1].Activities)
	}
	{
		entries, err := service.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "claim", entries[0].Mode)
	}
}
