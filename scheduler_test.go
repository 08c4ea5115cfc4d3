package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/ledger"
	"financetracker/ledger/memory"
)

func TestNewSnapshotScheduler(t *testing.T) {
	svc := ledger.NewService(memory.New())

	t.Run("rejects a malformed schedule", func(t *testing.T) {
		_, err := newSnapshotScheduler("every night", svc, time.Second, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("starts and stops", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := newSnapshotScheduler("55 23 * * *", svc, time.Second, newLogger("info", "json", &buf))
		require.NoError(t, err)

		s.Start()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)

		assert.Contains(t, buf.String(), "Snapshot scheduler started")
		assert.Contains(t, buf.String(), `"component":"scheduler"`)
	})
}

func TestScheduledSnapshotRecordsNetWorth(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	_, err := store.CreateAccount(ctx, ledger.Account{Name: "CASH", Balance: 4200})
	require.NoError(t, err)

	day := time.Date(2024, time.June, 15, 23, 55, 0, 0, time.UTC)
	svc := ledger.NewService(store, ledger.WithClock(ledger.FixedClock(day)))

	s, err := newSnapshotScheduler("55 23 * * *", svc, time.Second, zerolog.Nop())
	require.NoError(t, err)
	s.recordSnapshot()

	snapshots, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, ledger.NewDate(2024, 6, 15), snapshots[0].Date)
	assert.Equal(t, ledger.Money(4200), snapshots[0].TotalBalance)
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	l := cronLogger{log: newLogger("debug", "json", &buf)}

	l.Info("wake", "entry", 1)
	l.Error(errors.New("job panicked"), "panic", "entry", 1)

	assert.Contains(t, buf.String(), `"message":"wake"`)
	assert.Contains(t, buf.String(), `"error":"job panicked"`)
	assert.Contains(t, buf.String(), `"entry":1`)
}
