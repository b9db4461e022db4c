package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/engine"
	"github.com/talgya/task-tycoon/internal/entropy"
	"github.com/talgya/task-tycoon/internal/persistence"
)

func testApp(t *testing.T, store persistence.Store) *app {
	t.Helper()
	eng := engine.New(economy.DefaultTables(), entropy.NewSeeded(1), nil)
	return &app{store: store, proc: engine.NewProcessor(store, eng)}
}

func TestRecentDays(t *testing.T) {
	sqlite, err := persistence.OpenSQLite(filepath.Join(t.TempDir(), "tycoon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	for name, store := range map[string]persistence.Store{
		"memory": persistence.NewMemoryStore(),
		"sqlite": sqlite,
	} {
		t.Run(name, func(t *testing.T) {
			a := testApp(t, store)
			cmd := &cobra.Command{}
			cmd.SetContext(context.Background())

			for i := 0; i < 3; i++ {
				_, _, err := a.proc.EndDay(context.Background())
				require.NoError(t, err)
			}

			rows, err := recentDays(cmd, a, 2)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, 2, rows[0].Day, "newest first")
			assert.Equal(t, 1, rows[1].Day)
			assert.Equal(t, 125.04, rows[1].TotalCost)
			assert.InDelta(t, 754.96, rows[1].EndingCash, 1e-9)
			assert.False(t, rows[1].Bankrupt)

			_, err = recentDays(cmd, a, 0)
			assert.Error(t, err)
		})
	}
}
