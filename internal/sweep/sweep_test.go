package sweep

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivers2strat/internal/strat"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestGridExpandsProductWithDistinctSeeds(t *testing.T) {
	grid := Grid([]float64{500, 1000}, []float64{0.001, 0.002, 0.003}, []float64{300, 600}, 10)
	require.Len(t, grid, 12)
	seeds := map[int64]bool{}
	for _, sc := range grid {
		seeds[sc.Seed] = true
	}
	assert.Len(t, seeds, 12)
	assert.Equal(t, Scenario{Qw: 500, Sig: 0.001, Ta: 300, Seed: 10}, grid[0])
	assert.Equal(t, Scenario{Qw: 1000, Sig: 0.003, Ta: 600, Seed: 21}, grid[11])
}

func TestRunSummarisesRecord(t *testing.T) {
	sc := Scenario{Qw: 1000, Sig: 0.002, Ta: 300, Seed: 3}
	res, err := Run(context.Background(), strat.DefaultConfig(), sc, 200, quiet())
	require.NoError(t, err)
	assert.Equal(t, sc, res.Scenario)
	assert.Equal(t, 200, res.Ticks)
	assert.Equal(t, 20000.0, res.Years)
	assert.Equal(t, 50, res.Avulsions, "three timesteps and a freeze per avulsion at Ta=300")
	assert.Equal(t, res.Avulsions, res.Bodies, "40 m of subsidence stays inside the window")
	assert.Greater(t, res.Proportion, 0.0)
	assert.LessOrEqual(t, res.Proportion, 1.0)
	assert.Greater(t, res.MeanThickness, 0.0)

	again, err := Run(context.Background(), strat.DefaultConfig(), sc, 200, quiet())
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestRunRejectsInvalidScenario(t *testing.T) {
	_, err := Run(context.Background(), strat.DefaultConfig(), Scenario{Qw: 0, Sig: 0.001, Ta: 300}, 10, quiet())
	assert.ErrorIs(t, err, strat.ErrConfiguration)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, strat.DefaultConfig(), Scenario{Qw: 1000, Sig: 0.001, Ta: 300}, 10, quiet())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAllMatchesSequentialRuns(t *testing.T) {
	base := strat.DefaultConfig()
	grid := Grid([]float64{400, 2000}, []float64{0.001, 0.004}, []float64{200}, 1)
	results, err := RunAll(context.Background(), base, grid, 60, 3, quiet())
	require.NoError(t, err)
	require.Len(t, results, len(grid))

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Proportion, results[i].Proportion)
	}
	bySeed := map[int64]Result{}
	for _, r := range results {
		bySeed[r.Seed] = r
	}
	for _, sc := range grid {
		want, err := Run(context.Background(), base, sc, 60, quiet())
		require.NoError(t, err)
		assert.Equal(t, want, bySeed[sc.Seed])
	}
}

func TestRunAllStopsOnFailure(t *testing.T) {
	grid := []Scenario{{Qw: 1000, Sig: 0.001, Ta: 300}, {Qw: -5, Sig: 0.001, Ta: 300}}
	_, err := RunAll(context.Background(), strat.DefaultConfig(), grid, 20, 0, quiet())
	assert.ErrorIs(t, err, strat.ErrConfiguration)
}

func TestSummariseEmptyRecord(t *testing.T) {
	rec, err := strat.NewRecord(strat.DefaultConfig(), strat.WithLogger(quiet()))
	require.NoError(t, err)
	res := Summarise(rec)
	assert.Zero(t, res.Bodies)
	assert.Zero(t, res.Proportion)
	assert.Zero(t, res.MeanThickness)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []Result{{
		Scenario:      Scenario{Qw: 1500, Sig: 0.0025, Ta: 400, Seed: 4},
		Ticks:         300,
		Years:         30000,
		Avulsions:     1234,
		Bodies:        60,
		Proportion:    0.4321,
		MeanThickness: 3.456,
	}})
	require.NoError(t, err)
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "proportion")
	for _, want := range []string{"1,500", "2.50", "30,000", "1,234", "43.2%", "3.46"} {
		assert.Contains(t, lines[1], want)
	}
}
