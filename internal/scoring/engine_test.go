package scoring

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriq/kabuscan/internal/contracts"
	"github.com/moriq/kabuscan/internal/strategyconfig"
	"github.com/moriq/kabuscan/pkg/logger"
)

func newTestEngine() *Engine {
	return NewEngine(strategyconfig.Default(), logger.NewNop())
}

// flatFixture is n bars pinned at close with identical volume
func flatFixture(n int, close float64, volume int64) contracts.PriceSeries {
	series := make(contracts.PriceSeries, n)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range series {
		series[i] = contracts.PriceBar{
			Date: day.AddDate(0, 0, i), Open: close, High: close, Low: close, Close: close, Volume: volume,
		}
	}
	return series
}

// uptrendFixture rises from 900 in a +5/-2 sawtooth over 90 bars, which
// keeps RSI in the continuation band instead of pegged at 100
func uptrendFixture() contracts.PriceSeries {
	series := make(contracts.PriceSeries, 90)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	close := 900.0
	for i := range series {
		if i > 0 {
			if i%2 == 1 {
				close += 5
			} else {
				close -= 2
			}
		}
		series[i] = contracts.PriceBar{
			Date: day.AddDate(0, 0, i), Open: close, High: close + 3, Low: close - 3, Close: close, Volume: 1000,
		}
	}
	return series
}

func TestScore_FlatSeriesScoresNothing(t *testing.T) {
	e := newTestEngine()

	result, err := e.Score("7203", flatFixture(100, 1000, 50000), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	for category, pts := range result.Breakdown {
		assert.Zero(t, pts, "category %s", category)
	}
	assert.Empty(t, result.Tags)
}

func TestScore_UptrendScoresHigh(t *testing.T) {
	e := newTestEngine()

	result, err := e.Score("7203", uptrendFixture(), nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Score, 60)
	assert.LessOrEqual(t, result.Score, 100)

	// Trend hits its cap: price above MA25, perfect order, rising slope
	assert.Equal(t, 30, result.Breakdown[contracts.CategoryTrend])
	// RSI of the sawtooth sits inside the 50-75 continuation band
	assert.Equal(t, 20, result.Breakdown[contracts.CategoryMomentum])
	assert.InDelta(t, 71.43, result.RSI, 0.1)
	// Flat volume earns nothing
	assert.Zero(t, result.Breakdown[contracts.CategoryVolume])
	// No fundamentals supplied, neutral
	assert.Zero(t, result.Breakdown[contracts.CategoryFundamentals])

	assert.Positive(t, result.RiskReward)
	assert.NotEmpty(t, result.Narrative)
}

func TestScore_PanicSellingPenalized(t *testing.T) {
	e := newTestEngine()

	series := uptrendFixture()
	last := series[len(series)-1]
	crash := last.Close * 0.96
	series = append(series, contracts.PriceBar{
		Date: last.Date.AddDate(0, 0, 1), Open: last.Close, High: last.Close,
		Low: crash, Close: crash, Volume: 5000,
	})

	result, err := e.Score("7203", series, nil)
	require.NoError(t, err)

	assert.Equal(t, -5, result.Breakdown[contracts.CategoryVolume])
	assert.Contains(t, result.Tags, "パニック売り")
	assert.NotContains(t, result.Tags, "出来高急増")
}

func TestScore_VolumeSpikeRewarded(t *testing.T) {
	e := newTestEngine()

	// Same spike without the hard down day is a participation bonus
	series := uptrendFixture()
	series[len(series)-1].Volume = 5000

	result, err := e.Score("7203", series, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, result.Breakdown[contracts.CategoryVolume])
	assert.Contains(t, result.Tags, "出来高急増")
}

func TestScore_Fundamentals(t *testing.T) {
	e := newTestEngine()

	t.Run("cheap multiples add points", func(t *testing.T) {
		pbr, per := 0.9, 12.0
		fund := &contracts.Fundamentals{PriceToBook: &pbr, TrailingPE: &per}

		result, err := e.Score("8306", uptrendFixture(), fund)
		require.NoError(t, err)

		assert.Equal(t, 10, result.Breakdown[contracts.CategoryFundamentals])
		assert.Equal(t, 0.9, result.PBR)
		assert.Equal(t, 12.0, result.PER)
		assert.Contains(t, result.Tags, "割安")
	})

	t.Run("expensive multiples add nothing", func(t *testing.T) {
		pbr, per := 3.0, 40.0
		fund := &contracts.Fundamentals{PriceToBook: &pbr, TrailingPE: &per}

		result, err := e.Score("6857", uptrendFixture(), fund)
		require.NoError(t, err)

		assert.Zero(t, result.Breakdown[contracts.CategoryFundamentals])
	})

	t.Run("absent fundamentals are neutral", func(t *testing.T) {
		withNil, err := e.Score("7203", uptrendFixture(), nil)
		require.NoError(t, err)
		withEmpty, err := e.Score("7203", uptrendFixture(), &contracts.Fundamentals{})
		require.NoError(t, err)

		assert.Zero(t, withNil.Breakdown[contracts.CategoryFundamentals])
		assert.Equal(t, withNil.Score, withEmpty.Score)
	})
}

func TestScore_MissingData(t *testing.T) {
	e := newTestEngine()

	_, err := e.Score("7203", nil, nil)
	assert.ErrorIs(t, err, contracts.ErrEmptySeries)

	_, err = e.Score("7203", flatFixture(10, 1000, 100), nil)
	assert.ErrorIs(t, err, contracts.ErrInsufficientData)
}

func TestScore_CorruptBarRejected(t *testing.T) {
	e := newTestEngine()

	series := uptrendFixture()
	series[40].High = series[40].Low - 50

	_, err := e.Score("7203", series, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, contracts.ErrEmptySeries)
	assert.NotErrorIs(t, err, contracts.ErrInsufficientData)
}

func TestScore_Deterministic(t *testing.T) {
	e := newTestEngine()
	series := uptrendFixture()

	first, err := e.Score("7203", series, nil)
	require.NoError(t, err)
	second, err := e.Score("7203", series, nil)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("scoring the same inputs twice must be bit-identical")
	}
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	e := newTestEngine()

	fixtures := map[string]contracts.PriceSeries{
		"flat":    flatFixture(100, 1000, 50000),
		"uptrend": uptrendFixture(),
		"minimum": flatFixture(26, 500, 100),
	}

	// A hard crash series: every category that can go negative does
	crash := uptrendFixture()
	last := crash[len(crash)-1]
	bottom := last.Close * 0.9
	crash = append(crash, contracts.PriceBar{
		Date: last.Date.AddDate(0, 0, 1), Open: last.Close, High: last.Close,
		Low: bottom, Close: bottom, Volume: 20000,
	})
	fixtures["crash"] = crash

	for name, series := range fixtures {
		result, err := e.Score("7203", series, nil)
		require.NoError(t, err, name)
		assert.GreaterOrEqual(t, result.Score, 0, name)
		assert.LessOrEqual(t, result.Score, 100, name)
	}
}

func TestPlan(t *testing.T) {
	e := newTestEngine()

	plan, err := e.Plan("7203", uptrendFixture(), nil)
	require.NoError(t, err)

	assert.Equal(t, "7203", plan.Code)
	assert.Equal(t, contracts.PolicyMomentumBuy, plan.Policy)
	assert.Less(t, plan.StopLoss, plan.EntryPrice)
	assert.Less(t, plan.EntryPrice, plan.TargetProfit)
	assert.NotEmpty(t, plan.Narrative)

	_, err = e.Plan("7203", nil, nil)
	assert.ErrorIs(t, err, contracts.ErrEmptySeries)
}

func TestNarrativeContents(t *testing.T) {
	e := newTestEngine()

	result, err := e.Score("7203", uptrendFixture(), nil)
	require.NoError(t, err)

	assert.Contains(t, result.Narrative, "【総合評価】")
	assert.Contains(t, result.Narrative, "【売買判断】")
	assert.Contains(t, result.Narrative, result.Verdict())
}
