package counter

import (
	"math"
	"testing"

	"github.com/spetersoncode/statekit"
	"github.com/stretchr/testify/assert"
)

func TestTransitions(t *testing.T) {
	t.Run("incremented adds one", func(t *testing.T) {
		assert.Equal(t, State{Value: 1}, Reduce(State{}, Incremented()))
	})

	t.Run("decrement subtracts one", func(t *testing.T) {
		assert.Equal(t, State{Value: -1}, Reduce(State{}, Decrement()))
	})

	t.Run("scenario", func(t *testing.T) {
		s := State{}
		s = Reduce(s, Incremented())
		assert.Equal(t, 1, s.Value)
		s = Reduce(s, AmountAdded(5))
		assert.Equal(t, 6, s.Value)
		s = Reduce(s, Decrement())
		assert.Equal(t, 5, s.Value)
	})

	t.Run("unknown action leaves state unchanged", func(t *testing.T) {
		s := State{Value: 5}
		assert.Equal(t, s, Reduce(s, statekit.Action{Type: "unknown/noop"}))
		assert.Equal(t, s, Reduce(s, statekit.Action{Type: "counter/reset"}))
	})

	t.Run("previous state is not modified", func(t *testing.T) {
		prev := State{Value: 2}
		_ = Reduce(prev, AmountAdded(40))
		assert.Equal(t, 2, prev.Value)
	})
}

func TestAmountAdded(t *testing.T) {
	starts := []int{0, 1, -1, 42, -1000, math.MaxInt32}
	amounts := []int{0, 1, -1, 5, -5, 123456, -987654}

	for _, v := range starts {
		for _, n := range amounts {
			got := Reduce(State{Value: v}, AmountAdded(n))
			assert.Equal(t, v+n, got.Value, "start %d amount %d", v, n)
		}
	}
}

func TestIncrementDecrementNetZero(t *testing.T) {
	for _, v := range []int{0, 7, -7, math.MaxInt32, math.MinInt32} {
		s := State{Value: v}
		assert.Equal(t, s, Reduce(Reduce(s, Incremented()), Decrement()))
		assert.Equal(t, s, Reduce(Reduce(s, Decrement()), Incremented()))
	}
}

func TestOverflowWraps(t *testing.T) {
	got := Reduce(State{Value: math.MaxInt}, Incremented())
	assert.Equal(t, math.MinInt, got.Value)
}

func TestMalformedPayload(t *testing.T) {
	t.Run("float payload truncates", func(t *testing.T) {
		got := Reduce(State{Value: 1}, statekit.Action{Type: TypeAmountAdded, Payload: 2.5})
		assert.Equal(t, 3, got.Value)
	})

	t.Run("non-numeric payload adds nothing", func(t *testing.T) {
		got := Reduce(State{Value: 1}, statekit.Action{Type: TypeAmountAdded, Payload: "five"})
		assert.Equal(t, 1, got.Value)
	})
}

func TestSelect(t *testing.T) {
	st := statekit.NewState([]string{Name}, map[string]any{Name: State{Value: 9}})
	assert.Equal(t, State{Value: 9}, Select(st))
	assert.Equal(t, State{}, Select(statekit.NewState(nil, nil)))
}
