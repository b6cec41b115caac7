package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func double(_ context.Context, n int) (int, error) {
	if n < 0 {
		return 0, errors.New("negative")
	}
	return n * 2, nil
}

func TestExecuteKeepsOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		inputs := make([]int, 50)
		for i := range inputs {
			inputs[i] = i
		}

		tasks := NewPool[int, int](workers, double).Execute(context.Background(), inputs)

		require.Len(t, tasks, len(inputs))
		for i, task := range tasks {
			assert.Equal(t, i, task.Input)
			assert.Equal(t, i*2, task.Result)
			assert.NoError(t, task.Err)
		}
	}
}

func TestExecuteReportsErrorsPerTask(t *testing.T) {
	tasks := NewPool[int, int](2, double).Execute(context.Background(), []int{1, -1, 3})

	assert.NoError(t, tasks[0].Err)
	assert.EqualError(t, tasks[1].Err, "negative")
	assert.Equal(t, 6, tasks[2].Result)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := NewPool[int, int](1, double).Execute(ctx, []int{1, 2, 3})

	for _, task := range tasks {
		assert.ErrorIs(t, task.Err, context.Canceled)
	}
}

func TestNewPoolClampsWorkers(t *testing.T) {
	assert.Equal(t, 1, NewPool[int, int](-3, double).Workers())
	assert.Equal(t, 3, NewPool[int, int](3, double).Workers())
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{"even", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"remainder", []int{1, 2, 3}, 2, [][]int{{1, 2}, {3}}},
		{"zero size", []int{1, 2}, 0, [][]int{{1}, {2}}},
		{"empty", nil, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Batch(tt.items, tt.size))
		})
	}
}
