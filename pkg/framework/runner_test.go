package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunnerWait(t *testing.T) {
	boom := errors.New("boom")
	runner := NewRunner()
	runner.Go(
		RunFunc(func(context.Context) error { return nil }),
		RunFunc(func(context.Context) error { return boom }),
		RunFunc(func(context.Context) error { return context.Canceled }),
	)
	err := runner.Wait()
	require.Error(t, err)
	errs, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Equal(t, []error{boom}, errs.Errors)
}

func TestRunnerWaitNoErrors(t *testing.T) {
	runner := NewRunner()
	runner.Go(RunFunc(func(context.Context) error { return nil }))
	require.NoError(t, runner.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())
	errs.Add(nil, errors.New("a"), nil, errors.New("b"))
	require.Len(t, errs.Errors, 2)
	require.Contains(t, errs.Error(), "a")
	require.Contains(t, errs.Error(), "b")
}
