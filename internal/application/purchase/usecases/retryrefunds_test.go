package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatshare-inc/seatshare/internal/domain/grant"
)

func seedRefundTask(t *testing.T, repo *fakeRefundTaskRepo, ref string, amount int64) *grant.RefundTask {
	t.Helper()
	task, err := grant.NewRefundTask(ref, amount, "pool filled after payment")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestRetryRefunds_Succeeds(t *testing.T) {
	repo := newFakeRefundTaskRepo()
	task := seedRefundTask(t, repo, "pay_r1", 500)

	gateway := &fakeGateway{}
	uc := NewRetryRefundsUseCase(repo, gateway, 3, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, grant.RefundStatusSucceeded, task.Status())
	assert.Equal(t, 1, gateway.calls)
}

func TestRetryRefunds_FailureSchedulesBackoff(t *testing.T) {
	repo := newFakeRefundTaskRepo()
	task := seedRefundTask(t, repo, "pay_r1", 500)

	gateway := &fakeGateway{failures: 1}
	uc := NewRetryRefundsUseCase(repo, gateway, 3, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, grant.RefundStatusPending, task.Status())
	assert.Equal(t, 1, task.Attempts())

	// Backed off into the future, so an immediate second run skips it.
	count, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRetryRefunds_ExhaustionMarksFailed(t *testing.T) {
	repo := newFakeRefundTaskRepo()
	task := seedRefundTask(t, repo, "pay_r1", 500)

	gateway := &fakeGateway{failures: 100}
	uc := NewRetryRefundsUseCase(repo, gateway, 1, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, grant.RefundStatusFailed, task.Status())

	// Failed tasks are never retried.
	count, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRetryRefunds_SucceededNotRetried(t *testing.T) {
	repo := newFakeRefundTaskRepo()
	task := seedRefundTask(t, repo, "pay_r1", 500)
	task.MarkSucceeded()

	gateway := &fakeGateway{}
	uc := NewRetryRefundsUseCase(repo, gateway, 3, testLogger())

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, gateway.calls)
}
