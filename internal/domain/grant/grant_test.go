package grant

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/seatshare-inc/seatshare/internal/domain/catalog/valueobjects"
)

func testCredential(t *testing.T) vo.AccessCredential {
	t.Helper()
	cred, err := vo.NewAccountCredential("share@example.com", "s3cret")
	require.NoError(t, err)
	return cred
}

func TestNewGrant_ValidInput(t *testing.T) {
	start := time.Now().UTC()
	expiry := start.AddDate(0, 0, 7)

	g, err := NewGrant(10, 20, 30, start, expiry, 7, 233, false, "pay_abc123", testCredential(t))

	require.NoError(t, err)
	require.NotNil(t, g)
	assert.True(t, strings.HasPrefix(g.SID(), "grant_"))
	assert.Equal(t, uint(10), g.UserID())
	assert.Equal(t, uint(20), g.PoolID())
	assert.Equal(t, uint(30), g.ServiceID())
	assert.Equal(t, 7, g.DurationDays())
	assert.Equal(t, int64(233), g.AmountCents())
	assert.False(t, g.IsRecurring())
	assert.Equal(t, "pay_abc123", g.PaymentReference())
	assert.True(t, g.IsActive())
	assert.Equal(t, vo.AccessTypeAccount, g.Credential().AccessType())
}

func TestNewGrant_Invalid(t *testing.T) {
	cred := testCredential(t)
	start := time.Now().UTC()
	expiry := start.AddDate(0, 0, 7)

	tests := []struct {
		name string
		fn   func() (*Grant, error)
	}{
		{"zero user", func() (*Grant, error) {
			return NewGrant(0, 20, 30, start, expiry, 7, 233, false, "pay_a", cred)
		}},
		{"zero pool", func() (*Grant, error) {
			return NewGrant(10, 0, 30, start, expiry, 7, 233, false, "pay_a", cred)
		}},
		{"empty payment reference", func() (*Grant, error) {
			return NewGrant(10, 20, 30, start, expiry, 7, 233, false, "", cred)
		}},
		{"expiry before start", func() (*Grant, error) {
			return NewGrant(10, 20, 30, expiry, start, 7, 233, false, "pay_a", cred)
		}},
		{"expiry equals start", func() (*Grant, error) {
			return NewGrant(10, 20, 30, start, start, 7, 233, false, "pay_a", cred)
		}},
		{"zero amount", func() (*Grant, error) {
			return NewGrant(10, 20, 30, start, expiry, 7, 0, false, "pay_a", cred)
		}},
		{"zero credential", func() (*Grant, error) {
			return NewGrant(10, 20, 30, start, expiry, 7, 233, false, "pay_a", vo.AccessCredential{})
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := tc.fn()
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}
}

func TestGrant_MarkExpired_Idempotent(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, -10)
	expiry := start.AddDate(0, 0, 7)
	g, err := NewGrant(10, 20, 30, start, expiry, 7, 233, false, "pay_abc", testCredential(t))
	require.NoError(t, err)

	assert.True(t, g.IsExpired(time.Now().UTC()))

	g.MarkExpired()
	assert.False(t, g.IsActive())

	g.MarkExpired()
	assert.False(t, g.IsActive())
}

func TestRefundTask_Lifecycle(t *testing.T) {
	task, err := NewRefundTask("pay_abc", 500, "pool filled after payment")
	require.NoError(t, err)
	assert.Equal(t, RefundStatusPending, task.Status())
	assert.True(t, task.IsDue(time.Now().UTC()))

	task.RecordFailure(errors.New("gateway timeout"), 3)
	assert.Equal(t, RefundStatusPending, task.Status())
	assert.Equal(t, 1, task.Attempts())
	assert.Contains(t, task.LastError(), "gateway timeout")
	assert.False(t, task.IsDue(time.Now().UTC()), "backoff must delay the next attempt")

	task.RecordFailure(errors.New("gateway timeout"), 3)
	task.RecordFailure(errors.New("gateway timeout"), 3)
	assert.Equal(t, RefundStatusFailed, task.Status())
}

func TestRefundTask_MarkSucceeded(t *testing.T) {
	task, err := NewRefundTask("pay_abc", 500, "pool filled after payment")
	require.NoError(t, err)

	task.MarkSucceeded()
	assert.Equal(t, RefundStatusSucceeded, task.Status())
	assert.False(t, task.IsDue(time.Now().UTC()))
}

func TestNewRefundTask_Invalid(t *testing.T) {
	_, err := NewRefundTask("", 500, "reason")
	assert.Error(t, err)

	_, err = NewRefundTask("pay_abc", 0, "reason")
	assert.Error(t, err)
}
