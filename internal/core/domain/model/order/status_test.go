package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status order.Status
		want   string
	}{
		{order.Unknown, "unknown"},
		{order.Created, "created"},
		{order.Accepted, "accepted"},
		{order.Preparing, "preparing"},
		{order.PickedUp, "picked_up"},
		{order.Delivered, "delivered"},
		{order.Cancelled, "cancelled"},
		{order.Status(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Created, order.Accepted, order.Preparing,
			order.PickedUp, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")
		assert.Error(t, err)

		_, err = order.StatusFromString("")
		assert.Error(t, err)

		_, err = order.StatusFromString("unknown")
		assert.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Created, order.Accepted, order.Preparing,
			order.PickedUp, order.Delivered, order.Cancelled,
		} {
			assert.NoError(t, status.Validate())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.Status(-1).Validate())
		assert.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.Accepted.IsTerminal())
	assert.False(t, order.Preparing.IsTerminal())
	assert.False(t, order.PickedUp.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, order.Accepted.IsActive())
	assert.True(t, order.Preparing.IsActive())
	assert.True(t, order.PickedUp.IsActive())

	assert.False(t, order.Created.IsActive())
	assert.False(t, order.Delivered.IsActive())
	assert.False(t, order.Cancelled.IsActive())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		wantErr bool
	}{
		{"created to accepted", order.Created, order.Accepted, false},
		{"created to preparing skips a step", order.Created, order.Preparing, false},
		{"created to delivered skips steps", order.Created, order.Delivered, false},
		{"accepted to preparing", order.Accepted, order.Preparing, false},
		{"preparing to picked_up", order.Preparing, order.PickedUp, false},
		{"picked_up to delivered", order.PickedUp, order.Delivered, false},

		{"created to cancelled", order.Created, order.Cancelled, false},
		{"accepted to cancelled", order.Accepted, order.Cancelled, false},
		{"preparing to cancelled", order.Preparing, order.Cancelled, false},
		{"picked_up to cancelled", order.PickedUp, order.Cancelled, false},

		{"same status is not an increase", order.Accepted, order.Accepted, true},
		{"accepted back to created", order.Accepted, order.Created, true},
		{"delivered back to picked_up", order.Delivered, order.PickedUp, true},
		{"picked_up back to preparing", order.PickedUp, order.Preparing, true},

		{"delivered is terminal", order.Delivered, order.Cancelled, true},
		{"cancelled is terminal", order.Cancelled, order.Created, true},
		{"cancelled to cancelled", order.Cancelled, order.Cancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.CanTransitionTo(tt.to)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, order.ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("invalid statuses fail validation, not the guard", func(t *testing.T) {
		err := order.Unknown.CanTransitionTo(order.Accepted)
		require.Error(t, err)
		assert.NotErrorIs(t, err, order.ErrInvalidTransition)

		err = order.Created.CanTransitionTo(order.Status(42))
		require.Error(t, err)
		assert.NotErrorIs(t, err, order.ErrInvalidTransition)
	})
}
