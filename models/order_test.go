package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		allowed []OrderStatus
	}{
		{OrderStatusPending, []OrderStatus{OrderStatusPreparing, OrderStatusCancelled}},
		{OrderStatusPreparing, []OrderStatus{OrderStatusOutForDelivery, OrderStatusCancelled}},
		{OrderStatusOutForDelivery, []OrderStatus{OrderStatusDelivered, OrderStatusCancelled}},
		{OrderStatusDelivered, nil},
		{OrderStatusCancelled, nil},
	}

	all := []OrderStatus{
		OrderStatusPending, OrderStatusPreparing, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled,
	}

	for _, tc := range cases {
		permitted := map[OrderStatus]bool{}
		for _, s := range tc.allowed {
			permitted[s] = true
		}
		for _, next := range all {
			got := tc.from.CanTransitionTo(next)
			require.Equal(t, permitted[next], got, "%s -> %s", tc.from, next)
		}
	}
}

func TestOrderStatusTerminalStatesHaveNoExits(t *testing.T) {
	require.True(t, OrderStatusDelivered.IsTerminal())
	require.True(t, OrderStatusCancelled.IsTerminal())
	require.Empty(t, OrderStatusDelivered.NextStatuses())
	require.Empty(t, OrderStatusCancelled.NextStatuses())

	require.False(t, OrderStatusPending.IsTerminal())
	require.False(t, OrderStatusPreparing.IsTerminal())
	require.False(t, OrderStatusOutForDelivery.IsTerminal())
}

func TestOrderStatusNoShortcutToDelivered(t *testing.T) {
	require.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))
	require.False(t, OrderStatusPreparing.CanTransitionTo(OrderStatusDelivered))
}

func TestOrderStatusCancellableFromAnyNonTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusOutForDelivery} {
		require.True(t, s.CanTransitionTo(OrderStatusCancelled), "%s should allow cancellation", s)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Out for Delivery")
	require.NoError(t, err)
	require.Equal(t, OrderStatusOutForDelivery, status)

	_, err = ParseOrderStatus("Shipped")
	require.Error(t, err)

	_, err = ParseOrderStatus("")
	require.Error(t, err)
}
