package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDeliveryStatus(t *testing.T) {
	for _, s := range []string{
		"Pending Assignment", "Assigned", "Out for Delivery",
		"Delivered", "Attempted Delivery", "Cancelled", "Delayed",
	} {
		status, err := ParseDeliveryStatus(s)
		require.NoError(t, err)
		require.Equal(t, DeliveryStatus(s), status)
	}

	_, err := ParseDeliveryStatus("In Transit")
	require.Error(t, err)
}

func TestDeliveryStatusAllowsAgent(t *testing.T) {
	require.False(t, DeliveryStatusPendingAssignment.AllowsAgent())

	for _, s := range []DeliveryStatus{
		DeliveryStatusAssigned, DeliveryStatusOutForDelivery,
		DeliveryStatusDelivered, DeliveryStatusAttempted,
		DeliveryStatusCancelled, DeliveryStatusDelayed,
	} {
		require.True(t, s.AllowsAgent(), "%s should allow an agent reference", s)
	}
}
