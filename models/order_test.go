package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveOrderStatuses(t *testing.T) {
	active := ActiveOrderStatuses()
	for _, status := range AllOrderStatuses() {
		want := status == StatusPending || status == StatusInProgress
		assert.Equal(t, want, containsStatus(active, status), "status %s", status)
	}
}

func containsStatus(statuses []OrderStatus, status OrderStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
