package booking

import (
	"testing"

	"beyondborders/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		isOwner bool
		from    models.Status
		to      models.Status
		want    bool
	}{
		{"admin confirms pending", models.RoleAdmin, false, models.StatusPending, models.StatusConfirmed, true},
		{"admin cancels pending", models.RoleAdmin, false, models.StatusPending, models.StatusCancelled, true},
		{"admin completes pending", models.RoleAdmin, false, models.StatusPending, models.StatusCompleted, true},
		{"admin cancels confirmed", models.RoleAdmin, false, models.StatusConfirmed, models.StatusCancelled, true},
		{"admin completes confirmed", models.RoleAdmin, false, models.StatusConfirmed, models.StatusCompleted, true},
		{"admin reverts confirmed to pending", models.RoleAdmin, false, models.StatusConfirmed, models.StatusPending, false},
		{"admin touches cancelled", models.RoleAdmin, false, models.StatusCancelled, models.StatusPending, false},
		{"admin touches completed", models.RoleAdmin, false, models.StatusCompleted, models.StatusConfirmed, false},

		{"owner cancels pending", models.RoleCustomer, true, models.StatusPending, models.StatusCancelled, true},
		{"owner confirms own booking", models.RoleCustomer, true, models.StatusPending, models.StatusConfirmed, false},
		{"owner cancels confirmed", models.RoleCustomer, true, models.StatusConfirmed, models.StatusCancelled, false},
		{"owner cancels twice", models.RoleCustomer, true, models.StatusCancelled, models.StatusCancelled, false},
		{"non-owner customer cancels pending", models.RoleCustomer, false, models.StatusPending, models.StatusCancelled, false},

		{"unknown role", models.Role("SUPPORT"), true, models.StatusPending, models.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanTransition(tt.role, tt.isOwner, tt.from, tt.to)
			if got != tt.want {
				t.Errorf("CanTransition(%s, owner=%v, %s -> %s) = %v, want %v",
					tt.role, tt.isOwner, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	for _, table := range transitionTable {
		for from := range table {
			if from.IsTerminal() {
				t.Errorf("terminal status %s must not have outgoing transitions", from)
			}
		}
	}
}
