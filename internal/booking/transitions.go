package booking

import "beyondborders/internal/models"

// transitionTable is the single definition of who may drive which status
// edge. New roles or states extend by adding rows, not branches.
// CANCELLED and COMPLETED have no rows: they are terminal.
var transitionTable = map[models.Role]map[models.Status][]models.Status{
	models.RoleAdmin: {
		models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted},
		models.StatusConfirmed: {models.StatusCancelled, models.StatusCompleted},
	},
	models.RoleCustomer: {
		models.StatusPending: {models.StatusCancelled},
	},
}

// CanTransition reports whether the actor role may move a booking from one
// status to another. Customers only ever act on bookings they own.
func CanTransition(role models.Role, isOwner bool, from, to models.Status) bool {
	if role == models.RoleCustomer && !isOwner {
		return false
	}
	for _, allowed := range transitionTable[role][from] {
		if allowed == to {
			return true
		}
	}
	return false
}
