package model

import "github.com/google/uuid"

// OrderDetailCacheKey is the redis key for one order's cached detail.
// Shared by the order and payment services so mutations on either
// side invalidate the same entry.
func OrderDetailCacheKey(orderID uuid.UUID) string {
	return "order:detail:" + orderID.String()
}
