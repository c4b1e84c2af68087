// Package usecase holds the orchestrators that compose the domain ledgers
// into multi-resource operations. Every mutation of a product, coupon,
// account or order happens while holding that resource's key lock; lock keys
// are namespaced per resource type so, say, a product and an order with the
// same UUID can never collide.
package usecase

import "fmt"

func productKey(id string) string { return "product:" + id }
func couponKey(id string) string  { return "coupon:" + id }
func accountKey(id string) string { return "account:" + id }
func orderKey(id string) string   { return "order:" + id }

func userCouponKey(userID, couponID string) string {
	return fmt.Sprintf("usercoupon:%s:%s", userID, couponID)
}
