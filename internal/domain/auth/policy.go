package auth

// Resources and actions known to the authorization policy.
const (
	ResourceProducts = "products"
	ResourceOrders   = "orders"
	ResourceCart     = "cart"
	ResourceUploads  = "uploads"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// rule keys authorization decisions by resource and action.
type rule struct {
	resource string
	action   string
}

// policy maps each guarded {resource, action} pair to the roles allowed to
// perform it. Pairs absent from the map are open to any authenticated user.
var policy = map[rule][]string{
	{ResourceProducts, ActionCreate}: {"admin"},
	{ResourceProducts, ActionUpdate}: {"admin"},
	{ResourceProducts, ActionDelete}: {"admin"},
}

// Allowed is the single authorization predicate for the API: it reports
// whether role may perform action on resource. Per-endpoint role checks
// should go through here rather than comparing role strings inline.
func Allowed(resource, action, role string) bool {
	roles, ok := policy[rule{resource, action}]
	if !ok {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
