package order

// Reasons returned by CanTransition when a transition is refused.
// They are surfaced verbatim to the transport layer as 400-class responses.
const (
	ReasonUnknownCurrentStatus = "unknown current status"
	ReasonNotPermitted         = "transition not permitted"
	ReasonRoleNotAuthorized    = "role not authorized"
)

// TransitionResult is the structured outcome of a transition check.
// Allowed transitions carry an empty Reason; refused transitions always
// carry a non-empty one. CanTransition never fails any other way.
type TransitionResult struct {
	Allowed bool
	Reason  string
}

// transitionRule describes the legal outgoing edges of one status and the
// roles permitted to originate a transition from it.
type transitionRule struct {
	targets map[Status]struct{}
	roles   map[Role]struct{}
}

// getTransitionTable returns the authorization table of the order state
// machine, keyed by the FROM status. Terminal statuses (Livree, Annulee)
// have no entry: nothing leaves them.
func getTransitionTable() map[Status]transitionRule {
	operator := map[Role]struct{}{RoleAdmin: {}}

	return map[Status]transitionRule{
		New: {
			targets: map[Status]struct{}{Aggregated: {}, Annulee: {}},
			roles:   operator,
		},
		Aggregated: {
			targets: map[Status]struct{}{SupplierOrdered: {}, Annulee: {}},
			roles:   operator,
		},
		SupplierOrdered: {
			targets: map[Status]struct{}{Preparation: {}, Annulee: {}},
			roles:   operator,
		},
		Preparation: {
			targets: map[Status]struct{}{Livraison: {}, Annulee: {}},
			roles:   map[Role]struct{}{RoleAdmin: {}, RolePreparateur: {}},
		},
		Livraison: {
			targets: map[Status]struct{}{Livree: {}, Annulee: {}},
			roles:   map[Role]struct{}{RoleAdmin: {}, RoleLivreur: {}},
		},
	}
}

// CanTransition checks whether the transition current -> target is legal for
// the given actor role. It is pure and never returns an error: refusals are
// reported through the Reason field.
//
// Refusal reasons:
//   - unknown current status: current is not a valid status value
//   - transition not permitted: target is not in current's allowed set
//     (terminal statuses allow no target at all)
//   - role not authorized: the edge exists but the role may not drive it
func CanTransition(current, target Status, role Role) TransitionResult {
	if err := current.Validate(); err != nil {
		return TransitionResult{Allowed: false, Reason: ReasonUnknownCurrentStatus}
	}

	rule, ok := getTransitionTable()[current]
	if !ok {
		return TransitionResult{Allowed: false, Reason: ReasonNotPermitted}
	}

	if _, ok = rule.targets[target]; !ok {
		return TransitionResult{Allowed: false, Reason: ReasonNotPermitted}
	}

	if _, ok = rule.roles[role]; !ok {
		return TransitionResult{Allowed: false, Reason: ReasonRoleNotAuthorized}
	}

	return TransitionResult{Allowed: true}
}
