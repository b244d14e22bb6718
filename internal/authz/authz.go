// Package authz decides whether a principal may perform an action on a
// resource kind. Decisions are pure: no store access, no side effects.
package authz

import "net/http"

// Action is the request's intent against a resource collection or instance.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionPartialUpdate
	ActionDelete
)

// Kind identifies the resource a decision is about.
type Kind int

const (
	KindPost Kind = iota
	KindGroup
	KindComment
	KindFollow
)

// Principal identifies the requester. A zero UserID means anonymous.
type Principal struct {
	UserID   uint
	Username string
}

// Authenticated reports whether the principal is a real user.
func (p Principal) Authenticated() bool {
	return p.UserID != 0
}

// Target carries the ownership data of an existing resource instance.
// It is nil for list and create actions.
type Target struct {
	AuthorID uint
}

// Reason explains a denial. Each reason maps to one HTTP status so
// clients can branch on it.
type Reason string

const (
	ReasonAuthenticationRequired Reason = "authentication required"
	ReasonNotOwner               Reason = "not owner"
	ReasonReadOnlyResource       Reason = "read-only resource"
	ReasonMethodNotAllowed       Reason = "method not allowed"
	ReasonForbidden              Reason = "forbidden"
)

// Status returns the HTTP status for a denial reason.
func (r Reason) Status() int {
	switch r {
	case ReasonAuthenticationRequired:
		return http.StatusUnauthorized
	case ReasonReadOnlyResource, ReasonMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusForbidden
	}
}

// Decision is the outcome of Decide. Reason is set only on denial.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(r Reason) Decision {
	return Decision{Reason: r}
}

func readOnly(a Action) bool {
	return a == ActionList || a == ActionRetrieve
}

// Decide evaluates the permission rules in order; the first matching
// rule wins. target must be the existing instance for retrieve, update
// and delete actions, and nil for list and create.
func Decide(p Principal, action Action, kind Kind, target *Target) Decision {
	// Reads on posts, groups and comments are public.
	if readOnly(action) && kind != KindFollow {
		return allow()
	}

	// Everything about follow edges requires authentication.
	if kind == KindFollow && !p.Authenticated() {
		return deny(ReasonAuthenticationRequired)
	}

	if action == ActionCreate && (kind == KindPost || kind == KindComment) {
		if !p.Authenticated() {
			return deny(ReasonAuthenticationRequired)
		}
		return allow()
	}

	if mutatesInstance(action) && (kind == KindPost || kind == KindComment) {
		if !p.Authenticated() {
			return deny(ReasonAuthenticationRequired)
		}
		if target != nil && target.AuthorID == p.UserID {
			return allow()
		}
		return deny(ReasonNotOwner)
	}

	// Groups expose no write surface at all.
	if kind == KindGroup {
		return deny(ReasonReadOnlyResource)
	}

	if kind == KindFollow {
		// Append-only, self-scoped relation: list and create only.
		if action == ActionList || action == ActionCreate {
			return allow()
		}
		return deny(ReasonMethodNotAllowed)
	}

	return deny(ReasonForbidden)
}

func mutatesInstance(a Action) bool {
	return a == ActionUpdate || a == ActionPartialUpdate || a == ActionDelete
}
