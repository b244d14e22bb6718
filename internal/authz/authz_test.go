package authz

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = Principal{}
	alice     = Principal{UserID: 1, Username: "alice"}
	bob       = Principal{UserID: 2, Username: "bob"}
)

func TestDecide_PublicRead(t *testing.T) {
	for _, kind := range []Kind{KindPost, KindGroup, KindComment} {
		for _, action := range []Action{ActionList, ActionRetrieve} {
			for _, p := range []Principal{anonymous, alice} {
				d := Decide(p, action, kind, nil)
				assert.True(t, d.Allowed, "kind=%d action=%d principal=%q", kind, action, p.Username)
			}
		}
	}
}

func TestDecide_CreateRequiresAuthentication(t *testing.T) {
	for _, kind := range []Kind{KindPost, KindComment, KindFollow} {
		d := Decide(anonymous, ActionCreate, kind, nil)
		assert.False(t, d.Allowed, "kind=%d", kind)
		assert.Equal(t, ReasonAuthenticationRequired, d.Reason)
		assert.Equal(t, http.StatusUnauthorized, d.Reason.Status())

		d = Decide(alice, ActionCreate, kind, nil)
		assert.True(t, d.Allowed, "kind=%d", kind)
	}
}

func TestDecide_OwnershipGatesMutation(t *testing.T) {
	target := &Target{AuthorID: alice.UserID}

	for _, kind := range []Kind{KindPost, KindComment} {
		for _, action := range []Action{ActionUpdate, ActionPartialUpdate, ActionDelete} {
			d := Decide(alice, action, kind, target)
			assert.True(t, d.Allowed, "owner kind=%d action=%d", kind, action)

			d = Decide(bob, action, kind, target)
			assert.False(t, d.Allowed, "non-owner kind=%d action=%d", kind, action)
			assert.Equal(t, ReasonNotOwner, d.Reason)
			assert.Equal(t, http.StatusForbidden, d.Reason.Status())

			// The authentication gate fires before the ownership check.
			d = Decide(anonymous, action, kind, target)
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonAuthenticationRequired, d.Reason)
		}
	}
}

func TestDecide_GroupIsReadOnly(t *testing.T) {
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDelete} {
		for _, p := range []Principal{anonymous, alice} {
			d := Decide(p, action, KindGroup, nil)
			assert.False(t, d.Allowed, "action=%d principal=%q", action, p.Username)
			assert.Equal(t, ReasonReadOnlyResource, d.Reason)
			assert.Equal(t, http.StatusMethodNotAllowed, d.Reason.Status())
		}
	}
}

func TestDecide_FollowIsListCreateOnly(t *testing.T) {
	d := Decide(alice, ActionList, KindFollow, nil)
	assert.True(t, d.Allowed)
	d = Decide(alice, ActionCreate, KindFollow, nil)
	assert.True(t, d.Allowed)

	for _, action := range []Action{ActionRetrieve, ActionUpdate, ActionPartialUpdate, ActionDelete} {
		d := Decide(alice, action, KindFollow, nil)
		assert.False(t, d.Allowed, "action=%d", action)
		assert.Equal(t, ReasonMethodNotAllowed, d.Reason)
		assert.Equal(t, http.StatusMethodNotAllowed, d.Reason.Status())
	}
}

func TestDecide_FollowDeniesAnonymousBeforeMethodCheck(t *testing.T) {
	for _, action := range []Action{ActionList, ActionRetrieve, ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDelete} {
		d := Decide(anonymous, action, KindFollow, nil)
		assert.False(t, d.Allowed, "action=%d", action)
		assert.Equal(t, ReasonAuthenticationRequired, d.Reason)
	}
}

func TestDecide_IsPure(t *testing.T) {
	// Same inputs, same decision; Decide holds no state.
	first := Decide(bob, ActionDelete, KindPost, &Target{AuthorID: alice.UserID})
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Decide(bob, ActionDelete, KindPost, &Target{AuthorID: alice.UserID}))
	}
}
