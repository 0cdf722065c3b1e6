package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/SanakShres/emergent-ecommerce/lib/myuuid"
)

func TestResolve(t *testing.T) {

	t.Run("Mints session token once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uuider := myuuid.NewMockUUIDer(ctrl)
		uuider.EXPECT().Create().Return("session-token-1")
		resolver := NewResolver(uuider)

		// when
		identity, minted := resolver.Resolve("", "")

		// then
		assert.True(t, minted)
		assert.Equal(t, KindAnonymous, identity.Kind)
		assert.Equal(t, "session-token-1", identity.SessionToken)

		// when resolved again with the persisted token
		identity, minted = resolver.Resolve("", identity.SessionToken)

		// then: stable across reloads, nothing minted
		assert.False(t, minted)
		assert.Equal(t, "session-token-1", identity.SessionToken)
	})

	t.Run("Auth token supersedes but retains session token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resolver := NewResolver(myuuid.NewMockUUIDer(ctrl))

		// when
		identity, minted := resolver.Resolve("jwt-123", "session-token-1")

		// then
		assert.False(t, minted)
		assert.Equal(t, KindAuthenticated, identity.Kind)
		assert.Equal(t, "jwt-123", identity.AuthToken)
		assert.Equal(t, "session-token-1", identity.SessionToken)
		assert.Equal(t, "auth-jwt-123", identity.Key())

		predecessor, ok := identity.AnonymousPredecessor()
		assert.True(t, ok)
		assert.Equal(t, KindAnonymous, predecessor.Kind)
		assert.Equal(t, "session-session-token-1", predecessor.Key())
	})

	t.Run("Authenticated without prior session has no predecessor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resolver := NewResolver(myuuid.NewMockUUIDer(ctrl))

		identity, _ := resolver.Resolve("jwt-123", "")

		_, ok := identity.AnonymousPredecessor()
		assert.False(t, ok)
	})

	t.Run("Resolve from request sets cookie when minted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uuider := myuuid.NewMockUUIDer(ctrl)
		uuider.EXPECT().Create().Return("session-token-2")
		resolver := NewResolver(uuider)

		request, err := http.NewRequest(http.MethodGet, "/cart", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()

		// when
		identity := resolver.ResolveFromRequest(response, request)

		// then
		assert.Equal(t, "session-token-2", identity.SessionToken)
		cookies := response.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.Equal(t, "session-token-2", cookies[0].Value)
	})

	t.Run("Resolve from request reads bearer header and existing cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		resolver := NewResolver(myuuid.NewMockUUIDer(ctrl))

		request, err := http.NewRequest(http.MethodGet, "/cart", nil)
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer jwt-123")
		request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-token-1"})
		response := httptest.NewRecorder()

		// when
		identity := resolver.ResolveFromRequest(response, request)

		// then
		assert.Equal(t, KindAuthenticated, identity.Kind)
		assert.Equal(t, "jwt-123", identity.AuthToken)
		assert.Equal(t, "session-token-1", identity.SessionToken)
		assert.Empty(t, response.Result().Cookies())
	})
}
