package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Routes the guard redirects to.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// DecisionKind tags the outcome of a guard decision.
type DecisionKind int

const (
	// DecideLoading means auth state is still resolving; no redirect
	// decision has been made yet.
	DecideLoading DecisionKind = iota
	// DecideRedirect means the request must be sent to Decision.Path.
	DecideRedirect
	// DecideRender means the guarded content may be served unchanged.
	DecideRender
)

// Decision is the guard's tagged outcome.
type Decision struct {
	Kind DecisionKind
	Path string
}

// Decide is the route guard as a pure function of auth state and the
// allowed role set. Unauthenticated users go to the login path,
// authenticated users with a role outside a non-empty allowed set go to
// the unauthorized path, everyone else renders. The two redirects are
// mutually exclusive.
func Decide(state AuthState, allowedRoles []string) Decision {
	if state.Loading {
		return Decision{Kind: DecideLoading}
	}

	if !state.Authenticated {
		return Decision{Kind: DecideRedirect, Path: LoginPath}
	}

	if len(allowedRoles) > 0 && !roleAllowed(state.Profile, allowedRoles) {
		return Decision{Kind: DecideRedirect, Path: UnauthorizedPath}
	}

	return Decision{Kind: DecideRender}
}

// Guard wraps protected route trees. It holds no state of its own: every
// request is decided from the AuthState that Authenticate assembled. Login
// redirects carry the original destination so the login flow can send the
// user back.
func Guard(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := MustAuthState(c)

		switch decision := Decide(state, allowedRoles); decision.Kind {
		case DecideLoading:
			c.JSON(http.StatusAccepted, gin.H{
				"success": true,
				"message": "Authentication in progress",
			})
			c.Abort()
		case DecideRedirect:
			location := decision.Path
			if decision.Path == LoginPath {
				location = LoginPath + "?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
			}
			c.Redirect(http.StatusFound, location)
			c.Abort()
		default:
			c.Next()
		}
	}
}
