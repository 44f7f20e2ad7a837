package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, mw gin.HandlerFunc, p *Principal) int {
	t.Helper()
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if p != nil {
		req = req.WithContext(WithPrincipal(req.Context(), *p))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAnyRole(t *testing.T) {
	mw := RequireAnyRole(RoleManager, RoleWarehouseman)

	tests := []struct {
		name string
		p    *Principal
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"matching role", &Principal{Identity: "m@x.com", Role: RoleManager}, http.StatusOK},
		{"admin bypass", &Principal{Identity: "root@x.com", Role: RoleAdmin}, http.StatusOK},
		{"wrong role", &Principal{Identity: "d@x.com", Role: RoleDriver}, http.StatusForbidden},
		{"unknown role", &Principal{Identity: "x@x.com", Role: "OVERLORD"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serve(t, mw, tt.p); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	mw := RequirePermission(PermItemWrite)

	tests := []struct {
		name string
		p    *Principal
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"granted", &Principal{Identity: "w@x.com", Role: RoleWarehouseman, Permissions: Permissions(RoleWarehouseman)}, http.StatusOK},
		{"denied", &Principal{Identity: "d@x.com", Role: RoleDriver, Permissions: Permissions(RoleDriver)}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serve(t, mw, tt.p); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAuthorities(t *testing.T) {
	got := Authorities(RoleDriver)
	if len(got) != 3 || got[0] != "role:DRIVER" {
		t.Fatalf("unexpected authorities: %v", got)
	}
	if Authorities("OVERLORD") != nil {
		t.Fatalf("unknown role must have no authorities")
	}
}
