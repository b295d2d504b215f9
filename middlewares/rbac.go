package middlewares

import (
	"fmt"
	"log"
	"net/http"

	"civichub/models"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
)

var enforcer *casbin.Enforcer

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// InitCasbin initializes the Casbin enforcer with the MongoDB adapter and
// seeds the role policies
func InitCasbin(dbURI string) error {
	adapter, err := mongodbadapter.NewAdapter(dbURI)
	if err != nil {
		return fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return fmt.Errorf("failed to load RBAC model: %w", err)
	}

	enforcer, err = casbin.NewEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	seedPolicies()
	return nil
}

func seedPolicies() {
	policies := [][]string{
		{models.RoleModerator, "ratings", "moderate"},
		{models.RoleAdmin, "badges", "manage"},
		{models.RoleAdmin, "officials", "manage"},
		{models.RoleAdmin, "modules", "manage"},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			log.Printf("Failed to add policy %v: %v", p, err)
		}
	}
	// admins inherit every moderator permission
	if _, err := enforcer.AddGroupingPolicy(models.RoleAdmin, models.RoleModerator); err != nil {
		log.Printf("Failed to add role inheritance: %v", err)
	}
}

// RequirePermission gates a route on a Casbin permission for the
// authenticated user's role. Must run after AuthMiddleware.
func RequirePermission(obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == "" {
			role = models.RoleUser
		}

		ok, err := enforcer.Enforce(role, obj, act)
		if err != nil {
			log.Printf("RBAC check failed for %s on %s/%s: %v", role, obj, act, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
