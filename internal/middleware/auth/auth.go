package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/tokens"
)

const (
	CtxUserID     = "user_id"
	CtxCustomerID = "customer_id"
)

type Middleware struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func New(db *gorm.DB, secret []byte) *Middleware {
	return &Middleware{DB: db, JWTSecret: secret}
}

// RequireAdmin admits bearer tokens with the admin type claim whose user is
// still active.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.claims(c)
		if err != nil {
			return err
		}
		if claims.Type != tokens.PrincipalAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		id, err := claims.SubjectID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		var user models.User
		if err := m.DB.WithContext(c.Request().Context()).First(&user, id).Error; err != nil || !user.IsActive {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token or user inactive")
		}

		c.Set(CtxUserID, user.ID)
		return next(c)
	}
}

func (m *Middleware) RequireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.claims(c)
		if err != nil {
			return err
		}
		if claims.Type != tokens.PrincipalCustomer {
			return echo.NewHTTPError(http.StatusForbidden, "customer access required")
		}
		id, err := claims.SubjectID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		var customer models.Customer
		if err := m.DB.WithContext(c.Request().Context()).First(&customer, id).Error; err != nil || !customer.IsActive {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token or customer inactive")
		}

		c.Set(CtxCustomerID, customer.ID)
		return next(c)
	}
}

func (m *Middleware) claims(c echo.Context) (*tokens.Claims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "access denied: no token provided")
	}

	claims, err := tokens.Parse(tokenStr, m.JWTSecret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// UserID reads the admin id the middleware stored in the context.
func UserID(c echo.Context) uint {
	if v, ok := c.Get(CtxUserID).(uint); ok {
		return v
	}
	return 0
}

func CustomerID(c echo.Context) uint {
	if v, ok := c.Get(CtxCustomerID).(uint); ok {
		return v
	}
	return 0
}
