package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-backend-go/utils"
)

// CustomerAuth authenticates a customer token and stores the customer
// ID in the echo context under "customerID".
func CustomerAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(next, utils.RoleCustomer, "customerID")
}

// VendorAuth authenticates a vendor token and stores the vendor ID in
// the echo context under "vendorID".
func VendorAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(next, utils.RoleVendor, "vendorID")
}

func requireRole(next echo.HandlerFunc, role, contextKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
		}

		claims, err := utils.ParseToken(tokenParts[1])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		if claims.Role != role {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Insufficient permissions"})
		}

		c.Set(contextKey, claims.AccountID)
		return next(c)
	}
}
