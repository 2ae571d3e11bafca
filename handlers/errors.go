package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rushali2005/studentpp/services"
)

func statusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindAuthentication:
		return http.StatusUnauthorized
	case services.KindTransport:
		var terr *services.TransportError
		if errors.As(err, &terr) && terr.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case services.KindProtocol:
		return http.StatusBadGateway
	case services.KindPersistence:
		return http.StatusServiceUnavailable
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "kind"} plus the offending field names
// for validation failures. Internal errors are not echoed to the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	kind := services.KindOf(err)
	body := gin.H{"kind": kind, "error": err.Error()}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		body["missing_fields"] = nonNil(verr.MissingFields)
		body["invalid_fields"] = nonNil(verr.InvalidFields)
	}
	if kind == services.KindInternal {
		body["error"] = "internal server error"
	}
	c.AbortWithStatusJSON(statusFor(err), body)
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
