package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core/session"
)

const contextMonitorKey = "sessionMonitor"

// sessionGuard resolves the live monitor for the token's code and blocks all
// interaction once the session has been terminated. Only logout gets past a
// terminated session, so it is registered without this middleware.
func sessionGuard(reg *session.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}

			mon, ok := reg.Get(claims.Code)
			if !ok {
				return errSessionExpected
			}
			if mon.State() == session.StateTerminated {
				reason := mon.Session().Reason
				return echo.NewHTTPError(http.StatusForbidden, echo.Map{
					"error":  reason.Message(),
					"reason": reason.String(),
				})
			}

			ctx.Set(contextMonitorKey, mon)
			return next(ctx)
		}
	}
}

func getContextMonitor(ctx echo.Context) (*session.Monitor, error) {
	if mon, ok := ctx.Get(contextMonitorKey).(*session.Monitor); ok {
		return mon, nil
	}
	return nil, errSessionExpected
}
