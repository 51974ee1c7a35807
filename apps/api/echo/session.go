package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core"
	"github.com/coursatplus/coursat/core/session"
)

type sessionApi struct {
	conf     *core.Config
	reg      *session.Registry
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, jwt, guard echo.MiddlewareFunc, deps ServerDeps) {
	api := sessionApi{
		conf:     deps.Conf,
		reg:      deps.Sessions,
		validate: deps.Validate,
	}

	sg := g.Group("/session")

	// un-authed endpoints
	sg.POST("/activate", api.activate)

	// authed endpoints; logout must work even on a terminated session
	ag := sg.Group("", jwt)
	ag.POST("/logout", api.logout)

	gg := ag.Group("", guard)
	gg.GET("", api.retrieve)
	gg.GET("/countdown", api.streamCountdown)
}

// Handlers

func (api *sessionApi) activate(ctx echo.Context) error {
	var data session.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	identity, err := api.reg.Activate(ctx.Request().Context(), data.Code)
	if err != nil {
		switch errors.Cause(err) {
		case session.ErrIncompleteCode, session.ErrInvalidCode, session.ErrCodeExpired:
			return core.NewValidationError(nil, core.FieldError{Field: "code", Error: err.Error()})
		}
		return errors.Wrap(err, "activating code")
	}

	token, err := GenerateToken(api.conf, GetSessionClaims(api.conf, identity))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, ActivateResponse{
		Token:        token,
		Student:      identity,
		ExpiringSoon: identity.ExpiringSoon(time.Now()),
	})
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	mon, err := getContextMonitor(ctx)
	if err != nil {
		return err
	}

	sess := mon.Session()
	countdown, _ := mon.Countdown()
	return ctx.JSON(http.StatusOK, SessionResponse{
		Session:      sess,
		Countdown:    countdown,
		ExpiringSoon: sess.Identity.ExpiringSoon(time.Now()),
	})
}

// streamCountdown pushes one remaining-time snapshot per interval as
// server-sent events until the session expires or the client disconnects.
func (api *sessionApi) streamCountdown(ctx echo.Context) error {
	mon, err := getContextMonitor(ctx)
	if err != nil {
		return err
	}
	sess := mon.Session()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	if countdown, ok := mon.Countdown(); ok {
		if err := writeCountdownEvent(resp, countdown); err != nil {
			return err
		}
	}

	stream := session.Project(ctx.Request().Context(), sess.Identity.ExpiryDate, api.conf.Session.CountdownInterval)
	for countdown := range stream {
		if err := writeCountdownEvent(resp, countdown); err != nil {
			return err
		}
	}
	return nil
}

func writeCountdownEvent(resp *echo.Response, countdown session.Countdown) error {
	data, err := json.Marshal(countdown)
	if err != nil {
		return errors.Wrap(err, "marshalling countdown")
	}
	if _, err = fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
		return errors.Wrap(err, "writing countdown event")
	}
	resp.Flush()
	return nil
}

func (api *sessionApi) logout(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	api.reg.Logout(claims.Code)
	return ctx.NoContent(http.StatusNoContent)
}

type (
	ActivateResponse struct {
		Token        string           `json:"token"`
		Student      session.Identity `json:"student"`
		ExpiringSoon bool             `json:"expiring_soon"`
	}

	SessionResponse struct {
		Session      session.Session   `json:"session"`
		Countdown    session.Countdown `json:"countdown"`
		ExpiringSoon bool              `json:"expiring_soon"`
	}
)
