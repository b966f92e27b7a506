package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuskit/campusboard-backend/api/middleware"
	"github.com/campuskit/campusboard-backend/pkg/enums"
	"github.com/campuskit/campusboard-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func asUser(req *http.Request, userID string, role enums.UserRole) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), userID, string(role)))
}
