/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tomoncle/dodgeball/errs"
	"github.com/tomoncle/dodgeball/models"
	"github.com/tomoncle/dodgeball/service"
)

type patchPtr[T any, P any] interface {
	*P
	models.Patch[T]
}

// resource serves the five CRUD routes of one entity. P is its patch type.
type resource[T any, P any, PP patchPtr[T, P]] struct {
	svc     service.Service[T]
	newItem func() *T
}

// register mounts the CRUD routes of svc under g/path and returns the group
// so callers can add sub-routes. newItem supplies the defaults of a create
// payload; nil means the zero value.
func register[T any, P any, PP patchPtr[T, P]](g *echo.Group, path string, svc service.Service[T], newItem func() *T) *echo.Group {
	if newItem == nil {
		newItem = func() *T { return new(T) }
	}
	r := &resource[T, P, PP]{svc: svc, newItem: newItem}
	sub := g.Group("/" + path)
	sub.GET("", r.list)
	sub.POST("", r.create)
	sub.GET("/:id", r.get)
	sub.PUT("/:id", r.update)
	sub.DELETE("/:id", r.remove)
	return sub
}

func (r *resource[T, P, PP]) list(c echo.Context) error {
	items, err := r.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (r *resource[T, P, PP]) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := r.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (r *resource[T, P, PP]) create(c echo.Context) error {
	item := r.newItem()
	if err := c.Bind(item); err != nil {
		return err
	}
	created, err := r.svc.Create(c.Request().Context(), item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (r *resource[T, P, PP]) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	patch := PP(new(P))
	if err := c.Bind(patch); err != nil {
		return err
	}
	updated, err := r.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (r *resource[T, P, PP]) remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := r.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listBy adapts a parent-scoped read such as MatchService.ListByTeam.
func listBy[T any](fn func(ctx context.Context, id int64) ([]*T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		items, err := fn(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, items)
	}
}

func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Invalid("Invalid ID '%s'", raw)
	}
	return id, nil
}
