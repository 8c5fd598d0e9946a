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
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tomoncle/dodgeball/errs"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

// HTTPErrorHandler writes err as an ErrorResponse with the status of its kind.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := ErrorResponse{Code: http.StatusInternalServerError, Message: "Internal server error"}
	var appErr *errs.Error
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		resp.Code = appErr.HTTPStatus()
		resp.Message = appErr.Message
		resp.Fields = appErr.Fields
	case errors.As(err, &echoErr):
		resp.Code = echoErr.Code
		resp.Message = fmt.Sprint(echoErr.Message)
	}
	if resp.Code >= http.StatusInternalServerError {
		log.WithError(err).WithField("request_id", requestID(c)).Error("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resp.Code)
	} else {
		err = c.JSON(resp.Code, resp)
	}
	if err != nil {
		log.WithError(err).Warn("failed to write error response")
	}
}
