/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	customerrors "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error.
func HandleError(w http.ResponseWriter, err error) {

	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string                 `json:"code"`
			Message     string                 `json:"message"`
			Description string                 `json:"description"`
			Context     map[string]interface{} `json:"context,omitempty"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
			Context:     clientError.Context,
		})
		return
	}

	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger := log.GetLogger()
		logger.Error(err.Error())
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// ExtractWorkspaceFromPath returns the workspace identifier placed in the
// request context by the workspace dispatcher.
func ExtractWorkspaceFromPath(r *http.Request) string {

	workspace, _ := r.Context().Value(constants.WorkspaceContextKey).(string)
	return workspace
}

// RewriteToDefaultWorkspace rewrites `/api/v1/...` to `/w/{default}/api/v1/...`.
func RewriteToDefaultWorkspace(apiBasePath string, mux *http.ServeMux, defaultWorkspace string) {

	mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		newPath := "/w/" + defaultWorkspace + r.URL.Path
		http.Redirect(w, r, newPath, http.StatusTemporaryRedirect)
	})
}

// MountWorkspaceDispatcher routes `/w/{workspace}/api/v1/...` requests to the
// given handler with the workspace stored in the request context.
func MountWorkspaceDispatcher(mux *http.ServeMux, apiBasePath string, handlerFunc http.HandlerFunc) {

	mux.HandleFunc("/w/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		parts := strings.SplitN(strings.TrimPrefix(path, "/w/"), "/", 2)
		if len(parts) != 2 {
			http.Error(w, "Invalid workspace path format", http.StatusBadRequest)
			return
		}

		workspaceID := parts[0]
		remainingPath := "/" + parts[1]

		if !strings.HasPrefix(remainingPath, apiBasePath) {
			http.Error(w, "Path must start with "+apiBasePath, http.StatusNotFound)
			return
		}

		relativePath := strings.TrimPrefix(remainingPath, apiBasePath)

		ctx := context.WithValue(r.Context(), constants.WorkspaceContextKey, workspaceID)
		r = r.WithContext(ctx)
		r.URL.Path = relativePath

		handlerFunc(w, r)
	})
}
