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

package authn

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wso2/entity-tokenization-service/internal/system/config"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// ValidateAuthenticationAndReturnClaims validates the Authorization bearer
// token and returns the verified claims.
func ValidateAuthenticationAndReturnClaims(r *http.Request) (map[string]interface{}, error) {

	authConfig := config.GetETSRuntime().Config.Auth
	if authConfig.Disabled {
		return map[string]interface{}{"sub": "anonymous"}, nil
	}

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, unauthorizedError()
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	// Opaque tokens are not supported.
	if strings.Count(token, ".") != 2 {
		log.GetLogger().Debug("Expecting a JWT token but received an opaque token.")
		return nil, unauthorizedError()
	}

	claims, err := parseAndVerifyJWT(token, authConfig.JWTSigningKey)
	if err != nil {
		return nil, unauthorizedError()
	}

	if !validateClaims(authConfig.JWTAudience, claims) {
		return nil, unauthorizedError()
	}
	return claims, nil
}

// parseAndVerifyJWT parses the token and verifies its HMAC signature.
func parseAndVerifyJWT(tokenString, signingKey string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		logger.Debug("Error occurred when verifying JWT token.", log.Error(err))
		return nil, err
	}
	return claims, nil
}

// validateClaims ensures the token carries the expected audience and has not expired.
func validateClaims(expectedAudience string, claims map[string]interface{}) bool {

	logger := log.GetLogger()

	expRaw, ok := claims["exp"]
	if !ok {
		logger.Debug("Token does not have an expiration time.")
		return false
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		logger.Debug("Token does not have a valid expiration time.", log.Any("exp", expRaw))
		return false
	}
	if int64(expFloat) < time.Now().Unix() {
		logger.Debug("Token has expired.")
		return false
	}

	audRaw, ok := claims["aud"]
	if !ok {
		logger.Debug("Token does not have an audience claim.")
		return false
	}

	var audList []string
	switch aud := audRaw.(type) {
	case []interface{}:
		for _, a := range aud {
			if s, ok := a.(string); ok {
				audList = append(audList, s)
			}
		}
	case string:
		audList = append(audList, aud)
	}

	for _, aud := range audList {
		if aud == expectedAudience {
			return true
		}
	}
	logger.Debug("Token audience does not match expected audience.")
	return false
}

// ExtractSubject returns the sub claim, or an empty string when absent.
func ExtractSubject(claims map[string]interface{}) string {

	sub, _ := claims["sub"].(string)
	return sub
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UNAUTHORIZED.Code,
		Message:     errors2.UNAUTHORIZED.Message,
		Description: "Authentication failed for the request.",
	}, http.StatusUnauthorized)
}
