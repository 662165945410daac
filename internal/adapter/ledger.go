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

package adapter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wso2/entity-tokenization-service/internal/adapter/model"
	"github.com/wso2/entity-tokenization-service/internal/system/config"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

// LedgerAdapter anchors snapshot hashes on an external ledger service. The
// payload itself is not sent; only the DFID and content hash are anchored,
// and the ledger answers with the transaction and asset it minted.
type LedgerAdapter struct {
	httpClient *http.Client
}

func NewLedgerAdapter() *LedgerAdapter {

	return &LedgerAdapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *LedgerAdapter) Type() string {

	return constants.AdapterTypeLedger
}

type anchorRequest struct {
	DFID            string `json:"dfid"`
	ContentHash     string `json:"content_hash"`
	ContractAddress string `json:"contract_address"`
}

type anchorResponse struct {
	TransactionID string `json:"transaction_id"`
	AssetID       string `json:"asset_id"`
}

// Store anchors the snapshot hash and returns the ledger coordinates.
func (a *LedgerAdapter) Store(ctx context.Context, snapshot model.ItemSnapshot) (model.AdapterLocation, string, error) {

	logger := log.GetLogger()
	ledgerCfg := config.GetETSRuntime().Config.Ledger

	sum := sha256.Sum256(snapshot.Payload)
	contentHash := hex.EncodeToString(sum[:])

	body, err := json.Marshal(anchorRequest{
		DFID:            snapshot.DFID,
		ContentHash:     contentHash,
		ContractAddress: ledgerCfg.ContractAddress,
	})
	if err != nil {
		return model.AdapterLocation{}, "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to marshal anchor request for item: %s", snapshot.DFID),
		}, err)
	}

	endpoint := strings.TrimSuffix(ledgerCfg.Endpoint, "/") + "/anchors"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.AdapterLocation{}, "", ledgerError(snapshot.DFID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ledgerCfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+ledgerCfg.APIKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.AdapterLocation{}, "", ledgerError(snapshot.DFID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		errorMsg := fmt.Sprintf("Ledger endpoint returned status %d for item: %s. Response: %s",
			resp.StatusCode, snapshot.DFID, strings.TrimSpace(string(respBody)))
		logger.Debug(errorMsg)
		return model.AdapterLocation{}, "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADAPTER_STORE.Code,
			Message:     errors2.ADAPTER_STORE.Message,
			Description: errorMsg,
		}, fmt.Errorf("ledger endpoint non-2xx: %d", resp.StatusCode))
	}

	var result anchorResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		errorMsg := fmt.Sprintf("Failed to parse anchor response for item: %s", snapshot.DFID)
		logger.Debug(errorMsg, log.Error(err))
		return model.AdapterLocation{}, "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UNMARSHAL_JSON.Code,
			Message:     errors2.UNMARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}
	if result.TransactionID == "" {
		return model.AdapterLocation{}, "", ledgerError(snapshot.DFID,
			fmt.Errorf("anchor response missing transaction_id"))
	}

	location := model.AdapterLocation{
		TransactionID:   result.TransactionID,
		ContractAddress: ledgerCfg.ContractAddress,
		AssetID:         result.AssetID,
	}
	return location, contentHash, nil
}

// HealthCheck probes the ledger service health endpoint.
func (a *LedgerAdapter) HealthCheck(ctx context.Context) error {

	ledgerCfg := config.GetETSRuntime().Config.Ledger
	endpoint := strings.TrimSuffix(ledgerCfg.Endpoint, "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}

func ledgerError(dfid string, err error) error {

	errorMsg := fmt.Sprintf("Ledger anchor failed for item: %s", dfid)
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.ADAPTER_STORE.Code,
		Message:     errors2.ADAPTER_STORE.Message,
		Description: errorMsg,
	}, err)
}
