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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wso2/entity-tokenization-service/internal/merkle/model"
	"github.com/wso2/entity-tokenization-service/internal/merkle/provider"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	errors2 "github.com/wso2/entity-tokenization-service/internal/system/errors"
	"github.com/wso2/entity-tokenization-service/internal/system/utils"
)

// MerkleHandler handles HTTP requests for audit roots and inclusion proofs.
type MerkleHandler struct{}

func NewMerkleHandler() *MerkleHandler {
	return &MerkleHandler{}
}

// GetItemRoot handles GET /merkle/items/{dfid}/merkle-root.
func (h *MerkleHandler) GetItemRoot(w http.ResponseWriter, r *http.Request) {

	dfid, _ := merklePathIDs(r.URL.Path, constants.ItemsApiPath)
	merkleService := provider.NewMerkleProvider().GetMerkleService()
	root, err := merkleService.GetItemRoot(dfid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, root)
}

// GetItemProof handles GET /merkle/items/{dfid}/merkle-proof/{eventId}.
func (h *MerkleHandler) GetItemProof(w http.ResponseWriter, r *http.Request) {

	dfid, eventID := merklePathIDs(r.URL.Path, constants.ItemsApiPath)
	merkleService := provider.NewMerkleProvider().GetMerkleService()
	proof, err := merkleService.ProveEventInItem(dfid, eventID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, proof)
}

// GetCircuitRoot handles GET /merkle/circuits/{id}/merkle-root.
func (h *MerkleHandler) GetCircuitRoot(w http.ResponseWriter, r *http.Request) {

	circuitID, _ := merklePathIDs(r.URL.Path, constants.CircuitsApiPath)
	merkleService := provider.NewMerkleProvider().GetMerkleService()
	root, err := merkleService.GetCircuitRoot(circuitID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, root)
}

// GetCircuitProof handles GET /merkle/circuits/{id}/merkle-proof/{dfid}.
func (h *MerkleHandler) GetCircuitProof(w http.ResponseWriter, r *http.Request) {

	circuitID, dfid := merklePathIDs(r.URL.Path, constants.CircuitsApiPath)
	merkleService := provider.NewMerkleProvider().GetMerkleService()
	proof, err := merkleService.ProveItemInCircuit(circuitID, dfid)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, proof)
}

// VerifyProof handles POST /merkle/verify-proof.
func (h *MerkleHandler) VerifyProof(w http.ResponseWriter, r *http.Request) {

	var req model.VerifyProofRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "proof"),
		}, http.StatusBadRequest))
		return
	}

	merkleService := provider.NewMerkleProvider().GetMerkleService()
	utils.RespondJSON(w, http.StatusOK, model.VerifyProofResponse{
		Valid: merkleService.VerifyProof(req),
	})
}

// merklePathIDs extracts the subject id and the optional proof target id
// from /merkle/{scope}/{id}/merkle-.../{targetId} paths.
func merklePathIDs(path, scope string) (string, string) {

	rest := strings.TrimPrefix(path, "/"+constants.MerkleApiPath+"/"+scope+"/")
	segments := strings.Split(rest, "/")
	id := segments[0]
	if len(segments) >= 3 {
		return id, segments[2]
	}
	return id, ""
}
