package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"crewpush/app/dto"
)

// HandleSyncUser is the crew-sync API: it queues the user-update
// command set and performs the immediate-execute bookkeeping so the
// commands are queryable before the device's next poll.
func HandleSyncUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "POST required"})
		return
	}

	var req dto.SyncUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}
	if req.DeviceSN == "" || req.PIN == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "device_sn and pin are required"})
		return
	}

	queued, err := CommandSvc.SyncUser(&req, req.DeviceSN)
	if err != nil {
		log.Printf("[Sync] sync of PIN %s to %s failed: %v", req.PIN, req.DeviceSN, err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "sync failed"})
		return
	}

	executed, err := CommandSvc.ExecuteImmediately(queued)
	if err != nil {
		log.Printf("[Sync] immediate execute for %s failed: %v", req.DeviceSN, err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "sync failed"})
		return
	}

	resp := dto.SyncUserResponse{}
	for _, c := range executed {
		resp.CommandIDs = append(resp.CommandIDs, c.ID)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
