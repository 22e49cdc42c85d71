package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"crewpush/app/dto"
	"crewpush/app/models"
)

// HandleDeviceCommand queues a maintenance command (delete-user,
// clear-data, reboot) for a terminal's next poll.
func HandleDeviceCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "POST required"})
		return
	}

	var req dto.DeviceCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}
	if req.DeviceSN == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "device_sn is required"})
		return
	}

	var cmd *models.DeviceCommand
	var err error
	switch req.Action {
	case "delete-user":
		if req.PIN == "" {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "pin is required for delete-user"})
			return
		}
		cmd, err = CommandSvc.DeleteUser(req.DeviceSN, req.PIN)
	case "clear-data":
		cmd, err = CommandSvc.ClearData(req.DeviceSN)
	case "reboot":
		cmd, err = CommandSvc.Reboot(req.DeviceSN)
	default:
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "unknown action"})
		return
	}
	if err != nil {
		log.Printf("[Admin] %s for %s failed: %v", req.Action, req.DeviceSN, err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "queue failed"})
		return
	}
	writeJSON(w, http.StatusOK, dto.DeviceCommandResponse{CommandID: cmd.ID})
}
