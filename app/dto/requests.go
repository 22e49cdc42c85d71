package dto

// SyncUserRequest pushes one crew member to a terminal.
type SyncUserRequest struct {
	DeviceSN  string `json:"device_sn"`
	PIN       string `json:"pin"`
	Name      string `json:"name"`
	Privilege int    `json:"privilege"`
	Card      string `json:"card,omitempty"`
	Group     string `json:"group,omitempty"`
	TimeZone  string `json:"time_zone,omitempty"`
	PhotoPath string `json:"photo_path,omitempty"`
}

type SyncUserResponse struct {
	CommandIDs []uint `json:"command_ids"`
}

// DeviceCommandRequest queues one maintenance command for a
// terminal's next poll.
type DeviceCommandRequest struct {
	DeviceSN string `json:"device_sn"`
	Action   string `json:"action"`
	PIN      string `json:"pin,omitempty"`
}

type DeviceCommandResponse struct {
	CommandID uint `json:"command_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
