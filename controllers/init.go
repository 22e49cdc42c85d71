package controllers

import "crewpush/app/services"

var (
	DeviceSvc  *services.DeviceService
	CommandSvc *services.CommandService
	IngestSvc  *services.IngestService
	Uploads    *services.UploadStore
)

// Init wires the controller package once at process start; handlers
// hold no other state.
func Init(dSvc *services.DeviceService, cSvc *services.CommandService, iSvc *services.IngestService, uploads *services.UploadStore) {
	DeviceSvc = dSvc
	CommandSvc = cSvc
	IngestSvc = iSvc
	Uploads = uploads
}
