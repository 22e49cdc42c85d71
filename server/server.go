package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crewpush/controllers"
)

// Routes builds the full handler mux: the device-facing push protocol
// endpoints, the crew-sync and device-admin APIs and metrics.
func Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/iclock/cdata", controllers.HandleCdata)
	mux.HandleFunc("/iclock/getrequest", controllers.HandleGetRequest)
	mux.HandleFunc("/iclock/devicecmd", controllers.HandleDeviceCmd)
	mux.HandleFunc("/api/sync", controllers.HandleSyncUser)
	mux.HandleFunc("/api/devices/command", controllers.HandleDeviceCommand)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func New(addr string) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: Routes(),
	}
}
