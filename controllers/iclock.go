package controllers

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"

	"crewpush/app/protocol"
)

// Known stamp query keys, checked in a fixed order on every upload.
var stampKeys = []string{
	"ATTLOGStamp", "Stamp",
	"OPERLOGStamp", "OpStamp",
	"ATTPHOTOStamp", "PhotoStamp",
	"BIODATAStamp", "IDCARDStamp", "ERRORLOGStamp",
}

func plain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, body)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// HandleCdata serves GET /iclock/cdata (capability negotiation and
// remote attendance) and POST /iclock/cdata (table uploads).
func HandleCdata(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sn := q.Get("SN")
	if sn == "" {
		plain(w, "error")
		return
	}

	switch r.Method {
	case http.MethodGet:
		handleCdataGet(w, r, sn)
	case http.MethodPost:
		handleCdataPost(w, r, sn)
	default:
		plain(w, "error")
	}
}

func handleCdataGet(w http.ResponseWriter, r *http.Request, sn string) {
	q := r.URL.Query()

	if q.Get("options") == "all" {
		d, err := DeviceSvc.RegisterOrTouch(sn, clientIP(r),
			q.Get("language"), q.Get("pushver"), q.Get("PushOptionsFlag"))
		if err != nil {
			log.Printf("[Server] register %s failed: %v", sn, err)
			plain(w, "error")
			return
		}
		plain(w, protocol.BuildOptionsReply(d))
		return
	}

	if q.Get("table") == "RemoteAtt" {
		// remote attendance trigger is a pass-through for now
		log.Printf("[Server] remote attendance request for PIN %s on %s", q.Get("PIN"), sn)
		plain(w, "OK")
		return
	}

	plain(w, "OK")
}

func handleCdataPost(w http.ResponseWriter, r *http.Request, sn string) {
	q := r.URL.Query()
	table := q.Get("table")

	if _, err := DeviceSvc.RegisterOrTouch(sn, clientIP(r), "", "", ""); err != nil {
		log.Printf("[Server] touch %s failed: %v", sn, err)
		plain(w, "error")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		plain(w, "error")
		return
	}

	result, err := IngestSvc.HandleUpload(sn, table, body)
	if err != nil {
		// durable write failed; the device retries the upload and the
		// dedup key absorbs the replayed rows
		log.Printf("[Ingest] upload %s from %s failed: %v", table, sn, err)
		plain(w, "error")
		return
	}

	for _, key := range stampKeys {
		if v := q.Get(key); v != "" {
			if err := DeviceSvc.AdvanceStamp(sn, key, v); err != nil {
				log.Printf("[Server] stamp %s for %s not advanced: %v", key, sn, err)
			}
		}
	}

	if result.HasDuplicate() {
		plain(w, "error")
		return
	}
	plain(w, "OK")
}

// HandleGetRequest drains pending commands for one device poll.
func HandleGetRequest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sn := q.Get("SN")
	if sn == "" {
		plain(w, "error")
		return
	}

	if _, err := DeviceSvc.RegisterOrTouch(sn, clientIP(r), "", "", ""); err != nil {
		log.Printf("[Server] touch %s failed: %v", sn, err)
		plain(w, "error")
		return
	}

	if info := q.Get("INFO"); info != "" {
		if err := DeviceSvc.ApplyInfoReport(sn, info); err != nil {
			// expected for racing unregistered serials; device still gets its drain
			log.Printf("[Server] INFO from %s not applied: %v", sn, err)
		}
	}

	cmds, err := CommandSvc.DrainPending(sn)
	if err != nil {
		log.Printf("[Queue] drain for %s failed: %v", sn, err)
		plain(w, "error")
		return
	}
	if len(cmds) == 0 {
		plain(w, "OK")
		return
	}
	plain(w, protocol.FormatReply(cmds))
}

// HandleDeviceCmd applies command returns or stores a file upload.
func HandleDeviceCmd(w http.ResponseWriter, r *http.Request) {
	sn := r.URL.Query().Get("SN")
	if sn == "" {
		plain(w, "Error")
		return
	}

	// Classify from a bounded prefix; file bodies can carry
	// multi-megabyte templates and are streamed, never read whole.
	br := bufio.NewReaderSize(r.Body, protocol.MaxFileHeaderBytes)
	prefix, err := br.Peek(protocol.MaxFileHeaderBytes)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		plain(w, "Error")
		return
	}

	if protocol.IsFileUpload(prefix) {
		fu, err := protocol.ReadFileUpload(br)
		if err != nil {
			log.Printf("[Server] bad file upload from %s: %v", sn, err)
			plain(w, "Error")
			return
		}
		path, n, err := Uploads.Save(sn, fu)
		if err != nil {
			log.Printf("[Server] storing upload from %s failed: %v", sn, err)
			plain(w, "Error")
			return
		}
		log.Printf("[Server] stored %s (%d bytes) from %s", path, n, sn)
		plain(w, "OK")
		return
	}

	body, err := io.ReadAll(br)
	if err != nil {
		plain(w, "Error")
		return
	}

	returns := protocol.ParseCommandReturns(string(body))
	for _, ret := range returns {
		CommandSvc.ApplyReturn(ret)
	}
	if t := strings.TrimSpace(string(body)); t != "" && len(returns) == 0 {
		log.Printf("[Server] devicecmd body from %s had no parseable returns", sn)
	}
	plain(w, "OK")
}
