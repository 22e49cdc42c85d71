package protocol

import (
	"strconv"
	"strings"
)

// InfoReport is the parsed INFO response a device sends on
// getrequest. Numeric fields are pointers so an unparseable value
// aborts only that field, not the whole report.
type InfoReport struct {
	FirmwareVersion  string
	UserCount        *int
	FingerprintCount *int
	TransactionCount *int
	IPAddress        string
	FpVersion        string
	FaceVersion      string
	FaceCount        *int
	DevFuns          string
}

// ParseInfoReport decodes the comma-separated positional INFO value:
// firmware, user count, fp count, transaction count, IP, fp version,
// face version, face count, DEV_FUNS.
func ParseInfoReport(raw string) InfoReport {
	f := strings.Split(raw, ",")
	get := func(i int) string {
		if i < len(f) {
			return strings.TrimSpace(f[i])
		}
		return ""
	}

	rep := InfoReport{
		FirmwareVersion: get(0),
		IPAddress:       get(4),
		FpVersion:       get(5),
		FaceVersion:     get(6),
		DevFuns:         get(8),
	}
	rep.UserCount = parseCount(get(1))
	rep.FingerprintCount = parseCount(get(2))
	rep.TransactionCount = parseCount(get(3))
	rep.FaceCount = parseCount(get(7))
	return rep
}

func parseCount(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
