package protocol

import (
	"strings"
	"time"
)

// AttlogRecord is one punch from an ATTLOG upload. Fields are
// positional: PIN, timestamp, status, verify type, work code, two
// reserved columns, mask flag, temperature.
type AttlogRecord struct {
	PIN         string
	Timestamp   time.Time
	Status      int
	VerifyType  int
	WorkCode    string
	MaskFlag    int
	Temperature float64
}

const attlogTimeLayout = "2006-01-02 15:04:05"

// ParseAttlog decodes every well-formed line of an ATTLOG body. A
// malformed line is dropped without aborting its siblings; the skipped
// count is returned so the caller can log it.
func ParseAttlog(body string) (records []AttlogRecord, skipped int) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, ok := parseAttlogLine(line)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

func parseAttlogLine(line string) (AttlogRecord, bool) {
	f := strings.Split(line, "\t")
	if len(f) < 2 {
		return AttlogRecord{}, false
	}
	pin := strings.TrimSpace(f[0])
	if pin == "" {
		return AttlogRecord{}, false
	}
	ts, err := time.ParseInLocation(attlogTimeLayout, strings.TrimSpace(f[1]), time.Local)
	if err != nil {
		return AttlogRecord{}, false
	}

	rec := AttlogRecord{
		PIN:         pin,
		Timestamp:   ts,
		MaskFlag:    255,
		Temperature: 255,
	}
	if len(f) > 2 {
		rec.Status = atoiDefault(f[2], 0)
	}
	if len(f) > 3 {
		rec.VerifyType = atoiDefault(f[3], 0)
	}
	if len(f) > 4 {
		rec.WorkCode = strings.TrimSpace(f[4])
	}
	// f[5] and f[6] are reserved columns.
	if len(f) > 7 {
		rec.MaskFlag = atoiDefault(f[7], 255)
	}
	if len(f) > 8 {
		rec.Temperature = atofDefault(f[8], 255)
	}
	return rec, true
}
