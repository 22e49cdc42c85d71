package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"crewpush/app/models"
)

// ServerVersion is reported to v2 devices in the option block.
const ServerVersion = "2.4.1"

// IsV2 reports whether the device speaks push protocol 2.x or later,
// which changes the stamp field names in the option block.
func IsV2(pushVersion string) bool {
	major, _, _ := strings.Cut(pushVersion, ".")
	n, err := strconv.Atoi(strings.TrimSpace(major))
	if err != nil {
		return false
	}
	return n >= 2
}

// BuildOptionsReply renders the checkpoint/option block answered to
// GET /iclock/cdata?options=all.
func BuildOptionsReply(d *models.Device) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GET OPTION FROM: %s\r\n", d.SerialNumber)

	if IsV2(d.PushVersion) {
		fmt.Fprintf(&b, "ATTLOGStamp=%s\r\n", d.AttlogStamp)
		fmt.Fprintf(&b, "OPERLOGStamp=%s\r\n", d.OperlogStamp)
		fmt.Fprintf(&b, "ATTPHOTOStamp=%s\r\n", d.AttphotoStamp)
		fmt.Fprintf(&b, "BIODATAStamp=%s\r\n", d.BiodataStamp)
		fmt.Fprintf(&b, "IDCARDStamp=%s\r\n", d.IdcardStamp)
		fmt.Fprintf(&b, "ERRORLOGStamp=%s\r\n", d.ErrorlogStamp)
	} else {
		fmt.Fprintf(&b, "Stamp=%s\r\n", d.AttlogStamp)
		fmt.Fprintf(&b, "OpStamp=%s\r\n", d.OperlogStamp)
		fmt.Fprintf(&b, "PhotoStamp=%s\r\n", d.AttphotoStamp)
	}

	b.WriteString("ErrorDelay=30\r\n")
	b.WriteString("Delay=10\r\n")
	b.WriteString("TransTimes=00:00;14:05\r\n")
	b.WriteString("TransInterval=1\r\n")
	if IsV2(d.PushVersion) {
		b.WriteString("TransFlag=TransData AttLog\tOpLog\tAttPhoto\tEnrollUser\tChgUser\tEnrollFP\tChgFP\tUserPic\r\n")
	} else {
		b.WriteString("TransFlag=111111111111\r\n")
	}
	fmt.Fprintf(&b, "TimeZone=%d\r\n", EncodeTimeZone(d.TimeZone))
	b.WriteString("Realtime=1\r\n")
	b.WriteString("Encrypt=None\r\n")
	if IsV2(d.PushVersion) {
		fmt.Fprintf(&b, "ServerVer=%s\r\n", ServerVersion)
		fmt.Fprintf(&b, "PushProtVer=%s\r\n", ServerVersion)
	}
	return b.String()
}

// EncodeTimeZone converts a stored "+HHMM"-style offset into the
// integer form the option block uses: whole hours when the offset is
// on the hour, otherwise total signed minutes.
func EncodeTimeZone(tz string) int {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return 0
	}
	sign := 1
	switch tz[0] {
	case '+':
		tz = tz[1:]
	case '-':
		sign = -1
		tz = tz[1:]
	}
	if len(tz) < 4 {
		return 0
	}
	hh, err1 := strconv.Atoi(tz[:2])
	mm, err2 := strconv.Atoi(tz[2:4])
	if err1 != nil || err2 != nil {
		return 0
	}
	if mm == 0 {
		return sign * hh
	}
	return sign * (hh*60 + mm)
}
