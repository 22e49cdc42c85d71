package protocol

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"crewpush/app/models"
)

// DEV_FUNS bit positions. A mask shorter than the queried position
// means unsupported, never an error.
const (
	CapFingerprint = 0
	CapFace        = 1
	CapUserPic     = 2
	CapBioPhoto    = 3
	CapBioData     = 4
)

func Supports(devFuns string, pos int) bool {
	return pos >= 0 && pos < len(devFuns) && devFuns[pos] == '1'
}

// Command string templates, one per outbound command kind.

func UpdateUserCommand(pin, name string, privilege int, password, card, grp, tz string) string {
	return fmt.Sprintf("DATA UPDATE USERINFO PIN=%s\tName=%s\tPri=%d\tPasswd=%s\tCard=%s\tGrp=%s\tTZ=%s",
		pin, name, privilege, password, card, grp, tz)
}

func UpdateUserPicCommand(pin, fileName string, size int, content string) string {
	return fmt.Sprintf("DATA UPDATE USERPIC PIN=%s\tFileName=%s\tSize=%d\tContent=%s",
		pin, fileName, size, content)
}

func UpdateBioPhotoCommand(pin string, size int, content string) string {
	return fmt.Sprintf("DATA UPDATE BIOPHOTO PIN=%s\tType=%d\tSize=%d\tContent=%s",
		pin, BioTypeBioPhoto, size, content)
}

func DeleteUserCommand(pin string) string {
	return fmt.Sprintf("DATA DELETE USERINFO PIN=%s", pin)
}

const (
	ClearDataCommand = "CLEAR DATA"
	RebootCommand    = "REBOOT"
	InfoCommand      = "INFO"
)

// FormatReply serializes drained commands into a getrequest response
// body, one C:<id>:<content> block per command.
func FormatReply(cmds []models.DeviceCommand) string {
	var b strings.Builder
	for _, c := range cmds {
		fmt.Fprintf(&b, "C:%d:%s\n", c.ID, c.Content)
	}
	return b.String()
}

// CommandReturn is one ID=..&Return=..&CMD=.. acknowledgement line.
type CommandReturn struct {
	ID     uint
	Return string
	CMD    string
}

// ParseCommandReturns decodes acknowledgement lines from a devicecmd
// body. Lines that do not parse are dropped, not fatal.
func ParseCommandReturns(body string) []CommandReturn {
	var out []CommandReturn
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		vals, err := url.ParseQuery(line)
		if err != nil {
			continue
		}
		id, err := strconv.ParseUint(vals.Get("ID"), 10, 32)
		if err != nil {
			continue
		}
		out = append(out, CommandReturn{
			ID:     uint(id),
			Return: vals.Get("Return"),
			CMD:    vals.Get("CMD"),
		})
	}
	return out
}
