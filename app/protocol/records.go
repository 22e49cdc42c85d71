package protocol

import "strings"

// UserRecord is a USER line from an OPERLOG upload (device-side
// enrollment reporting back).
type UserRecord struct {
	PIN       string
	Name      string
	Privilege int
	Password  string
	Card      string
	Grp       string
	TimeZone  string
}

// TemplateRecord is an FP/FACE/BIODATA template line. The template
// payload itself is opaque to the server.
type TemplateRecord struct {
	PIN       string
	SlotIndex int
	Type      int
	Version   string
	Valid     int
	Template  string
}

// PhotoRecord is a USERPIC line carrying a base64 photo inline.
type PhotoRecord struct {
	PIN      string
	FileName string
	Size     int
	Content  string
}

// Biometric type codes as reported in BIODATA Type= fields.
const (
	BioTypeFingerprint = 1
	BioTypeFace        = 2
	BioTypeBioPhoto    = 9
)

// OperlogBatch is the routed content of one OPERLOG upload.
type OperlogBatch struct {
	Users     []UserRecord
	Templates []TemplateRecord
	OpLogs    int // operation log lines are counted, not stored
	Skipped   int
}

// ParseOperlog routes each OPERLOG line by its leading record tag
// (USER, FP, FACE, OPLOG). Unknown tags are skipped, not fatal.
func ParseOperlog(body string) OperlogBatch {
	var batch OperlogBatch
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tag, rest, found := strings.Cut(line, " ")
		if !found {
			tag = line
			rest = ""
		}
		switch tag {
		case "USER":
			u, ok := parseUserLine(rest)
			if !ok {
				batch.Skipped++
				continue
			}
			batch.Users = append(batch.Users, u)
		case "FP":
			t, ok := parseTemplateLine(rest, BioTypeFingerprint)
			if !ok {
				batch.Skipped++
				continue
			}
			batch.Templates = append(batch.Templates, t)
		case "FACE":
			t, ok := parseTemplateLine(rest, BioTypeFace)
			if !ok {
				batch.Skipped++
				continue
			}
			batch.Templates = append(batch.Templates, t)
		case "OPLOG":
			batch.OpLogs++
		default:
			batch.Skipped++
		}
	}
	return batch
}

func parseUserLine(rest string) (UserRecord, bool) {
	f := parseFields(rest, userSchema)
	if f["pin"] == "" {
		return UserRecord{}, false
	}
	return UserRecord{
		PIN:       f["pin"],
		Name:      f["name"],
		Privilege: atoiDefault(f["privilege"], 0),
		Password:  f["password"],
		Card:      f["card"],
		Grp:       f["group"],
		TimeZone:  f["timezone"],
	}, true
}

func parseTemplateLine(rest string, bioType int) (TemplateRecord, bool) {
	f := parseFields(rest, templateSchema)
	if f["pin"] == "" || f["template"] == "" {
		return TemplateRecord{}, false
	}
	return TemplateRecord{
		PIN:       f["pin"],
		SlotIndex: atoiDefault(f["index"], 0),
		Type:      bioType,
		Valid:     atoiDefault(f["valid"], 1),
		Template:  f["template"],
	}, true
}

// ParseUserpic decodes USERPIC lines (inline base64 photos).
func ParseUserpic(body string) (photos []PhotoRecord, skipped int) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := parseFields(line, userpicSchema)
		if f["pin"] == "" || f["content"] == "" {
			skipped++
			continue
		}
		photos = append(photos, PhotoRecord{
			PIN:      f["pin"],
			FileName: f["filename"],
			Size:     atoiDefault(f["size"], 0),
			Content:  f["content"],
		})
	}
	return photos, skipped
}

// ParseBiodata decodes BIODATA lines (versioned templates).
func ParseBiodata(body string) (templates []TemplateRecord, skipped int) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := parseFields(line, biodataSchema)
		if f["pin"] == "" || f["template"] == "" {
			skipped++
			continue
		}
		templates = append(templates, TemplateRecord{
			PIN:       f["pin"],
			SlotIndex: atoiDefault(f["index"], atoiDefault(f["no"], 0)),
			Type:      atoiDefault(f["type"], BioTypeFingerprint),
			Version:   f["majorver"] + "." + f["minorver"],
			Valid:     atoiDefault(f["valid"], 1),
			Template:  f["template"],
		})
	}
	return templates, skipped
}
