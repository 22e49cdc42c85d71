package protocol

import (
	"strconv"
	"strings"
)

// fieldSpec maps a canonical field name to the raw key prefixes
// devices are known to send for it. Firmware lines vary the key
// casing (PIN= vs Pin=), so every accepted variant is listed here
// instead of being special-cased at the call sites.
type fieldSpec struct {
	name     string
	prefixes []string
}

var userSchema = []fieldSpec{
	{"pin", []string{"PIN=", "Pin="}},
	{"name", []string{"Name="}},
	{"privilege", []string{"Pri=", "Privilege="}},
	{"password", []string{"Passwd=", "Password="}},
	{"card", []string{"Card="}},
	{"group", []string{"Grp=", "Group="}},
	{"timezone", []string{"TZ=", "TimeZone="}},
}

var templateSchema = []fieldSpec{
	{"pin", []string{"PIN=", "Pin="}},
	{"index", []string{"FID=", "Index="}},
	{"size", []string{"Size="}},
	{"valid", []string{"Valid="}},
	{"template", []string{"TMP=", "Template="}},
}

var userpicSchema = []fieldSpec{
	{"pin", []string{"PIN=", "Pin="}},
	{"filename", []string{"FileName="}},
	{"size", []string{"Size="}},
	{"content", []string{"Content="}},
}

var biodataSchema = []fieldSpec{
	{"pin", []string{"PIN=", "Pin="}},
	{"no", []string{"No="}},
	{"index", []string{"Index="}},
	{"valid", []string{"Valid="}},
	{"duress", []string{"Duress="}},
	{"type", []string{"Type="}},
	{"majorver", []string{"MajorVer="}},
	{"minorver", []string{"MinorVer="}},
	{"format", []string{"Format="}},
	{"template", []string{"TMP=", "Template="}},
}

var fileHeaderSchema = []fieldSpec{
	{"pin", []string{"PIN=", "Pin="}},
	{"sn", []string{"SN="}},
	{"filename", []string{"FileName="}},
	{"size", []string{"Size="}},
	{"type", []string{"Type="}},
	{"cmdid", []string{"CMDID="}},
}

// parseFields splits a tab-separated record line and resolves each
// token against the schema. The first matching spec wins; repeated
// keys keep the first value seen.
func parseFields(line string, schema []fieldSpec) map[string]string {
	out := make(map[string]string)
	for _, tok := range strings.Split(line, "\t") {
		for _, spec := range schema {
			v, ok := matchPrefix(tok, spec.prefixes)
			if !ok {
				continue
			}
			if _, seen := out[spec.name]; !seen {
				out[spec.name] = v
			}
			break
		}
	}
	return out
}

func matchPrefix(tok string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(tok, p) {
			return tok[len(p):], true
		}
	}
	return "", false
}

// atoiDefault parses an int field, falling back to the table's
// documented sentinel instead of failing the record.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func atofDefault(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}
