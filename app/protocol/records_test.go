package protocol

import "testing"

func TestParseFieldsPrefixVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		key  string
		want string
	}{
		{"uppercase PIN", "PIN=7001\tName=Ana", "pin", "7001"},
		{"mixed-case Pin", "Pin=7001\tName=Ana", "pin", "7001"},
		{"key order does not matter", "Name=Ana\tPIN=7001", "pin", "7001"},
		{"first occurrence wins", "PIN=1\tPin=2", "pin", "1"},
		{"unknown keys ignored", "Bogus=1\tPIN=7001", "pin", "7001"},
		{"missing key yields empty", "Name=Ana", "pin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFields(tt.line, userSchema)[tt.key]
			if got != tt.want {
				t.Errorf("parseFields()[%q] = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseOperlogRouting(t *testing.T) {
	body := "USER PIN=7001\tName=Herrera\tPri=0\tGrp=1\n" +
		"FP PIN=7001\tFID=2\tSize=1200\tValid=1\tTMP=abc123\n" +
		"FACE PIN=7001\tFID=0\tSize=2400\tValid=1\tTMP=def456\n" +
		"OPLOG 4\t2024-03-01 08:00:00\t7001\n" +
		"WEIRD nonsense\n"

	batch := ParseOperlog(body)

	if len(batch.Users) != 1 {
		t.Fatalf("got %d users, want 1", len(batch.Users))
	}
	u := batch.Users[0]
	if u.PIN != "7001" || u.Name != "Herrera" || u.Grp != "1" {
		t.Errorf("unexpected user: %+v", u)
	}

	if len(batch.Templates) != 2 {
		t.Fatalf("got %d templates, want 2", len(batch.Templates))
	}
	if batch.Templates[0].Type != BioTypeFingerprint || batch.Templates[0].SlotIndex != 2 {
		t.Errorf("unexpected fp template: %+v", batch.Templates[0])
	}
	if batch.Templates[1].Type != BioTypeFace {
		t.Errorf("unexpected face template: %+v", batch.Templates[1])
	}

	if batch.OpLogs != 1 {
		t.Errorf("OpLogs = %d, want 1", batch.OpLogs)
	}
	if batch.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", batch.Skipped)
	}
}

func TestParseUserpic(t *testing.T) {
	body := "PIN=7001\tFileName=7001.jpg\tSize=4\tContent=AAAA\n" +
		"FileName=orphan.jpg\tSize=4\tContent=BBBB\n"

	photos, skipped := ParseUserpic(body)
	if len(photos) != 1 {
		t.Fatalf("got %d photos, want 1", len(photos))
	}
	if photos[0].FileName != "7001.jpg" || photos[0].Content != "AAAA" {
		t.Errorf("unexpected photo: %+v", photos[0])
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestParseBiodata(t *testing.T) {
	body := "Pin=7001\tNo=0\tIndex=6\tValid=1\tDuress=0\tType=9\tMajorVer=5\tMinorVer=8\tFormat=0\tTMP=base64blob\n"

	templates, skipped := ParseBiodata(body)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(templates) != 1 {
		t.Fatalf("got %d templates, want 1", len(templates))
	}
	tmpl := templates[0]
	if tmpl.PIN != "7001" || tmpl.SlotIndex != 6 || tmpl.Type != BioTypeBioPhoto {
		t.Errorf("unexpected template: %+v", tmpl)
	}
	if tmpl.Version != "5.8" {
		t.Errorf("Version = %q, want 5.8", tmpl.Version)
	}
}
