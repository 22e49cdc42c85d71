package protocol

import (
	"testing"
	"time"
)

func TestParseAttlogLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want AttlogRecord
		ok   bool
	}{
		{
			name: "full row with mask and temperature",
			line: "7001\t2024-03-01 08:00:00\t0\t1\t0\t0\t0\t0\t36.5",
			want: AttlogRecord{
				PIN:         "7001",
				Timestamp:   time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local),
				Status:      0,
				VerifyType:  1,
				WorkCode:    "0",
				MaskFlag:    0,
				Temperature: 36.5,
			},
			ok: true,
		},
		{
			name: "short row defaults mask and temperature to sentinel",
			line: "42\t2024-03-01 17:30:00\t1\t4",
			want: AttlogRecord{
				PIN:         "42",
				Timestamp:   time.Date(2024, 3, 1, 17, 30, 0, 0, time.Local),
				Status:      1,
				VerifyType:  4,
				MaskFlag:    255,
				Temperature: 255,
			},
			ok: true,
		},
		{
			name: "garbage numeric fields fall back instead of failing",
			line: "42\t2024-03-01 17:30:00\tx\ty",
			want: AttlogRecord{
				PIN:         "42",
				Timestamp:   time.Date(2024, 3, 1, 17, 30, 0, 0, time.Local),
				MaskFlag:    255,
				Temperature: 255,
			},
			ok: true,
		},
		{
			name: "bad timestamp rejects the line",
			line: "42\tnot-a-time\t0\t1",
			ok:   false,
		},
		{
			name: "missing pin rejects the line",
			line: "\t2024-03-01 17:30:00",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseAttlogLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseAttlogLine() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseAttlogLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseAttlogSkipsMalformedSiblings(t *testing.T) {
	body := "7001\t2024-03-01 08:00:00\t0\t1\n" +
		"broken line without tabs\n" +
		"7002\t2024-03-01 08:05:00\t0\t1\r\n" +
		"\n"

	records, skipped := ParseAttlog(body)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if records[0].PIN != "7001" || records[1].PIN != "7002" {
		t.Errorf("unexpected PINs: %s, %s", records[0].PIN, records[1].PIN)
	}
}
