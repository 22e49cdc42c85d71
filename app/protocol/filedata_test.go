package protocol

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestReadFileUploadBinaryContent(t *testing.T) {
	// JPEG-ish bytes with embedded newlines; line splitting would
	// truncate this.
	content := []byte{0xFF, 0xD8, '\n', 0x00, '\r', '\n', 0x12, 0xFF, 0xD9}
	body := append([]byte("PIN=7001\tFileName=7001.jpg\tSize=9\tType=10\nContent="), content...)

	fu, err := ReadFileUpload(bufio.NewReader(bytes.NewReader(body)))
	if err != nil {
		t.Fatalf("ReadFileUpload: %v", err)
	}
	if fu.PIN != "7001" || fu.FileName != "7001.jpg" || fu.Size != 9 {
		t.Errorf("unexpected header: %+v", fu)
	}
	got, err := io.ReadAll(fu.Content)
	if err != nil {
		t.Fatalf("read content: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content %v, want %v", got, content)
	}
}

func TestReadFileUploadMissingMarker(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("PIN=7001\tFileName=x.jpg"))
	if _, err := ReadFileUpload(br); err == nil {
		t.Fatal("want error for missing Content= marker")
	}
}

func TestReadFileUploadHeaderTooLong(t *testing.T) {
	long := strings.Repeat("A", MaxFileHeaderBytes+1) + "Content=x"
	br := bufio.NewReader(strings.NewReader(long))
	if _, err := ReadFileUpload(br); err == nil {
		t.Fatal("want error for oversized header")
	}
}

func TestIsFileUpload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"file upload", "PIN=1\tFileName=a.jpg\nContent=\xff\xd8", true},
		{"command return", "ID=3&Return=0&CMD=DATA", false},
		{"return mentioning content", "ID=3&Return=0&CMD=DATA Content=x", false},
		{"binary content containing return bytes", "PIN=1\tFileName=a.bin\nContent=\x00Return=9\xff", true},
		{"plain text", "OK", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFileUpload([]byte(tt.body)); got != tt.want {
				t.Errorf("IsFileUpload = %v, want %v", got, tt.want)
			}
		})
	}
}
