package services

import (
	"strings"
	"testing"
	"time"

	"crewpush/app/models"
)

func TestRegisterOrTouchCreatesWithDefaults(t *testing.T) {
	db := newTestDB(t)
	devSvc, _, _, _, _ := newServices(t, db)

	d, err := devSvc.RegisterOrTouch("SN999", "10.0.0.5", "69", "2.4.1", "")
	if err != nil {
		t.Fatalf("RegisterOrTouch: %v", err)
	}
	if d.AttlogStamp != "0" || d.OperlogStamp != "0" || d.BiodataStamp != "0" {
		t.Errorf("checkpoints not defaulted to 0: %+v", d)
	}
	if d.State != models.StateOnline {
		t.Errorf("State = %s, want ONLINE", d.State)
	}

	// registration queues the initial INFO request
	var cmds []models.DeviceCommand
	db.Where("device_sn = ?", "SN999").Find(&cmds)
	if len(cmds) != 1 || !strings.Contains(cmds[0].Content, "INFO") {
		t.Errorf("INFO command not queued: %+v", cmds)
	}
}

func TestTouchDoesNotResetCheckpoints(t *testing.T) {
	db := newTestDB(t)
	devSvc, _, _, _, _ := newServices(t, db)

	if _, err := devSvc.RegisterOrTouch("SN1", "10.0.0.5", "", "2.4.1", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := devSvc.AdvanceStamp("SN1", "ATTLOGStamp", "4242"); err != nil {
		t.Fatalf("AdvanceStamp: %v", err)
	}

	if _, err := devSvc.RegisterOrTouch("SN1", "10.0.0.9", "", "", ""); err != nil {
		t.Fatalf("touch: %v", err)
	}

	d, err := devSvc.GetBySerial("SN1")
	if err != nil {
		t.Fatalf("GetBySerial: %v", err)
	}
	if d.AttlogStamp != "4242" {
		t.Errorf("AttlogStamp = %q, want 4242 (touch must not reset)", d.AttlogStamp)
	}
	if d.IPAddress != "10.0.0.9" {
		t.Errorf("IPAddress = %q, want refreshed", d.IPAddress)
	}
	if d.PushVersion != "2.4.1" {
		t.Errorf("PushVersion = %q, empty touch value must not clear it", d.PushVersion)
	}
}

func TestAdvanceStampUnknownStreamIgnored(t *testing.T) {
	db := newTestDB(t)
	devSvc, _, _, _, _ := newServices(t, db)
	if _, err := devSvc.RegisterOrTouch("SN1", "10.0.0.5", "", "", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := devSvc.AdvanceStamp("SN1", "NotAStream", "7"); err != nil {
		t.Fatalf("AdvanceStamp: %v", err)
	}
	d, _ := devSvc.GetBySerial("SN1")
	if d.AttlogStamp != "0" {
		t.Errorf("unknown stream advanced a stamp: %+v", d)
	}
}

func TestApplyInfoReportPartial(t *testing.T) {
	db := newTestDB(t)
	devSvc, _, _, _, _ := newServices(t, db)
	if _, err := devSvc.RegisterOrTouch("SN1", "10.0.0.5", "", "", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	// transaction count is unparseable; the rest still applies
	raw := "Ver 6.60,12,30,bad,10.0.0.5,10.0,7.0,3,10100"
	if err := devSvc.ApplyInfoReport("SN1", raw); err != nil {
		t.Fatalf("ApplyInfoReport: %v", err)
	}

	d, _ := devSvc.GetBySerial("SN1")
	if d.FirmwareVersion != "Ver 6.60" {
		t.Errorf("FirmwareVersion = %q", d.FirmwareVersion)
	}
	if d.FpVersion != "10.0" || d.FaceVersion != "7.0" {
		t.Errorf("algorithm versions = %q/%q", d.FpVersion, d.FaceVersion)
	}
	if d.UserCount != 12 || d.FingerprintCount != 30 || d.FaceCount != 3 {
		t.Errorf("counts = %d/%d/%d", d.UserCount, d.FingerprintCount, d.FaceCount)
	}
	if d.TransactionCount != 0 {
		t.Errorf("TransactionCount = %d, want untouched 0", d.TransactionCount)
	}
	if d.DevFuns != "10100" {
		t.Errorf("DevFuns = %q", d.DevFuns)
	}
}

func TestApplyInfoReportUnknownDevice(t *testing.T) {
	db := newTestDB(t)
	devSvc, _, _, _, _ := newServices(t, db)

	if err := devSvc.ApplyInfoReport("GHOST", "Ver 6.60,1"); err == nil {
		t.Error("want error for unregistered serial")
	}
}

func TestEffectiveStateProjection(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		d    models.Device
		want models.DeviceState
	}{
		{"recent activity keeps stored state", models.Device{State: models.StateOnline, LastActivity: now.Add(-time.Minute)}, models.StateOnline},
		{"stale activity projects offline", models.Device{State: models.StateOnline, LastActivity: now.Add(-11 * time.Minute)}, models.StateOffline},
		{"exactly at threshold keeps stored state", models.Device{State: models.StateOnline, LastActivity: now.Add(-models.StaleAfter)}, models.StateOnline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.EffectiveState(now); got != tt.want {
				t.Errorf("EffectiveState = %s, want %s", got, tt.want)
			}
		})
	}
}
