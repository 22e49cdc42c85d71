package services

import (
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewpush/app/models"
	"crewpush/app/protocol"
	"crewpush/app/repositories"
)

type DeviceService struct {
	Repo       *repositories.DeviceRepository
	CommandSvc *CommandService
}

func NewDeviceService(repo *repositories.DeviceRepository, cmdSvc *CommandService) *DeviceService {
	return &DeviceService{Repo: repo, CommandSvc: cmdSvc}
}

func (s *DeviceService) GetBySerial(sn string) (*models.Device, error) {
	return s.Repo.GetBySerial(sn)
}

// RegisterOrTouch auto-registers an unseen serial with "0" checkpoints
// and queues an initial INFO command. A seen serial only gets its
// IP/state/activity refreshed; stamp columns are left alone.
func (s *DeviceService) RegisterOrTouch(sn, ip, language, pushVersion, commKey string) (*models.Device, error) {
	d, err := s.Repo.GetBySerial(sn)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		d = &models.Device{
			SerialNumber: sn,
			State:        models.StateOnline,
			IPAddress:    ip,
			Language:     language,
			PushVersion:  pushVersion,
			CommKey:      commKey,
			AttlogStamp:  "0",
			OperlogStamp: "0", AttphotoStamp: "0",
			BiodataStamp: "0", IdcardStamp: "0", ErrorlogStamp: "0",
			LastActivity: now,
		}
		if err := s.Repo.Create(d); err != nil {
			return nil, err
		}
		log.Printf("[Device] registered terminal %s from %s", sn, ip)
		if _, err := s.CommandSvc.RequestInfo(sn); err != nil {
			log.Printf("[Device] could not queue INFO for %s: %v", sn, err)
		}
		return d, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "lookup device %s", sn)
	}

	now := time.Now()
	fields := map[string]interface{}{
		"ip_address":    ip,
		"state":         models.StateOnline,
		"last_activity": now,
	}
	if pushVersion != "" {
		fields["push_version"] = pushVersion
	}
	if language != "" {
		fields["language"] = language
	}
	if err := s.Repo.UpdateFields(sn, fields); err != nil {
		return nil, err
	}
	d.IPAddress = ip
	d.State = models.StateOnline
	d.LastActivity = now
	if pushVersion != "" {
		d.PushVersion = pushVersion
	}
	return d, nil
}

func (s *DeviceService) UpdateState(sn string, state models.DeviceState, at time.Time) error {
	return s.Repo.UpdateFields(sn, map[string]interface{}{
		"state":         state,
		"last_activity": at,
	})
}

// ApplyInfoReport updates firmware, capability mask and counters from
// an INFO response. Unparseable numeric fields are skipped, the rest
// still apply.
func (s *DeviceService) ApplyInfoReport(sn, raw string) error {
	if _, err := s.Repo.GetBySerial(sn); err != nil {
		return errors.Wrapf(err, "INFO for unknown device %s", sn)
	}

	rep := protocol.ParseInfoReport(raw)
	fields := map[string]interface{}{
		"last_activity": time.Now(),
	}
	if rep.FirmwareVersion != "" {
		fields["firmware_version"] = rep.FirmwareVersion
	}
	if rep.FpVersion != "" {
		fields["fp_version"] = rep.FpVersion
	}
	if rep.FaceVersion != "" {
		fields["face_version"] = rep.FaceVersion
	}
	if rep.DevFuns != "" {
		fields["dev_funs"] = rep.DevFuns
	}
	if rep.UserCount != nil {
		fields["user_count"] = *rep.UserCount
	}
	if rep.FingerprintCount != nil {
		fields["fingerprint_count"] = *rep.FingerprintCount
	}
	if rep.TransactionCount != nil {
		fields["transaction_count"] = *rep.TransactionCount
	}
	if rep.FaceCount != nil {
		fields["face_count"] = *rep.FaceCount
	}
	return s.Repo.UpdateFields(sn, fields)
}

// stampColumns whitelists which stream cursors a device upload may
// advance.
var stampColumns = map[string]string{
	"ATTLOGStamp":   "attlog_stamp",
	"Stamp":         "attlog_stamp",
	"OPERLOGStamp":  "operlog_stamp",
	"OpStamp":       "operlog_stamp",
	"ATTPHOTOStamp": "attphoto_stamp",
	"PhotoStamp":    "attphoto_stamp",
	"BIODATAStamp":  "biodata_stamp",
	"IDCARDStamp":   "idcard_stamp",
	"ERRORLOGStamp": "errorlog_stamp",
}

// AdvanceStamp overwrites one checkpoint with a newer server-observed
// value. No other code path touches stamp columns.
func (s *DeviceService) AdvanceStamp(sn, stream, value string) error {
	col, ok := stampColumns[stream]
	if !ok || value == "" {
		return nil
	}
	return s.Repo.UpdateFields(sn, map[string]interface{}{col: value})
}
