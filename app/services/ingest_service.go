package services

import (
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"crewpush/app/metrics"
	"crewpush/app/models"
	"crewpush/app/protocol"
	"crewpush/app/repositories"
)

// IngestResult summarizes one upload batch. Duplicates is nonzero when
// the dedup key dropped at least one ATTLOG record — a distinct,
// non-fatal result the caller reports differently from all-new.
type IngestResult struct {
	Processed  int
	Duplicates int
	Skipped    int
}

func (r IngestResult) HasDuplicate() bool {
	return r.Duplicates > 0
}

type IngestService struct {
	Users      *repositories.TerminalUserRepository
	Attendance *repositories.AttendanceRepository
	Reconcile  *ReconcileService
}

func NewIngestService(users *repositories.TerminalUserRepository, attendance *repositories.AttendanceRepository, reconcile *ReconcileService) *IngestService {
	return &IngestService{
		Users:      users,
		Attendance: attendance,
		Reconcile:  reconcile,
	}
}

// HandleUpload routes one device upload by table name. Unknown tables
// are acked and logged; the device retries nothing it does not have to.
func (s *IngestService) HandleUpload(sn, table string, body []byte) (IngestResult, error) {
	metrics.UploadsTotal.WithLabelValues(strings.ToUpper(table)).Inc()

	switch strings.ToUpper(table) {
	case "ATTLOG":
		return s.ingestAttlog(sn, string(body))
	case "OPERLOG":
		return s.ingestOperlog(sn, string(body))
	case "USERPIC":
		return s.ingestUserpic(sn, string(body))
	case "BIODATA":
		return s.ingestBiodata(sn, string(body))
	default:
		log.Printf("[Ingest] unhandled table %s from %s (%d bytes)", table, sn, len(body))
		return IngestResult{}, nil
	}
}

func (s *IngestService) ingestAttlog(sn, body string) (IngestResult, error) {
	records, skipped := protocol.ParseAttlog(body)
	res := IngestResult{Skipped: skipped}
	if skipped > 0 {
		log.Printf("[Ingest] %d malformed ATTLOG lines from %s skipped", skipped, sn)
	}

	for _, rec := range records {
		exists, err := s.Attendance.Exists(sn, rec.PIN, rec.Timestamp, rec.VerifyType)
		if err != nil {
			return res, err
		}
		if exists {
			res.Duplicates++
			metrics.DuplicateAttendance.Inc()
			continue
		}

		ev := &models.AttendanceEvent{
			DeviceSN:    sn,
			PIN:         rec.PIN,
			Timestamp:   rec.Timestamp,
			VerifyType:  rec.VerifyType,
			Status:      rec.Status,
			WorkCode:    rec.WorkCode,
			MaskFlag:    rec.MaskFlag,
			Temperature: rec.Temperature,
		}
		if err := s.Attendance.Create(ev); err != nil {
			return res, err
		}
		res.Processed++

		// business outcome is logged inside; never surfaced to the device
		s.Reconcile.Reconcile(ev)
	}
	return res, nil
}

func (s *IngestService) ingestOperlog(sn, body string) (IngestResult, error) {
	batch := protocol.ParseOperlog(body)
	res := IngestResult{Skipped: batch.Skipped}

	for _, u := range batch.Users {
		rec := &models.TerminalUser{
			DeviceSN:  sn,
			PIN:       u.PIN,
			Name:      u.Name,
			Privilege: u.Privilege,
			Password:  u.Password,
			Card:      u.Card,
			Grp:       u.Grp,
			TimeZone:  u.TimeZone,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.Users.Upsert(rec); err != nil {
			return res, err
		}
		res.Processed++
	}

	for _, t := range batch.Templates {
		n, err := s.storeTemplate(sn, t)
		if err != nil {
			return res, err
		}
		res.Processed += n
	}

	if batch.OpLogs > 0 {
		log.Printf("[Ingest] %d operation log lines from %s", batch.OpLogs, sn)
	}
	return res, nil
}

func (s *IngestService) ingestUserpic(sn, body string) (IngestResult, error) {
	photos, skipped := protocol.ParseUserpic(body)
	res := IngestResult{Skipped: skipped}

	for _, p := range photos {
		err := s.Users.SetPhoto(sn, p.PIN, p.FileName, p.Size, p.Content)
		if err == gorm.ErrRecordNotFound {
			log.Printf("[Ingest] photo for unknown user %s on %s dropped", p.PIN, sn)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Processed++
	}
	return res, nil
}

func (s *IngestService) ingestBiodata(sn, body string) (IngestResult, error) {
	templates, skipped := protocol.ParseBiodata(body)
	res := IngestResult{Skipped: skipped}

	for _, t := range templates {
		n, err := s.storeTemplate(sn, t)
		if err != nil {
			return res, err
		}
		if n == 0 {
			res.Skipped++
		}
		res.Processed += n
	}
	return res, nil
}

// storeTemplate enforces the invariant that a template never attaches
// to a user record that does not exist on that device.
func (s *IngestService) storeTemplate(sn string, t protocol.TemplateRecord) (int, error) {
	ok, err := s.Users.Exists(sn, t.PIN)
	if err != nil {
		return 0, err
	}
	if !ok {
		log.Printf("[Ingest] template for unknown user %s on %s dropped", t.PIN, sn)
		return 0, nil
	}
	rec := &models.BiometricTemplate{
		DeviceSN:  sn,
		PIN:       t.PIN,
		SlotIndex: t.SlotIndex,
		Type:      t.Type,
		Version:   t.Version,
		Valid:     t.Valid,
		Template:  t.Template,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Users.UpsertTemplate(rec); err != nil {
		return 0, err
	}
	return 1, nil
}
