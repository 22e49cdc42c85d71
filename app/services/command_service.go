package services

import (
	"encoding/base64"
	"log"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewpush/app/dto"
	"crewpush/app/metrics"
	"crewpush/app/models"
	"crewpush/app/protocol"
	"crewpush/app/repositories"
)

// MaxCommandsPerPoll caps how many pending commands one getrequest
// response may carry.
const MaxCommandsPerPoll = 100

type CommandService struct {
	Repo       *repositories.CommandRepository
	DeviceRepo *repositories.DeviceRepository
	Photos     *PhotoService
}

func NewCommandService(repo *repositories.CommandRepository, devRepo *repositories.DeviceRepository, photos *PhotoService) *CommandService {
	return &CommandService{
		Repo:       repo,
		DeviceRepo: devRepo,
		Photos:     photos,
	}
}

func (s *CommandService) Enqueue(sn, content string) (*models.DeviceCommand, error) {
	cmd := &models.DeviceCommand{
		DeviceSN:   sn,
		Content:    content,
		CommitTime: time.Now(),
	}
	if err := s.Repo.Create(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// DrainPending lists up to MaxCommandsPerPoll pending commands and
// marks them transmitted in the same exchange. Re-listing before the
// device acknowledges redelivers; the device applies idempotently.
func (s *CommandService) DrainPending(sn string) ([]models.DeviceCommand, error) {
	cmds, err := s.Repo.PendingByDevice(sn, MaxCommandsPerPoll)
	if err != nil {
		return nil, err
	}
	if len(cmds) == 0 {
		return nil, nil
	}
	if err := s.Repo.MarkTransmitted(cmds, time.Now()); err != nil {
		return nil, err
	}
	metrics.CommandsDelivered.Add(float64(len(cmds)))
	return cmds, nil
}

// ApplyReturn records a device acknowledgement. A return for an
// unknown command ID is a logged no-op; the device gets its ACK
// either way.
func (s *CommandService) ApplyReturn(ret protocol.CommandReturn) {
	err := s.Repo.MarkReturned(ret.ID, ret.Return, ret.CMD, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[Queue] return for unknown command %d (code %s)", ret.ID, ret.Return)
		return
	}
	if err != nil {
		log.Printf("[Queue] failed to apply return for command %d: %v", ret.ID, err)
		return
	}
	metrics.CommandsAcknowledged.Inc()
}

// SyncUser enqueues the update-user command, then the photo and
// bio-photo commands gated on the device capability mask, in that
// fixed order. Each is an independent queue entry.
func (s *CommandService) SyncUser(req *dto.SyncUserRequest, sn string) ([]models.DeviceCommand, error) {
	d, err := s.DeviceRepo.GetBySerial(sn)
	if err != nil {
		return nil, errors.Wrapf(err, "sync user to %s", sn)
	}

	var queued []models.DeviceCommand
	cmd, err := s.Enqueue(sn, protocol.UpdateUserCommand(
		req.PIN, req.Name, req.Privilege, "", req.Card, req.Group, req.TimeZone))
	if err != nil {
		return nil, err
	}
	queued = append(queued, *cmd)

	if req.PhotoPath == "" {
		return queued, nil
	}

	img, err := s.Photos.FetchImageBytes(req.PhotoPath)
	if err != nil {
		log.Printf("[Queue] photo %s unavailable for PIN %s: %v", req.PhotoPath, req.PIN, err)
		return queued, nil
	}
	content := base64.StdEncoding.EncodeToString(img)

	if protocol.Supports(d.DevFuns, protocol.CapUserPic) {
		cmd, err := s.Enqueue(sn, protocol.UpdateUserPicCommand(
			req.PIN, filepath.Base(req.PhotoPath), len(img), content))
		if err != nil {
			return queued, err
		}
		queued = append(queued, *cmd)
	}
	if protocol.Supports(d.DevFuns, protocol.CapBioPhoto) {
		cmd, err := s.Enqueue(sn, protocol.UpdateBioPhotoCommand(req.PIN, len(img), content))
		if err != nil {
			return queued, err
		}
		queued = append(queued, *cmd)
	}
	return queued, nil
}

// ExecuteImmediately performs the server-side bookkeeping of a drain
// right after enqueue so the commands are queryable without waiting
// for the next device poll. It only marks transmission; the return
// value stays empty until real hardware acknowledges.
func (s *CommandService) ExecuteImmediately(cmds []models.DeviceCommand) ([]models.DeviceCommand, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	if err := s.Repo.MarkTransmitted(cmds, time.Now()); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(cmds))
	for _, c := range cmds {
		ids = append(ids, c.ID)
	}
	return s.Repo.ByIDs(ids)
}

func (s *CommandService) DeleteUser(sn, pin string) (*models.DeviceCommand, error) {
	return s.Enqueue(sn, protocol.DeleteUserCommand(pin))
}

func (s *CommandService) ClearData(sn string) (*models.DeviceCommand, error) {
	return s.Enqueue(sn, protocol.ClearDataCommand)
}

func (s *CommandService) Reboot(sn string) (*models.DeviceCommand, error) {
	return s.Enqueue(sn, protocol.RebootCommand)
}

func (s *CommandService) RequestInfo(sn string) (*models.DeviceCommand, error) {
	return s.Enqueue(sn, protocol.InfoCommand)
}
