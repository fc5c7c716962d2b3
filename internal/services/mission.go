package services

import (
	"time"

	"github.com/thesyncbridge/apiserver/internal/mission"
)

// MissionService reports the mission countdown in the mission time zone.
type MissionService struct {
	clock    mission.Clock
	location *time.Location
	now      func() time.Time
}

func NewMissionService(clock mission.Clock, location *time.Location, now func() time.Time) *MissionService {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &MissionService{clock: clock, location: location, now: now}
}

func (s *MissionService) Status() mission.Status {
	return s.clock.Status(s.now().In(s.location))
}

func (s *MissionService) TotalDays() int {
	return s.clock.TotalDays()
}
