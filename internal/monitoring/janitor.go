package monitoring

import (
	"time"

	"github.com/isdelr/blogit-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Janitor prunes aged activity-log entries on a cron schedule.
type Janitor struct {
	eventSvc  services.EventServiceProvider
	retention time.Duration
	schedule  string
	cron      *cron.Cron
}

// NewJanitor creates a janitor that removes events older than retention,
// running at the given standard cron expression.
func NewJanitor(eventSvc services.EventServiceProvider, retention time.Duration, schedule string) *Janitor {
	return &Janitor{
		eventSvc:  eventSvc,
		retention: retention,
		schedule:  schedule,
	}
}

// Start validates the schedule and begins the background pruning loop.
func (j *Janitor) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, j.prune); err != nil {
		return err
	}
	j.cron.Start()
	log.Info().Str("schedule", j.schedule).Dur("retention", j.retention).Msg("Event janitor started")
	return nil
}

// Stop halts the janitor. A prune already in flight runs to completion.
func (j *Janitor) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

func (j *Janitor) prune() {
	cutoff := time.Now().UTC().Add(-j.retention)
	removed, err := j.eventSvc.PruneEventsBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Event janitor: prune failed")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Event janitor: pruned old events")
	}
}
