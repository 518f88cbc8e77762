package service

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/okian/salaryscope/internal/adapters/mq/queue"
	"github.com/okian/salaryscope/internal/adapters/repository"
	"github.com/okian/salaryscope/internal/adapters/source"
	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/events"
	"github.com/okian/salaryscope/pkg/logger"
	"github.com/okian/salaryscope/pkg/metrics"
)

// Load fetches and normalises the dataset and installs it as the working
// set. A failed or empty load installs the fallback catalog instead; it is
// logged and reported but never returned as an error.
func (s *Service) Load(ctx context.Context) model.LoadReport {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	report := model.LoadReport{
		Source:   s.location,
		Dropped:  make(map[string]int),
		LoadedAt: start.UTC(),
	}

	var snap repository.Snapshot
	table, err := s.fetch(ctx)
	if err != nil {
		report.Outcome = model.OutcomeFailed
		report.Error = err.Error()
		metrics.RecordErrorByComponent(componentServiceName, "load")
		s.logger.Error(ctx, "dataset load failed, using fallback catalog",
			logger.String("source", s.location),
			logger.Error(err),
		)
	} else {
		res := dataset.Normalize(table.Records, dataset.DetectTitleColumn(table.Headers))
		maps.Copy(report.Dropped, res.Dropped)
		if table.Malformed > 0 {
			report.Dropped[model.DropMalformed] += table.Malformed
		}
		report.TitleColumn = res.TitleColumn
		report.RowsRead = res.RowsRead + table.Malformed
		report.RowsKept = len(res.Samples)
		report.Outcome = model.OutcomeLoaded
		if len(res.Samples) == 0 {
			report.Outcome = model.OutcomeEmpty
			s.logger.Warn(ctx, "dataset has no valid rows, using fallback catalog",
				logger.String("source", s.location),
				logger.Int("rows_read", report.RowsRead),
			)
		}
		snap.Samples = res.Samples
		snap.Catalog = dataset.BuildCatalog(res.Samples)
	}

	catalog := snap.Catalog
	if len(catalog) == 0 {
		catalog = s.fallback
	}
	snap.Default = dataset.DefaultSelection(catalog, s.preferred)
	report.Duration = time.Since(start)
	snap.Report = report

	stored := s.dataset.Replace(ctx, snap)

	for reason, n := range report.Dropped {
		metrics.RecordRowsDropped(reason, n)
	}
	metrics.RecordDatasetLoad(report.Outcome, float64(report.Duration.Microseconds())/1000)
	s.logger.Info(ctx, "dataset installed",
		logger.String("outcome", report.Outcome),
		logger.Int("rows_read", report.RowsRead),
		logger.Int("rows_kept", report.RowsKept),
		logger.Int("dropped", report.DroppedTotal()),
		logger.Int("titles", len(stored.Catalog)),
		logger.Any("version", stored.Version),
		logger.Duration("took", report.Duration),
	)

	s.hub.Publish(events.MakeEvent("", events.TypeDatasetLoaded, eventVersion, map[string]any{
		"version":  stored.Version,
		"outcome":  report.Outcome,
		"fallback": stored.Fallback,
		"samples":  len(stored.Samples),
		"default":  stored.Default,
	}))
	s.refreshSessions(ctx)
	return report
}

func (s *Service) fetch(ctx context.Context) (source.Table, error) {
	if s.location == "" {
		return source.Table{}, ErrNoLocation
	}
	return s.loader.Load(ctx, s.location)
}

// refreshSessions asks the event loop to rerun every session's cycle against
// the new working set.
func (s *Service) refreshSessions(ctx context.Context) {
	if _, err := s.submit(ctx, queue.NewCommand(queue.OpRefresh, "", model.Interaction{})); err != nil && !errors.Is(err, ErrNotStarted) {
		s.logger.Warn(ctx, "session refresh not applied", logger.Error(err))
	}
}
