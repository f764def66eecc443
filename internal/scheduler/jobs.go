package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/finobai/finobai/internal/database"
	"github.com/finobai/finobai/internal/modules/history"
	"github.com/finobai/finobai/internal/modules/insights"
	"github.com/finobai/finobai/internal/reliability"
)

// candleRetention bounds history.db growth; the indicator engine never
// looks back more than a year.
const candleRetention = 2 * 365 * 24 * time.Hour

// CachePurgeJob drops expired summary cache rows and prunes old
// candles.
type CachePurgeJob struct {
	cache   *insights.SummaryCache
	candles *history.Store
	log     zerolog.Logger
}

// NewCachePurgeJob creates a new cache purge job
func NewCachePurgeJob(cache *insights.SummaryCache, candles *history.Store, log zerolog.Logger) *CachePurgeJob {
	return &CachePurgeJob{
		cache:   cache,
		candles: candles,
		log:     log.With().Str("job", "cache_purge").Logger(),
	}
}

// Name returns the job name
func (j *CachePurgeJob) Name() string { return "cache_purge" }

// Run purges expired cache entries and old candles
func (j *CachePurgeJob) Run() error {
	purged, err := j.cache.PurgeExpired()
	if err != nil {
		return err
	}

	var pruned int64
	if j.candles != nil {
		pruned, err = j.candles.PruneOlderThan(time.Now().Add(-candleRetention))
		if err != nil {
			return err
		}
	}

	j.log.Info().
		Int64("summaries_purged", purged).
		Int64("candles_pruned", pruned).
		Msg("Cache purge complete")
	return nil
}

// WALCheckpointJob truncates the write-ahead logs so they do not grow
// unbounded between restarts.
type WALCheckpointJob struct {
	dbs []*database.DB
	log zerolog.Logger
}

// NewWALCheckpointJob creates a new WAL checkpoint job
func NewWALCheckpointJob(dbs []*database.DB, log zerolog.Logger) *WALCheckpointJob {
	return &WALCheckpointJob{
		dbs: dbs,
		log: log.With().Str("job", "wal_checkpoint").Logger(),
	}
}

// Name returns the job name
func (j *WALCheckpointJob) Name() string { return "wal_checkpoint" }

// Run checkpoints every database
func (j *WALCheckpointJob) Run() error {
	for _, db := range j.dbs {
		if db == nil {
			continue
		}
		if err := db.WALCheckpoint("TRUNCATE"); err != nil {
			j.log.Error().Err(err).Str("database", db.Name()).Msg("WAL checkpoint failed")
			return err
		}
	}
	j.log.Debug().Int("databases", len(j.dbs)).Msg("WAL checkpoints complete")
	return nil
}

// BackupJob runs the nightly off-site backup.
type BackupJob struct {
	service *reliability.BackupService
	log     zerolog.Logger
}

// NewBackupJob creates a new backup job
func NewBackupJob(service *reliability.BackupService, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		service: service,
		log:     log.With().Str("job", "backup").Logger(),
	}
}

// Name returns the job name
func (j *BackupJob) Name() string { return "backup" }

// Run creates and uploads a backup archive, then rotates old ones
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	return j.service.Backup(ctx)
}
