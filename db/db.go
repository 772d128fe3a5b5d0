package db

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/droverhq/drover-cli/types"
	"github.com/droverhq/drover-cli/utils"
)

// DB is the CLI's submission ledger: every job this client hands to the
// master gets a row, so operators can answer "what did we ask for and how
// did it end" without trawling the master's queue. It records what was
// submitted, never cached master state.
type DB struct {
	logger *zerolog.Logger
	orm    *gorm.DB
}

// NewDB opens the ledger at path, creating the directory and schema on
// first use. An empty path lands in the drover config directory.
func NewDB(path string) (*DB, error) {
	logger := utils.GetLogger()

	if path == "" {
		dir, err := utils.ConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "jobs.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := orm.AutoMigrate(&types.Submission{}); err != nil {
		return nil, err
	}

	return &DB{
		logger: &logger,
		orm:    orm,
	}, nil
}

// RecordSubmission writes a ledger row for a job the master accepted.
func (db *DB) RecordSubmission(op, target, jobID string) (*types.Submission, error) {
	s := types.Submission{
		SubmissionID: xid.New().String(),
		Op:           op,
		Target:       target,
		JobID:        jobID,
		Status:       types.SubmissionSubmitted,
	}
	if err := db.orm.Create(&s).Error; err != nil {
		return nil, err
	}
	db.logger.Debug().Str("submission", s.SubmissionID).Str("job", jobID).Msg("recorded submission")

	return &s, nil
}

// UpdateSubmissionStatus stores the status the master reported for the
// given remote job id.
func (db *DB) UpdateSubmissionStatus(jobID, status string) error {
	return db.orm.Model(&types.Submission{}).
		Where("job_id = ?", jobID).
		Updates(map[string]any{"status": status, "finished_at": time.Now()}).Error
}

// GetSubmissions returns the ledger, newest first.
func (db *DB) GetSubmissions() ([]types.Submission, error) {
	var subs []types.Submission
	if err := db.orm.Order("id desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GetSubmissionByJobID finds the ledger row for a remote job id.
func (db *DB) GetSubmissionByJobID(jobID string) (*types.Submission, error) {
	var s types.Submission
	if err := db.orm.Where("job_id = ?", jobID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// PurgeSubmissions drops the whole ledger.
func (db *DB) PurgeSubmissions() error {
	return db.orm.Where("1 = 1").Delete(&types.Submission{}).Error
}
