package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var validate = validator.New()

// SubmissionSubmitted is the initial ledger status; once the master
// reports a result the row is updated with the master's own job status.
const SubmissionSubmitted = "submitted"

// Submission is one job handed to the master by this CLI. Rows are kept
// locally as an audit trail of what was asked and how it ended.
type Submission struct {
	gorm.Model
	SubmissionID string    `json:"submission_id" gorm:"uniqueIndex"`
	Op           string    `json:"op"`
	Target       string    `json:"target"`
	JobID        string    `json:"job_id"`
	Status       string    `json:"status"`
	FinishedAt   time.Time `json:"finished_at"`
}

// DiskSpec describes one disk of a new instance. Sizes are megabytes.
type DiskSpec struct {
	Size int    `json:"size" mapstructure:"size" validate:"required,gt=0"`
	Mode string `json:"mode,omitempty" mapstructure:"mode" validate:"omitempty,oneof=ro rw"`
}

// NICSpec describes one network interface of a new instance. Empty fields
// are left to the cluster defaults.
type NICSpec struct {
	Mode string `json:"mode,omitempty" mapstructure:"mode" validate:"omitempty,oneof=bridged routed"`
	Link string `json:"link,omitempty" mapstructure:"link"`
	IP   string `json:"ip,omitempty" mapstructure:"ip" validate:"omitempty,ip"`
	MAC  string `json:"mac,omitempty" mapstructure:"mac" validate:"omitempty,mac"`
}

// InstanceSpec is the body of an instance-creation request. Placement is
// either explicit (pnode, optionally snode for mirrored templates) or
// delegated to an allocator, never both.
type InstanceSpec struct {
	Name         string     `json:"name" mapstructure:"name" validate:"required,hostname_rfc1123"`
	OS           string     `json:"os" mapstructure:"os" validate:"required"`
	DiskTemplate string     `json:"disk_template" mapstructure:"disk_template" validate:"required,oneof=plain drbd file diskless"`
	Disks        []DiskSpec `json:"disks,omitempty" mapstructure:"disks" validate:"required_unless=DiskTemplate diskless,dive"`
	NICs         []NICSpec  `json:"nics,omitempty" mapstructure:"nics" validate:"omitempty,dive"`
	Memory       int        `json:"memory" mapstructure:"memory" validate:"required,gt=0"`
	VCPUs        int        `json:"vcpus" mapstructure:"vcpus" validate:"required,gt=0"`

	PrimaryNode   string `json:"pnode,omitempty" mapstructure:"pnode" validate:"required_without=IAllocator,excluded_with=IAllocator"`
	SecondaryNode string `json:"snode,omitempty" mapstructure:"snode" validate:"excluded_with=IAllocator"`
	IAllocator    string `json:"iallocator,omitempty" mapstructure:"iallocator"`

	Tags    []string `json:"tags,omitempty" mapstructure:"tags"`
	NoStart bool     `json:"no_start,omitempty" mapstructure:"no_start"`
}

// Validate checks the spec before submission so obvious mistakes fail
// locally instead of spending a master round trip.
func (s *InstanceSpec) Validate() error {
	return validate.Struct(s)
}

// LoadInstanceSpec reads a spec file (yaml or json, by extension) and
// validates it. Spec files use the same field names as the wire format.
func LoadInstanceSpec(filepath string) (*InstanceSpec, error) {
	v := viper.New()
	v.SetConfigFile(filepath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading instance spec %s: %w", filepath, err)
	}

	var spec InstanceSpec
	if err := v.Unmarshal(&spec); err != nil {
		return nil, fmt.Errorf("parsing instance spec %s: %w", filepath, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instance spec %s: %w", filepath, err)
	}

	return &spec, nil
}
