package flags

// This file contains all the flags used in the cmd package.

type Flag struct {
	Full  string
	Short string
}

var (
	// Parent flags
	ConfigFlag = Flag{Full: "config"}
	OutputFlag = Flag{Full: "output", Short: "o"}

	// Shared across commands
	DryRunFlag     = Flag{Full: "dry-run"}
	ForceFlag      = Flag{Full: "force"}
	NamesFlag      = Flag{Full: "names"}
	RemoteNodeFlag = Flag{Full: "remote-node"}
	IAllocatorFlag = Flag{Full: "iallocator"}

	// Instance flags
	SpecFileFlag          = Flag{Full: "file", Short: "f"}
	StaticFlag            = Flag{Full: "static"}
	RebootTypeFlag        = Flag{Full: "type", Short: "t"}
	IgnoreSecondariesFlag = Flag{Full: "ignore-secondaries"}
	OSFlag                = Flag{Full: "os"}
	NoStartupFlag         = Flag{Full: "no-startup"}
	DisksFlag             = Flag{Full: "disks"}
	ModeFlag              = Flag{Full: "mode"}

	// Node flags
	EarlyReleaseFlag = Flag{Full: "early-release"}
	LiveFlag         = Flag{Full: "live"}
	StorageTypeFlag  = Flag{Full: "storage-type", Short: "t"}
	OutputFieldsFlag = Flag{Full: "output-fields"}
	UnitNameFlag     = Flag{Full: "name"}
	AllocatableFlag  = Flag{Full: "allocatable"}

	// Job flags
	IntervalFlag = Flag{Full: "interval"}
	PurgeFlag    = Flag{Full: "purge"}
)
