package cmd

import (
	"github.com/spf13/cobra"

	"github.com/droverhq/drover-cli/pkg/flags"
)

var (
	earlyRelease bool
	liveMigrate  bool
	storageType  string
	outputFields string
	unitName     string
	allocatable  bool
)

var nodeListColumns = []string{"name", "role", "pinst_cnt", "sinst_cnt", "mfree", "dfree"}

// Parent node command
var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Inspect and manage cluster nodes",
	Args:  cobra.ArbitraryArgs,
}

var nodeListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List nodes in the cluster",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		if namesOnly {
			names, err := r.api.GetNodeNames()
			if err != nil {
				r.logger.Fatal().Err(err).Msg("could not list node names")
			}
			if err := r.printStrings(names); err != nil {
				r.logger.Fatal().Err(err).Msg("could not render node names")
			}
			return
		}

		nodes, err := r.api.GetNodes()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not list nodes")
		}
		if err := r.printResourceList(nodes, nodeListColumns); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render nodes")
		}
	},
}

var nodeGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Show one node",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		node, err := r.api.GetNode(args[0])
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get node")
		}
		if err := r.printResource(node); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render node")
		}
	},
}

var nodeRoleCmd = &cobra.Command{
	Use:   "role NAME",
	Short: "Show a node's role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		role, err := r.api.GetNodeRole(args[0])
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get node role")
		}
		if err := r.printStrings([]string{role}); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render node role")
		}
	},
}

var nodeSetRoleCmd = &cobra.Command{
	Use:   "set-role NAME ROLE",
	Short: "Change a node's role (master-candidate, drained, offline, regular)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.SetNodeRole(args[0], args[1], force)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not set node role")
		}
		r.ackJob("node set-role", args[0], jobID)
	},
}

var nodeEvacuateCmd = &cobra.Command{
	Use:   "evacuate NAME",
	Short: "Move all secondary instances off a node",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.EvacuateNode(args[0], remoteNode, iallocator, earlyRelease, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not evacuate node")
		}
		r.ackJob("node evacuate", args[0], jobID)
	},
}

var nodeMigrateCmd = &cobra.Command{
	Use:   "migrate NAME",
	Short: "Migrate all primary instances off a node",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.MigrateNode(args[0], liveMigrate, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not migrate node")
		}
		r.ackJob("node migrate", args[0], jobID)
	},
}

var nodeStorageCmd = &cobra.Command{
	Use:   "storage NAME",
	Short: "Submit a job listing a node's storage units",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.GetNodeStorageUnits(args[0], storageType, outputFields)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not list node storage units")
		}
		r.ackJob("node storage", args[0], jobID)
	},
}

var nodeModifyStorageCmd = &cobra.Command{
	Use:   "modify-storage NAME",
	Short: "Change the allocatable state of a node's storage unit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.ModifyNodeStorageUnits(args[0], storageType, unitName, allocatable)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not modify node storage unit")
		}
		r.ackJob("node modify-storage", args[0], jobID)
	},
}

var nodeRepairStorageCmd = &cobra.Command{
	Use:   "repair-storage NAME",
	Short: "Repair a node's storage unit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.RepairNodeStorageUnits(args[0], storageType, unitName)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not repair node storage unit")
		}
		r.ackJob("node repair-storage", args[0], jobID)
	},
}

var nodeTagsCmd = &cobra.Command{
	Use:   "tags NAME",
	Short: "List a node's tags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		tags, err := r.api.GetNodeTags(args[0])
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get node tags")
		}
		if err := r.printStrings(tags); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render node tags")
		}
	},
}

var nodeAddTagsCmd = &cobra.Command{
	Use:   "add-tags NAME TAG...",
	Short: "Add tags to a node",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.AddNodeTags(args[0], args[1:], dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not add node tags")
		}
		r.ackJob("node add-tags", args[0], jobID)
	},
}

var nodeRemoveTagsCmd = &cobra.Command{
	Use:   "remove-tags NAME TAG...",
	Short: "Remove tags from a node",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.DeleteNodeTags(args[0], args[1:], dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not remove node tags")
		}
		r.ackJob("node remove-tags", args[0], jobID)
	},
}

func init() {
	rootCmd.AddCommand(nodeCmd)
	nodeCmd.AddCommand(nodeListCmd)
	nodeCmd.AddCommand(nodeGetCmd)
	nodeCmd.AddCommand(nodeRoleCmd)
	nodeCmd.AddCommand(nodeSetRoleCmd)
	nodeCmd.AddCommand(nodeEvacuateCmd)
	nodeCmd.AddCommand(nodeMigrateCmd)
	nodeCmd.AddCommand(nodeStorageCmd)
	nodeCmd.AddCommand(nodeModifyStorageCmd)
	nodeCmd.AddCommand(nodeRepairStorageCmd)
	nodeCmd.AddCommand(nodeTagsCmd)
	nodeCmd.AddCommand(nodeAddTagsCmd)
	nodeCmd.AddCommand(nodeRemoveTagsCmd)

	nodeListCmd.Flags().BoolVar(&namesOnly, flags.NamesFlag.Full, false, "list names only instead of the detail table")

	nodeSetRoleCmd.Flags().BoolVar(&force, flags.ForceFlag.Full, false, "force the role change on the master node")

	nodeEvacuateCmd.Flags().StringVar(&remoteNode, flags.RemoteNodeFlag.Full, "", "node to evacuate instances onto")
	nodeEvacuateCmd.Flags().StringVar(&iallocator, flags.IAllocatorFlag.Full, "", "allocator to pick target nodes")
	nodeEvacuateCmd.Flags().BoolVar(&earlyRelease, flags.EarlyReleaseFlag.Full, false, "release old storage before the sync finishes")
	nodeEvacuateCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	nodeMigrateCmd.Flags().BoolVar(&liveMigrate, flags.LiveFlag.Full, true, "migrate instances without stopping them")
	nodeMigrateCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	nodeStorageCmd.Flags().StringVarP(&storageType, flags.StorageTypeFlag.Full, flags.StorageTypeFlag.Short, "", "storage type (lvm-pv, lvm-vg, file)")
	nodeStorageCmd.Flags().StringVar(&outputFields, flags.OutputFieldsFlag.Full, "", "comma-separated fields the job should report")

	nodeModifyStorageCmd.Flags().StringVarP(&storageType, flags.StorageTypeFlag.Full, flags.StorageTypeFlag.Short, "", "storage type (lvm-pv, lvm-vg, file)")
	nodeModifyStorageCmd.Flags().StringVar(&unitName, flags.UnitNameFlag.Full, "", "name of the storage unit")
	nodeModifyStorageCmd.Flags().BoolVar(&allocatable, flags.AllocatableFlag.Full, false, "whether new disks may be allocated on the unit")

	nodeRepairStorageCmd.Flags().StringVarP(&storageType, flags.StorageTypeFlag.Full, flags.StorageTypeFlag.Short, "", "storage type (lvm-pv, lvm-vg, file)")
	nodeRepairStorageCmd.Flags().StringVar(&unitName, flags.UnitNameFlag.Full, "", "name of the storage unit")
}
