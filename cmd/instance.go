package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/droverhq/drover-cli/pkg/flags"
	"github.com/droverhq/drover-cli/types"
)

var (
	force             bool
	static            bool
	namesOnly         bool
	rebootType        string
	ignoreSecondaries bool
	osName            string
	noStartup         bool
	specFile          string
	replaceDisks      []string
	replaceMode       string
	remoteNode        string
	iallocator        string
)

// instanceListColumns is what the table view shows; json output carries
// every field the master sent.
var instanceListColumns = []string{"name", "status", "pnode", "os", "oper_ram"}

// Parent instance command
var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage instances running on the cluster",
	Args:  cobra.ArbitraryArgs,
}

var instanceListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List instances on the cluster",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		if namesOnly {
			names, err := r.api.GetInstanceNames()
			if err != nil {
				r.logger.Fatal().Err(err).Msg("could not list instance names")
			}
			if err := r.printStrings(names); err != nil {
				r.logger.Fatal().Err(err).Msg("could not render instance names")
			}
			return
		}

		instances, err := r.api.GetInstances()
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not list instances")
		}
		if err := r.printResourceList(instances, instanceListColumns); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render instances")
		}
	},
}

var instanceGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Show one instance's static configuration",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		instance, err := r.api.GetInstance(args[0])
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get instance")
		}
		if err := r.printResource(instance); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render instance")
		}
	},
}

var instanceInfoCmd = &cobra.Command{
	Use:   "info NAME",
	Short: "Submit a job gathering detailed runtime info for an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.GetInstanceInfo(args[0], static)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not request instance info")
		}
		r.ackJob("instance info", args[0], jobID)
	},
}

var instanceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an instance from a spec file",
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		if specFile == "" {
			r.logger.Fatal().Msg("instance spec file not specified")
		}

		spec, err := types.LoadInstanceSpec(specFile)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not load instance spec")
		}

		jobID, err := r.api.CreateInstance(spec, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not create instance")
		}
		r.ackJob("instance create", spec.Name, jobID)
	},
}

var instanceDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete an instance and its disks",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		if !force {
			prompt := promptui.Prompt{
				Label:     fmt.Sprintf("Delete instance %s and its disks", args[0]),
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				fmt.Println("aborted")
				return
			}
		}

		jobID, err := r.api.DeleteInstance(args[0], dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not delete instance")
		}
		r.ackJob("instance delete", args[0], jobID)
	},
}

var instanceStartupCmd = &cobra.Command{
	Use:   "startup NAME",
	Short: "Start an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.StartupInstance(args[0], force, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not start instance")
		}
		r.ackJob("instance startup", args[0], jobID)
	},
}

var instanceShutdownCmd = &cobra.Command{
	Use:   "shutdown NAME",
	Short: "Shut an instance down",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.ShutdownInstance(args[0], dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not shut down instance")
		}
		r.ackJob("instance shutdown", args[0], jobID)
	},
}

var instanceRebootCmd = &cobra.Command{
	Use:   "reboot NAME",
	Short: "Reboot an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.RebootInstance(args[0], rebootType, ignoreSecondaries, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not reboot instance")
		}
		r.ackJob("instance reboot", args[0], jobID)
	},
}

var instanceReinstallCmd = &cobra.Command{
	Use:   "reinstall NAME",
	Short: "Reinstall an instance's operating system",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.ReinstallInstance(args[0], osName, noStartup)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not reinstall instance")
		}
		r.ackJob("instance reinstall", args[0], jobID)
	},
}

var instanceReplaceDisksCmd = &cobra.Command{
	Use:   "replace-disks NAME",
	Short: "Replace an instance's disks",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.ReplaceInstanceDisks(args[0], replaceDisks, replaceMode, remoteNode, iallocator, dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not replace instance disks")
		}
		r.ackJob("instance replace-disks", args[0], jobID)
	},
}

var instanceTagsCmd = &cobra.Command{
	Use:   "tags NAME",
	Short: "List an instance's tags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		tags, err := r.api.GetInstanceTags(args[0])
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not get instance tags")
		}
		if err := r.printStrings(tags); err != nil {
			r.logger.Fatal().Err(err).Msg("could not render instance tags")
		}
	},
}

var instanceAddTagsCmd = &cobra.Command{
	Use:   "add-tags NAME TAG...",
	Short: "Add tags to an instance",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.AddInstanceTags(args[0], args[1:], dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not add instance tags")
		}
		r.ackJob("instance add-tags", args[0], jobID)
	},
}

var instanceRemoveTagsCmd = &cobra.Command{
	Use:   "remove-tags NAME TAG...",
	Short: "Remove tags from an instance",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r := buildRunner()

		jobID, err := r.api.DeleteInstanceTags(args[0], args[1:], dryRun)
		if err != nil {
			r.logger.Fatal().Err(err).Msg("could not remove instance tags")
		}
		r.ackJob("instance remove-tags", args[0], jobID)
	},
}

func init() {
	rootCmd.AddCommand(instanceCmd)
	instanceCmd.AddCommand(instanceListCmd)
	instanceCmd.AddCommand(instanceGetCmd)
	instanceCmd.AddCommand(instanceInfoCmd)
	instanceCmd.AddCommand(instanceCreateCmd)
	instanceCmd.AddCommand(instanceDeleteCmd)
	instanceCmd.AddCommand(instanceStartupCmd)
	instanceCmd.AddCommand(instanceShutdownCmd)
	instanceCmd.AddCommand(instanceRebootCmd)
	instanceCmd.AddCommand(instanceReinstallCmd)
	instanceCmd.AddCommand(instanceReplaceDisksCmd)
	instanceCmd.AddCommand(instanceTagsCmd)
	instanceCmd.AddCommand(instanceAddTagsCmd)
	instanceCmd.AddCommand(instanceRemoveTagsCmd)

	instanceListCmd.Flags().BoolVar(&namesOnly, flags.NamesFlag.Full, false, "list names only instead of the detail table")

	instanceInfoCmd.Flags().BoolVar(&static, flags.StaticFlag.Full, false, "gather configuration only, without asking the hypervisor")

	instanceCreateCmd.Flags().StringVarP(&specFile, flags.SpecFileFlag.Full, flags.SpecFileFlag.Short, "", "path to the instance spec file (json or yaml)")
	instanceCreateCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	instanceDeleteCmd.Flags().BoolVar(&force, flags.ForceFlag.Full, false, "skip the confirmation prompt")
	instanceDeleteCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	instanceStartupCmd.Flags().BoolVar(&force, flags.ForceFlag.Full, false, "start even with offline secondaries")
	instanceStartupCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	instanceShutdownCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	instanceRebootCmd.Flags().StringVarP(&rebootType, flags.RebootTypeFlag.Full, flags.RebootTypeFlag.Short, "", "reboot type (soft, hard, full); the master picks its default when unset")
	instanceRebootCmd.Flags().BoolVar(&ignoreSecondaries, flags.IgnoreSecondariesFlag.Full, false, "reboot even with unreachable secondary nodes")
	instanceRebootCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	instanceReinstallCmd.Flags().StringVar(&osName, flags.OSFlag.Full, "", "operating system to install; the instance keeps its current one when unset")
	instanceReinstallCmd.Flags().BoolVar(&noStartup, flags.NoStartupFlag.Full, false, "leave the instance down after the reinstall")

	instanceReplaceDisksCmd.Flags().StringSliceVar(&replaceDisks, flags.DisksFlag.Full, nil, "disk indexes to replace (all disks when unset)")
	instanceReplaceDisksCmd.Flags().StringVar(&replaceMode, flags.ModeFlag.Full, "", "replacement mode (replace_auto, replace_on_primary, replace_on_secondary, replace_new_secondary)")
	instanceReplaceDisksCmd.Flags().StringVar(&remoteNode, flags.RemoteNodeFlag.Full, "", "node to use as the new secondary")
	instanceReplaceDisksCmd.Flags().StringVar(&iallocator, flags.IAllocatorFlag.Full, "", "allocator to pick the new secondary")
	instanceReplaceDisksCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")

	instanceAddTagsCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")
	instanceRemoveTagsCmd.Flags().BoolVar(&dryRun, flags.DryRunFlag.Full, false, "submit the job in dry-run mode")
}
