package cli

import (
	"github.com/spf13/cobra"
)

func createCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "create SOURCEDIR RECOVERYDIR",
		Short: "Create recovery files for source files that have none",
		Long: `
Runs "par2 create" for every file in SOURCEDIR whose recovery file is missing
and prints a dot per file. The first engine failure stops the run.

Stale recovery files are not recreated; run delete-outdated first.
`,
		Args: twoDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, f, args)
			if err != nil {
				return err
			}
			n, err := a.worker.Create(cmd.Context(), a.computer.Missing())
			a.log.Info("create finished", "created", n)
			return err
		},
	}
}

func verifyCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify SOURCEDIR RECOVERYDIR",
		Short: "Verify source files against their recovery files",
		Long: `
Runs "par2 verify" for every source file that has a recovery file and prints a
dot per file. Damaged files are reported on stderr as

    BAD <path>
        <command to repair it>

Damaged files do not change the exit status.
`,
		Args: twoDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, f, args)
			if err != nil {
				return err
			}
			res, err := a.worker.Verify(cmd.Context(), a.computer.Existing())
			a.log.Info("verify finished", "checked", res.Checked, "failed", res.Failed)
			return err
		},
	}
}

func listOutdatedCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list-outdated SOURCEDIR RECOVERYDIR",
		Short: "List recovery files that are stale, empty or orphaned",
		Long: `
Prints, one per line, every recovery file that is older than its source file,
is empty, or whose source file no longer exists.
`,
		Args: twoDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, f, args)
			if err != nil {
				return err
			}
			n, err := a.worker.ListOutdated(a.computer.Stale())
			a.log.Info("list finished", "outdated", n)
			return err
		},
	}
}

func deleteOutdatedCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-outdated SOURCEDIR RECOVERYDIR",
		Short: "Delete stale, empty or orphaned recovery files",
		Long: `
Deletes every recovery file list-outdated would print, together with its
volume files. A following create run recreates the ones whose source still
exists.
`,
		Args: twoDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, f, args)
			if err != nil {
				return err
			}
			n, err := a.worker.DeleteOutdated(cmd.Context(), a.computer.Stale())
			a.log.Info("delete finished", "deleted", n)
			return err
		},
	}
}
