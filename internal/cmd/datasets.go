package cmd

import (
	"github.com/admin/sqlloader/internal/dataset"
	"github.com/admin/sqlloader/internal/errors"
	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the scripts of every known dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			datasets, err := dataset.Find(a.opts.datasets, a.overrides(cmd))
			if err != nil {
				return err
			}
			return a.runner(cmd).List(datasets)
		},
	}
}

func (a *app) newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <dataset-name>",
		Short: "Execute the load scripts of a dataset",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.NewMissingArgument("You must specify a dataset to load")
			}
			ds, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			return a.runner(cmd).Load(cmd.Context(), ds)
		},
	}
}

func (a *app) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <dataset-name>",
		Short: "Reload a dataset, then execute its reset scripts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.NewMissingArgument("You must specify a dataset to reset")
			}
			ds, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			return a.runner(cmd).Reset(cmd.Context(), ds)
		},
	}
}

func (a *app) open(cmd *cobra.Command, name string) (*dataset.Dataset, error) {
	dir := dataset.Locate(a.opts.datasets, name)
	a.log.Debug("opening dataset", "dir", dir)
	return dataset.Open(dir, a.overrides(cmd))
}
