package main

import (
	"github.com/spf13/cobra"

	"github.com/olehluchkiv/partcheck/internal/inspect"
)

func newGraphCmd(a *app) *cobra.Command {
	var rf reportFlags

	cmd := &cobra.Command{
		Use:   "graph <addin-id>...",
		Short: "Load add-ins from the registry, then analyze",
		Long: `Graph loads each named add-in, and the add-ins it depends on, from the
registry before collecting assemblies. Add-ins that fail to load are
logged and left out of the analysis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &UsageError{Msg: "no add-in ids given", Usage: cmd.UsageString()}
			}

			logger, cfg, cleanup, err := a.start()
			if err != nil {
				return err
			}
			defer cleanup()
			if err := rf.apply(cmd, &cfg); err != nil {
				return err
			}

			reg, err := openRegistry(cfg, logger)
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := reg.Load(cmd.Context(), id); err != nil {
					logger.Error("add-in can't be loaded", "id", id, "error", err)
				}
			}
			return a.analyze(cmd.Context(), logger, cfg, rf, inspect.Config{Registry: reg})
		},
	}
	rf.register(cmd)
	return cmd
}
