package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mod6/internal/deps"
	"mod6/internal/engine"
)

func newEnvCommand(ctx *commandContext) *cobra.Command {
	var (
		envFile  string
		examples bool
	)

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the engine environment and check the installation",
		Long: `Show the environment the engine runs under and check that its executable
and DATA directory are usable.

The environment comes from --env-file when given, otherwise from the
[engine] section of the configuration (with MODTRAN_EXE and MODTRAN_DATA as
fallbacks).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEngineEnv(ctx, envFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, kv := range env.ToEnviron() {
				fmt.Fprintln(out, kv)
			}
			fmt.Fprintln(out)

			statuses := env.Check()
			rows := make([][]string, len(statuses))
			for i, s := range statuses {
				rows[i] = []string{s.Name, s.Command, yesNo(s.Available), s.Detail}
			}
			writeTable(out, []string{"Requirement", "Location", "Available", "Detail"}, rows, nil)

			if examples {
				files, err := env.ExampleFiles()
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				for _, f := range files {
					fmt.Fprintln(out, f)
				}
			}

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("engine installation incomplete: %s unavailable", missing[0].Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Shell file exporting MODTRAN_EXE and MODTRAN_DATA")
	cmd.Flags().BoolVar(&examples, "examples", false, "List the example inputs shipped with the installation")
	return cmd
}

func resolveEngineEnv(ctx *commandContext, envFile string) (*engine.Env, error) {
	if envFile != "" {
		return engine.FromShellFile(envFile)
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	env, err := cfg.EngineEnv()
	if errors.Is(err, engine.ErrNotSet) {
		return nil, fmt.Errorf("%w (set [engine] in the config, export the variables, or pass --env-file)", err)
	}
	return env, err
}
