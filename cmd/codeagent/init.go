package main

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/tool/service/path"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ConfigFile + " for the project",
		Long: `Write a default ` + config.ConfigFile + ` into the project root.

The project language and test command are detected from pyproject.toml,
setup.py, package.json or go.mod. The shell allow-list starts empty, so no
command may run until you add it.`,
		Args: cobra.NoArgs,
		RunE: initAction,
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing "+config.ConfigFile)
	return cmd
}

func initAction(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	root, err = path.CanonicaliseRoot(root)
	if err != nil {
		return err
	}

	language := config.DetectLanguage(config.ProjectFileReader{}, root)
	written, err := config.WriteProjectFile(root, config.ProjectFileFor(language), force)
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"path": written, "language": language}).Debug("wrote project config")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (language: %s)\n", written, language)
	return nil
}
