// Command codeagent is a sandboxed coding agent: it turns short natural
// language instructions into file edits, allow-listed commands, test runs
// and commits inside one project directory.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newApp().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func processGlobalFlags(rootCmd *cobra.Command) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
	if debug, _ := rootCmd.Flags().GetBool("debug"); debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logFormat, _ := rootCmd.Flags().GetString("log-format")
	switch logFormat {
	case "json":
		logrus.StandardLogger().SetFormatter(new(logrus.JSONFormatter))
	case "text":
		logrus.StandardLogger().SetFormatter(new(logrus.TextFormatter))
	default:
		return fmt.Errorf("unsupported log-format: %q", logFormat)
	}
	return nil
}

func newApp() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codeagent",
		Short: "A sandboxed coding agent for one project directory",
		Example: `  Create a config for the current project:
  $ codeagent init

  Start a session:
  $ codeagent chat

  Start a session without a language model:
  $ codeagent chat --offline`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Debug mode")
	rootCmd.PersistentFlags().String("log-format", "text", "Set the logging format [text, json]")
	rootCmd.PersistentFlags().String("path", "", "Project root (default: current directory)")
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return processGlobalFlags(rootCmd)
	}

	rootCmd.AddCommand(
		newChatCommand(),
		newInitCommand(),
	)
	return rootCmd
}

// projectRoot returns --path or the working directory.
func projectRoot(cmd *cobra.Command) (string, error) {
	root, _ := cmd.Flags().GetString("path")
	if root != "" {
		return root, nil
	}
	return os.Getwd()
}
