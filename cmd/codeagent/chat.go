package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/intent"
	"github.com/Cyclone1070/codeagent/internal/orchestrator"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	"github.com/Cyclone1070/codeagent/internal/provider/gemini"
	provider "github.com/Cyclone1070/codeagent/internal/provider/models"
	"github.com/Cyclone1070/codeagent/internal/repl"
	"github.com/Cyclone1070/codeagent/internal/session"
	"github.com/Cyclone1070/codeagent/internal/tool/directory"
	"github.com/Cyclone1070/codeagent/internal/tool/file"
	"github.com/Cyclone1070/codeagent/internal/tool/git"
	"github.com/Cyclone1070/codeagent/internal/tool/service/executor"
	"github.com/Cyclone1070/codeagent/internal/tool/service/fs"
	"github.com/Cyclone1070/codeagent/internal/tool/service/ignore"
	"github.com/Cyclone1070/codeagent/internal/tool/service/path"
	"github.com/Cyclone1070/codeagent/internal/tool/shell"
	"github.com/Cyclone1070/codeagent/internal/tool/testrunner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// chatOptions configures one chat session.
type chatOptions struct {
	Root    string
	Offline bool
	Model   string
	Plain   bool

	// LookupEnv reads the process environment; os.LookupEnv in production.
	LookupEnv func(string) (string, bool)
	// ProviderFactory builds the model backend from an API key and model
	// name. It is not called when Offline is set.
	ProviderFactory func(ctx context.Context, apiKey, model string) (provider.Provider, error)
}

// Dependencies holds the components a chat session runs on.
type Dependencies struct {
	Config     *config.Config
	Session    *session.Session
	Resolver   intent.Resolver
	Dispatcher *orchestrator.Dispatcher
	ModelName  string
}

func newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session",
		Long: `Start an interactive session in the project root.

Each line is resolved to one action and executed. Shell commands only run
when they match shell.allowed_commands in ` + config.ConfigFile + `.
GEMINI_API_KEY must be set in the environment or in .env unless --offline
is given.`,
		Args: cobra.NoArgs,
		RunE: chatAction,
	}
	cmd.Flags().Bool("offline", false, "Run without a language model (rule-based resolution, template drafts)")
	cmd.Flags().String("model", "", "Override llm.model from "+config.ConfigFile)
	cmd.Flags().Bool("plain", false, "Disable colours and markdown rendering")
	return cmd
}

func chatAction(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	offline, _ := cmd.Flags().GetBool("offline")
	model, _ := cmd.Flags().GetString("model")
	plain, _ := cmd.Flags().GetBool("plain")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return runChat(ctx, chatOptions{
		Root:            root,
		Offline:         offline,
		Model:           model,
		Plain:           plain,
		LookupEnv:       os.LookupEnv,
		ProviderFactory: newGeminiProvider,
	}, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runChat builds the session and runs the REPL until quit or end of input.
// Configuration problems are returned before any input is read.
func runChat(ctx context.Context, opts chatOptions, in io.Reader, out io.Writer) error {
	deps, err := buildDependencies(ctx, opts)
	if err != nil {
		return err
	}

	renderer := repl.NewRenderer(out)
	if opts.Plain {
		renderer = repl.NewPlainRenderer(out)
	}
	renderer.Welcome(deps.Session, deps.ModelName)

	loop := repl.New(in, renderer, deps.Resolver, deps.Dispatcher, deps.Session)
	err = loop.Run(ctx)

	logrus.WithFields(logrus.Fields{
		"session":  deps.Session.ID(),
		"turns":    len(deps.Session.Turns()),
		"duration": time.Since(deps.Session.StartedAt()).Round(time.Millisecond),
	}).Debug("session ended")
	return err
}

func buildDependencies(ctx context.Context, opts chatOptions) (*Dependencies, error) {
	root, err := path.CanonicaliseRoot(opts.Root)
	if err != nil {
		return nil, &config.ConfigurationError{Path: opts.Root, Cause: err}
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(root)
	if err != nil {
		return nil, err
	}
	if opts.Model != "" {
		cfg.LLM.Model = opts.Model
	}

	policy, err := orchestrator.LoadPolicy(cfg)
	if err != nil {
		return nil, err
	}

	var (
		drafter   models.Drafter = intent.NewTemplateDrafter()
		fallback  intent.Resolver
		modelName string
	)
	if !opts.Offline {
		apiKey, err := loader.LoadAPIKey(root, opts.LookupEnv)
		if err != nil {
			return nil, err
		}
		p, err := opts.ProviderFactory(ctx, apiKey, cfg.LLM.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create model provider: %w", err)
		}
		modelName = p.GetModel()
		drafter = intent.NewModelDrafter(p, cfg.LLM.MaxOutputTokens)
		if cfg.LLM.UseModelResolver {
			fallback = intent.NewModelResolver(p)
		}
	}

	tools, err := createTools(cfg, root, drafter)
	if err != nil {
		return nil, err
	}

	sess := session.New(root, policy)
	logrus.WithFields(logrus.Fields{
		"session":  sess.ID(),
		"root":     root,
		"language": cfg.Project.Language,
		"allowed":  len(policy.Shell.Allow),
		"offline":  opts.Offline,
	}).Debug("session started")

	return &Dependencies{
		Config:     cfg,
		Session:    sess,
		Resolver:   intent.NewChainResolver(intent.NewRuleResolver(cfg.Project.Language), fallback),
		Dispatcher: orchestrator.NewDispatcher(tools, cfg),
		ModelName:  modelName,
	}, nil
}

func createTools(cfg *config.Config, root string, drafter models.Drafter) (orchestrator.Tools, error) {
	osFS := fs.NewOSFileSystem()
	resolver := path.NewResolver(root)

	matcher, err := ignore.NewMatcher(root, osFS)
	if err != nil {
		return orchestrator.Tools{}, fmt.Errorf("failed to load ignore rules: %w", err)
	}

	shellTool := shell.NewShellTool(osFS, executor.NewOSCommandExecutor(cfg), cfg, resolver)

	return orchestrator.Tools{
		ReadFile:  file.NewReadFileTool(osFS, resolver, cfg),
		WriteFile: file.NewWriteFileTool(osFS, resolver, cfg),
		ListFiles: directory.NewListFilesTool(osFS, matcher, resolver),
		Shell:     shellTool,
		Tests:     testrunner.NewTestRunner(shellTool, cfg),
		Git:       git.NewGitTool(root, cfg),
		Drafter:   drafter,
	}, nil
}

func newGeminiProvider(ctx context.Context, apiKey, model string) (provider.Provider, error) {
	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return gemini.New(client, model), nil
}
