package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alkime/quill/internal/cli/editor"
	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/config"
	"github.com/alkime/quill/internal/keyring"
	"github.com/alkime/quill/internal/logger"
	"github.com/alkime/quill/internal/post"
	"github.com/alkime/quill/internal/service"
	"github.com/alkime/quill/internal/tui"
	"github.com/alkime/quill/internal/tui/commenting"
	"github.com/alkime/quill/internal/watch"
	"github.com/schollz/progressbar/v3"
)

// CLI defines the quill command structure.
type CLI struct {
	Ideas    IdeasCmd    `cmd:"" help:"Generate blog post ideas for a topic"`
	Draft    DraftCmd    `cmd:"" help:"Draft a blog post and comment on it, printing the result"`
	Comments CommentsCmd `cmd:"" help:"Append persona comments to an existing post"`
	Create   CreateCmd   `cmd:"" help:"Write a new post with AI comments in its frontmatter"`
	Enhance  EnhanceCmd  `cmd:"" help:"Comment on every post that has no Comments section"`
	Watch    WatchCmd    `cmd:"" help:"Comment on posts as they are added to the posts directory"`
	Personas PersonasCmd `cmd:"" help:"List the personas comments are written as"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

// IdeasCmd prints post ideas.
type IdeasCmd struct {
	Topic string `arg:"" optional:"" help:"Topic (prompted for when omitted)"`
}

// Run executes the ideas command.
func (c *IdeasCmd) Run() error {
	topic := strings.TrimSpace(c.Topic)
	if topic == "" {
		var err error
		if topic, err = prompt(os.Stdin, "Enter a topic for blog post ideas: "); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc, err := setup(os.Stderr)
	if err != nil {
		return err
	}

	ideas, err := svc.Ideas(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to generate ideas: %w", err)
	}

	fmt.Println(ideas)

	return nil
}

// DraftCmd prints a drafted post followed by comments on it.
type DraftCmd struct {
	Title string `arg:"" help:"Post title"`
	Count int    `flag:"" default:"3" help:"Number of comments"`
}

// Run executes the draft command.
func (c *DraftCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	svc, err := setup(os.Stderr)
	if err != nil {
		return err
	}

	body, generated, err := svc.Draft(ctx, c.Title, c.Count)
	if err != nil {
		return fmt.Errorf("failed to draft post: %w", err)
	}

	fmt.Println(body)
	fmt.Println()
	fmt.Println(post.CommentsHeading)
	fmt.Println()
	fmt.Println(comments.Format(generated))

	return nil
}

// CommentsCmd comments on one post, picked interactively unless --index
// is given.
type CommentsCmd struct {
	Index int  `flag:"" short:"i" help:"1-based position of the post in the sorted listing"`
	Count int  `flag:"" short:"n" default:"3" help:"Number of comments"`
	Plain bool `flag:"" help:"No spinner; print comments when done"`
}

// Run executes the comments command.
func (c *CommentsCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	// Log lines would tear through the TUI.
	logOut := io.Writer(os.Stderr)
	if !c.Plain {
		logOut = io.Discard
	}

	svc, err := setup(logOut)
	if err != nil {
		return err
	}

	names, err := svc.Store().List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		return fmt.Errorf("no posts found in %s", svc.Store().Dir())
	}

	idx, err := c.pick(names)
	if err != nil {
		return err
	}

	name := names[idx]
	run := func(ctx context.Context) ([]comments.Comment, error) {
		return svc.CommentOnPost(ctx, name, c.Count)
	}

	if !c.Plain {
		if _, err := tui.GenerateComments(ctx, name, run); err != nil {
			return fmt.Errorf("failed to comment on %s: %w", name, err)
		}

		return nil
	}

	generated, err := run(ctx)
	if err != nil {
		return fmt.Errorf("failed to comment on %s: %w", name, err)
	}

	fmt.Printf("Added %d comments to %s\n", len(generated), name)
	for _, cm := range generated {
		fmt.Printf("  %s: %s\n", cm.Persona, commenting.Preview(cm.Text, commenting.PreviewWidth))
	}

	return nil
}

func (c *CommentsCmd) pick(names []string) (int, error) {
	if c.Index == 0 {
		if c.Plain {
			for i, name := range names {
				fmt.Printf("%3d  %s\n", i+1, name)
			}

			return 0, errors.New("--plain needs --index; pick a number from the list above")
		}

		return tui.PickPost(names)
	}

	if c.Index < 1 || c.Index > len(names) {
		return 0, fmt.Errorf("index %d out of range: %d posts available", c.Index, len(names))
	}

	return c.Index - 1, nil
}

// CreateCmd writes a new post.
type CreateCmd struct {
	Title    string `arg:"" help:"Post title"`
	BodyFile string `flag:"" type:"existingfile" help:"Read the body from a file instead of drafting it"`
	Edit     bool   `flag:"" help:"Open the new post in $QUILL_EDITOR or $EDITOR"`
	Count    int    `flag:"" default:"3" help:"Number of comments"`
}

// Run executes the create command.
func (c *CreateCmd) Run() error {
	var body string
	if c.BodyFile != "" {
		data, err := os.ReadFile(c.BodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		body = string(data)
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc, err := setup(os.Stderr)
	if err != nil {
		return err
	}

	path, err := svc.CreatePost(ctx, c.Title, body, c.Count)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	fmt.Printf("Post saved to %s\n", path)

	if c.Edit {
		return editor.Open(path)
	}

	return nil
}

// EnhanceCmd comments on every post without a Comments section.
type EnhanceCmd struct {
	Count int `flag:"" default:"3" help:"Number of comments per post"`
}

// Run executes the enhance command.
func (c *EnhanceCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	svc, err := setup(io.Discard)
	if err != nil {
		return err
	}

	pending, err := svc.Pending()
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		fmt.Println("Every post already has comments.")
		return nil
	}

	bar := progressbar.NewOptions(len(pending),
		progressbar.OptionSetDescription("Commenting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	done, err := svc.Enhance(ctx, c.Count, func(string) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	fmt.Printf("Commented on %d of %d posts\n", done, len(pending))

	if err != nil {
		return fmt.Errorf("enhance stopped: %w", err)
	}

	return nil
}

// WatchCmd comments on new or changed posts until interrupted.
type WatchCmd struct {
	Count    int           `flag:"" default:"3" help:"Number of comments per post"`
	Debounce time.Duration `flag:"" default:"500ms" help:"Quiet period before a changed post is processed"`
}

// Run executes the watch command.
func (c *WatchCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	svc, err := setup(os.Stderr)
	if err != nil {
		return err
	}

	store := svc.Store()
	w := watch.New(store.Dir(), post.Ext, c.Debounce, slog.Default())

	return w.Run(ctx, func(ctx context.Context, name string) {
		p, err := store.Load(name)
		if err != nil {
			slog.Warn("Skipping post", "post", name, "error", err)
			return
		}

		if p.HasComments() || strings.TrimSpace(p.Body) == "" {
			return
		}

		if _, err := svc.CommentOnPost(ctx, name, c.Count); err != nil {
			slog.Error("Failed to comment on post", "post", name, "error", err)
		}
	})
}

// PersonasCmd lists the configured personas.
type PersonasCmd struct{}

// Run executes the personas command.
func (c *PersonasCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	reg, err := service.Registry(cfg)
	if err != nil {
		return err
	}

	for _, p := range reg.All() {
		fmt.Printf("%-20s %s\n", p.Name, p.Description)
	}

	return nil
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey   SetKeyCmd   `cmd:"" help:"Store an API key in system keychain"`
	ListKeys ListKeysCmd `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Provider string `arg:"" enum:"openai,anthropic" help:"Provider name (openai or anthropic)"`
	Secret   string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.FromProvider(c.Provider)
	if err != nil {
		return fmt.Errorf("invalid provider: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Provider)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	for _, apiKey := range keyring.AllAPIKeys() {
		status := "not set"
		if keyring.IsSet(apiKey) {
			status = "configured"
		}
		fmt.Printf("%s: %s\n", apiKey.Provider(), status)
	}

	fmt.Println("\nEnvironment variables take priority over the keychain.")

	return nil
}

func main() {
	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("quill"),
		kong.Description("Draft blog posts and add persona comments with a local language model."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}

// setup loads configuration and builds the service, logging to w.
func setup(w io.Writer) (*service.Service, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	keyring.FillConfig(cfg)

	log := logger.SetupLogger(cfg, logger.Text, w)

	return service.FromConfig(cfg, log)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func prompt(r io.Reader, question string) (string, error) {
	fmt.Print(question)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errors.New("no input")
	}

	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return "", errors.New("topic cannot be empty")
	}

	return answer, nil
}
