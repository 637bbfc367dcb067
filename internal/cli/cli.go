package cli

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/authoring"
	"github.com/SAP-F-2025/quiz-service/internal/client"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed sample_quiz.yaml
var sampleQuiz []byte

// Client is the part of the quiz API the CLI needs
type Client interface {
	authoring.QuizCreator
	authoring.QuizBrowser
	GetQuiz(ctx context.Context, id uint) (*models.Quiz, error)
}

// Run parses global flags, then dispatches the subcommand
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	defaultServer := os.Getenv("QUIZCTL_API_URL")
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}

	fs := flag.NewFlagSet("quizctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	server := fs.String("server", defaultServer, "quiz service base URL")
	timeout := fs.Duration("timeout", 5*time.Second, "HTTP timeout")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	api := client.NewHTTPClient(*server, &http.Client{Timeout: *timeout})
	err := Dispatch(ctx, api, fs.Args(), stdin, stdout)
	return describeClientError(err, api.BaseURL())
}

// Dispatch runs one subcommand against api
func Dispatch(ctx context.Context, api Client, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		printUsage(stdout)
		return errors.New("missing command")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "list":
		return listQuizzes(ctx, api, stdout)
	case "get":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return getQuiz(ctx, api, id, stdout)
	case "delete":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return deleteQuiz(ctx, api, id, stdout)
	case "create":
		return createQuiz(ctx, api, rest, stdin, stdout)
	case "seed":
		return submitDocument(ctx, api, sampleQuiz, stdout)
	case "help":
		printUsage(stdout)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func listQuizzes(ctx context.Context, api Client, out io.Writer) error {
	list := authoring.NewQuizList(api)
	if err := list.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", list.Error, err)
	}

	if len(list.Quizzes) == 0 {
		fmt.Fprintln(out, "No quizzes yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tQUESTIONS\tCREATED")
	for _, q := range list.Quizzes {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", q.ID, q.Title, q.QuestionCount, q.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

// getQuiz prints the quiz as a document that create -f accepts
func getQuiz(ctx context.Context, api Client, id uint, out io.Writer) error {
	quiz, err := api.GetQuiz(ctx, id)
	if err != nil {
		return err
	}

	doc := models.CreateQuizRequest{Title: quiz.Title}
	for _, q := range quiz.Questions {
		doc.Questions = append(doc.Questions, models.QuestionDraft{
			Type:     q.Type,
			Question: q.Question,
			Options:  q.Options,
			Answers:  q.Answers,
		})
	}

	fmt.Fprintf(out, "# quiz %d\n", quiz.ID)
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode quiz: %w", err)
	}
	return enc.Close()
}

func deleteQuiz(ctx context.Context, api Client, id uint, out io.Writer) error {
	list := authoring.NewQuizList(api)
	if err := list.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", list.Error, err)
	}
	fmt.Fprintf(out, "Deleted quiz %d\n", id)
	return nil
}

func createQuiz(ctx context.Context, api Client, args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("f", "", "quiz YAML file, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("create: -f is required")
	}

	var (
		data []byte
		err  error
	)
	if *file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(*file)
	}
	if err != nil {
		return fmt.Errorf("failed to read quiz file: %w", err)
	}

	return submitDocument(ctx, api, data, out)
}

func submitDocument(ctx context.Context, api Client, data []byte, out io.Writer) error {
	var doc models.CreateQuizRequest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid quiz document: %w", err)
	}

	form, err := authoring.FormFromRequest(&doc)
	if err != nil {
		return fmt.Errorf("invalid quiz document: %w", err)
	}

	quiz, err := form.Submit(ctx, api)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
			return fmt.Errorf("%s: %s", form.Error, apiErr.Details)
		}
		return fmt.Errorf("%s: %w", form.Error, err)
	}

	fmt.Fprintf(out, "Created quiz %d %q with %d questions\n", quiz.ID, quiz.Title, len(quiz.Questions))
	return nil
}

func parseID(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one quiz id")
	}
	id, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid quiz id %q", args[0])
	}
	return uint(id), nil
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, client.ErrServiceUnavailable) {
		return fmt.Errorf("quiz service unavailable at %s", serverURL)
	}
	return err
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: quizctl [-server URL] [-timeout 5s] <command>")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  list")
	fmt.Fprintln(out, "  get <id>")
	fmt.Fprintln(out, "  delete <id>")
	fmt.Fprintln(out, "  create -f <file.yaml|->")
	fmt.Fprintln(out, "  seed")
}
