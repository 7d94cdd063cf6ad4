package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Hermann-web/resumodel/internal/generator"
	"github.com/Hermann-web/resumodel/internal/loader"
	"github.com/Hermann-web/resumodel/internal/logging"
	"github.com/Hermann-web/resumodel/internal/resumeerr"
	"github.com/Hermann-web/resumodel/internal/watch"
)

var (
	// Flags
	dataDir      string
	profileName  string
	templatePath string
	outputPath   string
	verbose      bool
	logFile      string
	watchMode    bool

	// Logger
	logger *zap.Logger
)

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("10")).
	Bold(true)

// rootCmd generates one resume from the data directory.
var rootCmd = &cobra.Command{
	Use:   "resumodel",
	Short: "Generate resumes from YAML data and text templates",
	Long: `resumodel turns a shared pool of YAML records (experiences, projects,
education, ...) into a rendered document, typically LaTeX.

A profile selects which records appear and in what order; the template
decides how they look. One data pool serves any number of resume variants.

Examples:
  # Generate the Data Scientist variant
  resumodel -d examples/hermann -p DATASCIENTIST -t templates/resume.tex.tmpl -o output/hermann.tex

  # Keep regenerating while editing data or the template
  resumodel -d examples/hermann -p DATASCIENTIST -t templates/resume.tex.tmpl -o output/hermann.tex --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logging.Options{Verbose: verbose, File: logFile})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "data directory containing personal_info.yml and shared data files")
	rootCmd.Flags().StringVarP(&profileName, "profile", "p", "", "profile name to use (e.g. DATASCIENTIST, DEVBACKEND)")
	rootCmd.Flags().StringVarP(&templatePath, "template", "t", "", "path to the template file")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "regenerate whenever the data directory or template changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")

	for _, flag := range []string{"data-dir", "profile", "template", "output"} {
		cobra.CheckErr(rootCmd.MarkFlagRequired(flag))
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := generate(); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.New([]string{dataDir, templatePath}, logger)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	fmt.Println("Watching for changes (Ctrl+C to stop)...")
	return w.Run(ctx, generate)
}

// generate performs one full load, resolve, render, write run.
func generate() error {
	l := loader.New(dataDir, logger)

	fmt.Printf("Loading personal info from %s...\n", dataDir)
	personal, err := l.PersonalInfo()
	if err != nil {
		return err
	}

	fmt.Printf("Loading data from %s...\n", dataDir)
	shared, err := l.SharedData()
	if err != nil {
		return err
	}

	fmt.Printf("Building context for profile %q...\n", profileName)
	ctx, err := l.BuildContext(personal, profileName, shared)
	if err != nil {
		return err
	}

	fmt.Printf("Rendering template %s...\n", templatePath)
	gen, err := generator.New(templatePath, logger)
	if err != nil {
		return err
	}
	if err := gen.RenderToFile(ctx, outputPath); err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Success! Resume generated at: %s", outputPath)))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", resumeerr.KindOf(err).Prefix(), err)
		os.Exit(1)
	}
}
