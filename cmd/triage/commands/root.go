// ABOUTME: Root command and global flags for the triage CLI
// ABOUTME: Wires subcommands and configures logging from --verbose/--quiet
package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
████████╗██████╗ ██╗ █████╗  ██████╗ ███████╗
╚══██╔══╝██╔══██╗██║██╔══██╗██╔════╝ ██╔════╝
   ██║   ██████╔╝██║███████║██║  ███╗█████╗
   ██║   ██╔══██╗██║██╔══██║██║   ██║██╔══╝
   ██║   ██║  ██║██║██║  ██║╚██████╔╝███████╗
   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Route questions to news, math, or book answers",
		Long: banner + `

Triage classifies each question as NEWS, MATH, or BOOK and answers it
with the matching responder: web search for news and books, local
arithmetic or a language model for math.

Configuration comes from the environment (OPENAI_API_KEY, TAVILY_API_KEY,
...) and optional .env files in the working directory or
$XDG_CONFIG_HOME/triage/.env.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "text", "json", "yaml":
			default:
				return fmt.Errorf("invalid --format %q (want auto, text, json, or yaml)", outputFormat)
			}
			configureLogging(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show routing and workflow logs")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, json, yaml")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewAskCmd(),
		NewClassifyCmd(),
		NewBatchCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// configureLogging sends the standard logger to w only in verbose mode
func configureLogging(w io.Writer) {
	if verbose {
		log.SetOutput(w)
		return
	}
	log.SetOutput(io.Discard)
}

// resolveFormat maps "auto" to text for terminals and json otherwise
func resolveFormat(out io.Writer) string {
	if outputFormat != "auto" {
		return outputFormat
	}
	if f, ok := out.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "text"
		}
		return "json"
	}
	return "text"
}
