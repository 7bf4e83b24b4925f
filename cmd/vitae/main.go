// Command vitae renders a YAML CV as a force-directed graph: an
// interactive terminal viewer, static exports, and a live-reload web
// server.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/vitae/pkg/version"
)

var (
	brand  = color.New(color.FgHiMagenta, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "vitae",
	Short: "vitae — a force-directed CV visualizer",
	Long: brand.Sprint("vitae") + " — render a YAML curriculum vitae as a living graph\n" +
		subtle.Sprint("View it in the terminal, export it, or serve it with live reload"),
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("vitae {{.Version}}\n")
	rootCmd.AddCommand(
		viewCmd(),
		exportCmd(),
		serveCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "vitae: %v\n", err)
		os.Exit(1)
	}
}
