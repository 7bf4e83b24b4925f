package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/vitae/pkg/config"
	"github.com/vanderheijden86/vitae/pkg/export"
)

func exportCmd() *cobra.Command {
	var (
		outDir  string
		title   string
		width   int
		height  int
		formats []string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "export [cv.yaml]",
		Short: "Render the CV to static artifacts (svg, png, json, sqlite, html)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			path := cfg.CVPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no cv file: pass a path or set cv_path in the config")
			}

			opts := export.DefaultOptions(path)
			if cfg.Export.OutDir != "" {
				opts.OutDir = cfg.Export.OutDir
			}
			if cfg.Export.Width > 0 && cfg.Export.Height > 0 {
				opts.Width, opts.Height = cfg.Export.Width, cfg.Export.Height
			}
			if fs, err := parseFormats(cfg.Export.Formats); err == nil && len(fs) > 0 {
				opts.Formats = fs
			}

			if cmd.Flags().Changed("out") {
				opts.OutDir = outDir
			}
			if cmd.Flags().Changed("title") {
				opts.Title = title
			}
			if cmd.Flags().Changed("width") {
				opts.Width = width
			}
			if cmd.Flags().Changed("height") {
				opts.Height = height
			}
			if cmd.Flags().Changed("format") {
				fs, err := parseFormats(formats)
				if err != nil {
					return err
				}
				opts.Formats = fs
			}

			// With no flags at all, let the wizard collect the options.
			if cmd.Flags().NFlag() == 0 && !yes {
				opts, err = export.RunWizard(opts)
				if err != nil {
					return err
				}
			}

			e, err := export.NewExporter(opts)
			if err != nil {
				return err
			}
			if err := e.Run(); err != nil {
				return err
			}

			for _, f := range opts.Formats {
				good.Printf("  ✓ %s\n", e.Path(f))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "./vitae-out", "Output directory")
	cmd.Flags().StringVar(&title, "title", "Curriculum Vitae", "Page title for HTML output")
	cmd.Flags().IntVar(&width, "width", 1600, "Viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 1000, "Viewport height in pixels")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Formats to write (svg, png, json, sqlite, html)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the interactive wizard")
	return cmd
}

func parseFormats(names []string) ([]export.Format, error) {
	out := make([]export.Format, 0, len(names))
	for _, name := range names {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
