// Command persistctl inspects and converts files written by persistent
// values.
//
//	persistctl show settings.toml --to json-pretty
//	persistctl convert settings.toml settings.yaml
package main

import (
	"fmt"
	"os"

	"github.com/AndrewDonelson/persistent"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	from      string
	showTo    string
	convertTo string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "persistctl",
		Short:        "inspect and convert persisted values",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.from, "from", "", "input format (default: from file extension)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log storage events to stderr")

	show := &cobra.Command{
		Use:   "show <file>",
		Short: "decode a file and print it in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args[0])
		},
	}
	show.Flags().StringVar(&opts.showTo, "to", persistent.JSONPretty.String(), "output format")

	convert := &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "rewrite a file in another format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0], args[1])
		},
	}
	convert.Flags().StringVar(&opts.convertTo, "to", "", "output format (default: from file extension)")

	version := &cobra.Command{
		Use:   "version",
		Short: "print version info",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), persistent.Version())
		},
	}

	root.AddCommand(show, convert, version)
	return root
}

// Document is the generic shape every converted file is decoded into.
type Document = map[string]any

func (o *options) logger(cmd *cobra.Command) persistent.Logger {
	if !o.verbose {
		return nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "logger:", err)
		return nil
	}
	return persistent.NewZapLogger(l)
}

// formatFor returns the named format, or the one implied by path.
func formatFor(name, path string) (persistent.Format, error) {
	if name != "" {
		return persistent.ParseFormat(name)
	}
	return persistent.FormatForPath(path)
}

// open loads an existing file into a Persistent[Document].
func open(cmd *cobra.Command, opts *options, path string) (*persistent.Persistent[Document], error) {
	f, err := formatFor(opts.from, path)
	if err != nil {
		return nil, err
	}
	fsb := persistent.NewFileBackend()
	ok, err := fsb.Exists(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, persistent.ErrNotFound)
	}
	return persistent.New[Document]().
		Name(path).
		Format(f).
		Path(path).
		Default(Document{}).
		Backend(fsb).
		Logger(opts.logger(cmd)).
		Context(cmd.Context()).
		Build()
}

func runShow(cmd *cobra.Command, opts *options, path string) error {
	src, err := open(cmd, opts, path)
	if err != nil {
		return err
	}
	to, err := persistent.ParseFormat(opts.showTo)
	if err != nil {
		return err
	}
	out, err := to.Serialize(src.Get())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	if to.IsBinary() || len(out) == 0 || out[len(out)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}

func runConvert(cmd *cobra.Command, opts *options, srcPath, dstPath string) error {
	src, err := open(cmd, opts, srcPath)
	if err != nil {
		return err
	}
	to, err := formatFor(opts.convertTo, dstPath)
	if err != nil {
		return err
	}
	dst, err := persistent.New[Document]().
		Name(dstPath).
		Format(to).
		Path(dstPath).
		Default(Document{}).
		Unloaded(true).
		Logger(opts.logger(cmd)).
		Context(cmd.Context()).
		Build()
	if err != nil {
		return err
	}
	if err := dst.Set(src.Get()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", dst.Location(), to)
	return nil
}
