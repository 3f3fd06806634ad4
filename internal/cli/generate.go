package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/generate"
	"github.com/matzehuels/phpgen/pkg/project"
)

// generateOpts mirrors the project form. Only flags that were set on the
// command line override the preset or the defaults.
type generateOpts struct {
	preset      string
	framework   string
	php         string
	name        string
	description string
	authorName  string
	authorEmail string
	deps        []string
	features    []string
	asJSON      bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a project from the given options",
		Long: `Generate a project from the given options.

Options start from the form defaults (Laravel, PHP 8.2, "my-app"), are
overlaid with a TOML preset if --preset is given, and finally with any
flags on the command line.`,
		Example: `  phpgen generate --framework symfony --php 8.3 --name shop --dep api-platform/core
  phpgen generate --preset shop.toml --feature docker`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd.Flags())
			if err != nil {
				return err
			}
			res, err := generate.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("generated", "id", res.ID)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.preset, "preset", "p", "", "TOML preset file")
	f.StringVarP(&opts.framework, "framework", "f", project.DefaultFramework, "framework")
	f.StringVar(&opts.php, "php", project.DefaultPHPVersion, "PHP version ("+strings.Join(project.PHPVersions(), ", ")+")")
	f.StringVarP(&opts.name, "name", "n", project.DefaultName, "project name")
	f.StringVar(&opts.description, "description", project.DefaultDescription, "project description")
	f.StringVar(&opts.authorName, "author-name", "", "author name")
	f.StringVar(&opts.authorEmail, "author-email", "", "author email")
	f.StringArrayVarP(&opts.deps, "dep", "d", nil, "add a Composer dependency (repeatable)")
	f.StringSliceVar(&opts.features, "feature", nil, "enable a feature, e.g. docker,ci (repeatable)")
	f.BoolVar(&opts.asJSON, "json", false, "print as JSON")

	_ = cmd.RegisterFlagCompletionFunc("framework", completeFrameworks)
	_ = cmd.RegisterFlagCompletionFunc("php", cobra.FixedCompletions(project.PHPVersions(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("feature", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var ids []string
		for _, f := range project.Features() {
			ids = append(ids, f.ID)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// config builds the project configuration from preset and flags.
func (o *generateOpts) config(flags *pflag.FlagSet) (project.Config, error) {
	cfg := project.Default()
	if o.preset != "" {
		var err error
		if cfg, err = project.LoadPreset(o.preset); err != nil {
			return project.Config{}, err
		}
	}

	if flags.Changed("framework") {
		if err := cfg.SetFramework(o.framework); err != nil {
			return project.Config{}, err
		}
	}
	if flags.Changed("php") {
		if err := cfg.SetPHPVersion(o.php); err != nil {
			return project.Config{}, err
		}
	}
	text := []struct {
		flag, label string
		src         string
		dst         *string
	}{
		{"name", "project name", o.name, &cfg.Name},
		{"description", "description", o.description, &cfg.Description},
		{"author-name", "author name", o.authorName, &cfg.AuthorName},
		{"author-email", "author email", o.authorEmail, &cfg.AuthorEmail},
	}
	for _, t := range text {
		if !flags.Changed(t.flag) {
			continue
		}
		if err := errors.ValidateText(t.label, t.src); err != nil {
			return project.Config{}, err
		}
		*t.dst = t.src
	}
	for _, id := range o.deps {
		if _, err := cfg.AddDependency(id); err != nil {
			return project.Config{}, err
		}
	}
	for _, id := range o.features {
		if err := cfg.SetFeature(strings.TrimSpace(id), true); err != nil {
			return project.Config{}, err
		}
	}
	return cfg, nil
}

func printResult(w io.Writer, res *generate.Result) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+res.Message)
	fmt.Fprintln(w)
	kv := func(k, v string) {
		fmt.Fprintln(w, renderKey(k)+" "+StyleValue.Render(v))
	}
	kv("ID", res.ID)
	kv("Name", res.Name)
	kv("Framework", res.Framework)
	kv("PHP", res.PHPVersion)
	if len(res.Dependencies) > 0 {
		kv("Dependencies", strings.Join(res.Dependencies, ", "))
	}
	if len(res.Features) > 0 {
		kv("Features", strings.Join(res.Features, ", "))
	}
}
