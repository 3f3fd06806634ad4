package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/integrations"
	"github.com/matzehuels/phpgen/pkg/integrations/packagist"
)

type depsOpts struct {
	search   string
	category string
	asJSON   bool
}

// depsCommand browses the dependency catalog of a framework.
func (c *CLI) depsCommand() *cobra.Command {
	var opts depsOpts

	cmd := &cobra.Command{
		Use:   "deps <framework>",
		Short: "Browse the dependency catalog of a framework",
		Long: `Browse the dependency catalog of a framework.

Without flags every category is listed. --search matches dependency names
and descriptions, ignoring case; --category limits output to one tab.`,
		Example: `  phpgen deps laravel
  phpgen deps symfony --category api
  phpgen deps laravel --search auth
  phpgen deps info laravel/sanctum`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFrameworks,
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := catalog.ParseFramework(args[0])
			if err != nil {
				return err
			}
			return runDeps(cmd.OutOrStdout(), fw, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "search dependencies by name or description")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "only list one category")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print as JSON")

	cmd.AddCommand(c.depsInfoCommand())
	return cmd
}

func runDeps(w io.Writer, fw *catalog.Framework, opts depsOpts) error {
	if opts.search != "" {
		results := catalog.Search(fw.ID, opts.search)
		if opts.asJSON {
			if results == nil {
				results = []catalog.Result{}
			}
			return writeJSON(w, results)
		}
		if len(results) == 0 {
			fmt.Fprintln(w, StyleDim.Render("No dependencies found"))
			return nil
		}
		t := newTable("Package", "Name", "Category", "Description")
		for _, r := range results {
			t.Row(r.ID, r.Name, r.Category, r.Description)
		}
		fmt.Fprintln(w, t.Render())
		return nil
	}

	categories := fw.Categories()
	if opts.category != "" {
		c, ok := catalog.CategoryByID(fw.ID, opts.category)
		if !ok {
			var ids []string
			for _, c := range categories {
				ids = append(ids, c.ID)
			}
			return errors.New(errors.ErrCodeInvalidInput, "unknown category %q for %s (available: %s)",
				opts.category, fw.Name, strings.Join(ids, ", "))
		}
		categories = []catalog.Category{c}
	}

	if opts.asJSON {
		return writeJSON(w, categories)
	}
	if len(categories) == 0 {
		fmt.Fprintln(w, StyleDim.Render("No dependencies available for this framework"))
		return nil
	}
	for i, cat := range categories {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := cat.Name
		if cat.ID == catalog.DefaultCategory(fw.ID) {
			title += StyleDim.Render(" (default)")
		}
		fmt.Fprintln(w, StyleTitle.Render(title))
		t := newTable("Package", "Name", "Description")
		for _, d := range cat.Dependencies {
			t.Row(d.ID, d.Name, d.Description)
		}
		fmt.Fprintln(w, t.Render())
	}
	return nil
}

// depsInfoCommand looks a package up on Packagist.
func (c *CLI) depsInfoCommand() *cobra.Command {
	var (
		refresh bool
		noCache bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "info <vendor/package>",
		Short: "Show live Packagist metadata for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := errors.ValidateComposerPackageName(integrations.NormalizePkgName(args[0])); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			client := packagist.NewClient(store, cfg.Packagist.TTL, cfg.Packagist.URL)
			fetch := startStep(loggerFromContext(ctx))
			spinner := newSpinner(ctx, fmt.Sprintf("Fetching %s from Packagist...", args[0]))
			spinner.Start()
			info, err := client.FetchPackage(ctx, args[0], refresh)
			if err != nil {
				spinner.StopWithError(fmt.Sprintf("Could not fetch %s", args[0]))
				return fetchError(args[0], err)
			}
			spinner.Stop()
			fetch.done("Fetched "+info.Name, "version", info.Version)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			printPackageInfo(info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or write the cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

// fetchError gives registry failures an error code.
func fetchError(pkg string, err error) error {
	switch {
	case stderrors.Is(err, integrations.ErrNotFound):
		return errors.Wrap(errors.ErrCodePackageNotFound, err, "package %s not found on Packagist", pkg)
	case stderrors.Is(err, context.Canceled):
		return err
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", pkg)
	}
}

func printPackageInfo(info *packagist.PackageInfo) {
	fmt.Println(StyleTitle.Render(info.Name) + " " + StyleNumber.Render(info.Version))
	if info.Description != "" {
		printDetail("%s", info.Description)
	}
	printNewline()

	if info.License != "" {
		printKeyValue("License", info.License)
	}
	if info.PHP != "" {
		printKeyValue("PHP", info.PHP)
	}
	if info.ReleasedAt != nil {
		printKeyValue("Released", info.ReleasedAt.Format("2006-01-02"))
	}
	printKeyValue("Versions", fmt.Sprint(info.Versions))
	if info.Homepage != "" {
		printKeyValue("Homepage", StyleLink.Render(info.Homepage))
	}
	if info.Repository != "" {
		printKeyValue("Repository", StyleLink.Render(info.Repository))
	}
	if len(info.Authors) > 0 {
		printKeyValue("Authors", strings.Join(info.Authors, ", "))
	}

	if len(info.Require) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Requires"))
		names := make([]string, 0, len(info.Require))
		for name := range info.Require {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s %s\n", StyleValue.Render(name), StyleDim.Render(info.Require[name]))
		}
	}
}
