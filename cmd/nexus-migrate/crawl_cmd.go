package main

import (
	"fmt"
	"io"

	"github.com/harness/nexus-migrate/config"
	"github.com/harness/nexus-migrate/module/migrate"
	"github.com/harness/nexus-migrate/module/migrate/tree"
	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/util/common/printer"

	"github.com/MakeNowJust/heredoc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func crawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "List the artifacts found in the source repository",
		Long: heredoc.Doc(`
			Crawl the source repository and print the relative path of every
			artifact a sync would consider. Nothing is uploaded.
		`),
		Example: heredoc.Doc(`
			$ nexus-migrate crawl -c config.yaml
			$ nexus-migrate crawl -c config.yaml --tree --path com/acme
			$ nexus-migrate crawl -c config.yaml --all
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSourceConfig()
			if err != nil {
				return err
			}
			svc, err := migrate.NewDiscoveryService(cfg)
			if err != nil {
				return fmt.Errorf("failed to create discovery service: %w", err)
			}

			paths, err := svc.Discover(cmd.Context())
			if err != nil {
				return err
			}
			if !config.Global.Crawl.All {
				paths = svc.Filter(paths)
			}
			return printPaths(cmd.OutOrStdout(), cfg, paths, config.Global.Output, config.Global.Crawl)
		},
	}
	cmd.Flags().BoolVar(&config.Global.Crawl.Tree, "tree", false, "Print the paths as a tree")
	cmd.Flags().BoolVar(&config.Global.Crawl.All, "all", false,
		"Print every crawled file, including checksums and metadata")
	cmd.Flags().StringVar(&config.Global.Crawl.Path, "path", "", "Only print the paths below this directory")
	return cmd
}

func printPaths(w io.Writer, cfg *types.Config, paths []string, output string, opts config.CrawlConfig) error {
	root := tree.TransformToTree(paths)
	node, err := tree.GetNodeForPath(root, opts.Path)
	if err != nil {
		return err
	}

	if output == "json" {
		leaves := tree.LeafPaths(node)
		if leaves == nil {
			leaves = []string{}
		}
		return printer.PrintJSON(w, leaves)
	}

	if !opts.Tree {
		for _, p := range tree.LeafPaths(node) {
			fmt.Fprintln(w, p)
		}
		return nil
	}

	rendered := tree.ToPterm(node)
	if node.Key == "" {
		rendered.Text = cfg.Source.RepositoryURL()
	}
	return pterm.DefaultTree.WithRoot(rendered).WithWriter(w).Render()
}
