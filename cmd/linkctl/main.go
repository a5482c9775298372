// Command linkctl administers the link store offline: it applies the
// schema, imports seed links, lists the collection and mints development
// tokens.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sundayezeilo/linkbio/internal/app"
	"github.com/sundayezeilo/linkbio/internal/auth"
	"github.com/sundayezeilo/linkbio/internal/config"
	"github.com/sundayezeilo/linkbio/internal/links"
	"github.com/sundayezeilo/linkbio/internal/seed"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linkctl",
		Short:         "linkctl - administer the link-in-bio store",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.LoadEnv()
		},
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}

// withService opens the configured store and runs fn with a links service.
func withService(ctx context.Context, fn func(store *app.Store, svc links.Service) error) error {
	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	svc := links.NewService(links.NewRepository(store.Queries, nil), nil)
	return fn(store, svc)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the links table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(store *app.Store, _ links.Service) error {
				if err := store.Queries.Migrate(cmd.Context()); err != nil {
					return fmt.Errorf("failed to migrate schema: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		file    string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import links from a YAML seed file",
		Long: `Import links from a YAML seed file in one transaction.

Each entry needs name, url and description; tag is optional. An entry's
position in the file becomes its order. Without --file the built-in seed
list is used.

Examples:
  linkctl seed
  linkctl seed --file links.yaml --replace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadEntries(file)
			if err != nil {
				return err
			}

			return withService(cmd.Context(), func(_ *app.Store, svc links.Service) error {
				res, err := seed.Run(cmd.Context(), svc, entries, replace)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "imported %d links\n", res.Imported)
				fmt.Fprintf(out, "total links in store: %d\n", res.Total)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file (default: built-in list)")
	cmd.Flags().BoolVar(&replace, "replace", false, "delete existing links before importing")

	return cmd
}

func loadEntries(file string) ([]seed.Entry, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.Load(file)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print links in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(_ *app.Store, svc links.Service) error {
				all, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ORDER\tNAME\tTAG\tURL\tID")
				for _, l := range all {
					tag := "-"
					if l.Tag != nil {
						tag = *l.Tag
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", l.Order, l.Name, tag, l.URL, l.ID)
				}
				return tw.Flush()
			})
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token (hmac provider only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAuth()
			if err != nil {
				return err
			}
			if cfg.Provider != config.ProviderHMAC {
				return fmt.Errorf("token requires AUTH_PROVIDER=%s, got %q", config.ProviderHMAC, cfg.Provider)
			}

			if email == "" {
				email = cfg.AdminEmail
			}

			issuer := auth.NewHMACIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
			token, err := issuer.Issue(email, ttl)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email claim (default: ADMIN_EMAIL)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
