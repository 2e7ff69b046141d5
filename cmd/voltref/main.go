package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"voltref/internal/bootstrap"
	"voltref/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configRoot string

	root := &cobra.Command{
		Use:           "voltref",
		Short:         "Reference electrode potential converter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configRoot, "config", "", "config root (default ~/.voltref)")

	root.AddCommand(newTUICmd(&configRoot))
	root.AddCommand(newConvertCmd(&configRoot))
	root.AddCommand(newElectrodeCmd(&configRoot))
	root.AddCommand(newPackCmd(&configRoot))
	root.AddCommand(newReindexCmd(&configRoot))
	root.AddCommand(newPluginCmd(&configRoot))
	return root
}

func loadApp(configRoot string) (*bootstrap.App, error) {
	root := configRoot
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		root = filepath.Join(home, ".voltref")
	}
	cfg, err := config.New(root)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(configRoot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run voltref terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newConvertCmd(configRoot *string) *cobra.Command {
	var value float64
	var from, to string

	convert := &cobra.Command{
		Use:   "convert --value <volts> --from <electrode> --to <electrode>",
		Short: "Convert a potential between reference electrode scales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("value") {
				value = app.Defaults.Potential
			}
			if strings.TrimSpace(from) == "" {
				from = app.Defaults.From
			}
			if strings.TrimSpace(to) == "" {
				to = app.Defaults.To
			}
			out, err := app.ScaleCLI.Convert(context.Background(), value, from, to)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%+.3f V vs. %s = %+.3f V vs. %s\n", out.Value, out.From, out.Result, out.To)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%+.3f V vs. SHE)\n", out.VsSHE)
			return nil
		},
	}
	convert.Flags().Float64Var(&value, "value", 0, "potential in volts")
	convert.Flags().StringVar(&from, "from", "", "source electrode name or id")
	convert.Flags().StringVar(&to, "to", "", "target electrode name or id")
	return convert
}

func newElectrodeCmd(configRoot *string) *cobra.Command {
	electrode := &cobra.Command{Use: "electrode", Short: "Electrode table queries"}

	electrode.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known reference electrodes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			electrodes, err := app.ScaleCLI.ListElectrodes(context.Background())
			if err != nil {
				return err
			}
			for _, e := range electrodes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%+.3f V\t%s\t%s\n", e.ID, e.OffsetVolts, e.Name, e.Pack)
			}
			return nil
		},
	})

	var key string
	show := &cobra.Command{
		Use:   "show --id <id-or-name>",
		Short: "Show one electrode's offset and origin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			e, err := app.ScaleCLI.GetElectrode(context.Background(), key)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\noffset: %+.3f V vs. SHE\npack: %s\n", e.ID, e.Name, e.OffsetVolts, e.Pack)
			return nil
		},
	}
	show.Flags().StringVar(&key, "id", "", "electrode id or exact name")
	electrode.AddCommand(show)
	return electrode
}

func newPackCmd(configRoot *string) *cobra.Command {
	pack := &cobra.Command{Use: "pack", Short: "Electrode pack queries"}
	pack.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List electrode packs and entry counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			packs, err := app.ScaleCLI.ListPacks(context.Background())
			if err != nil {
				return err
			}
			for _, p := range packs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d electrodes\n", p.Name, p.Count)
			}
			return nil
		},
	})
	return pack
}

func newReindexCmd(configRoot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite electrode index from all sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			if err := app.ScaleCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newPluginCmd(configRoot *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Electrode provider plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List provider manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			providers, err := app.ProviderCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(providers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no providers configured")
				return nil
			}
			for _, p := range providers {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate provider checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			results, err := app.ProviderCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no providers configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var providerName string
	electrodesCmd := &cobra.Command{
		Use:   "electrodes --provider <name>",
		Short: "List electrodes served by one provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(providerName) == "" {
				return fmt.Errorf("--provider is required")
			}
			app, err := loadApp(*configRoot)
			if err != nil {
				return err
			}
			electrodes, err := app.ProviderCLI.Electrodes(context.Background(), providerName)
			if err != nil {
				return err
			}
			if len(electrodes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no electrodes")
				return nil
			}
			for _, e := range electrodes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%+.3f V\n", e.Name, e.OffsetVolts)
			}
			return nil
		},
	}
	electrodesCmd.Flags().StringVar(&providerName, "provider", "", "provider name")
	plugin.AddCommand(electrodesCmd)

	return plugin
}
