package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dairy-tools/milk-atlas/pkg/services/config"
	svcdirectory "github.com/dairy-tools/milk-atlas/pkg/services/directory"
	"github.com/dairy-tools/milk-atlas/pkg/store/duckdb"
	"github.com/dairy-tools/milk-atlas/pkg/store/duckdb/directory"
	"github.com/dairy-tools/milk-atlas/pkg/store/httpclient"
	"github.com/spf13/cobra"
)

type SyncCmd struct {
	profilesPath string
	profile      string
	dbPath       string
}

func NewSyncCmd() *cobra.Command {
	sc := &SyncCmd{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the upstream device directory into the local store",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilesPath, "profiles", "", "Path to the reporting-service profiles file")
	cmd.Flags().StringVar(&sc.profile, "profile", "default", "Profile to connect with")
	cmd.Flags().StringVar(&sc.dbPath, "db", "milk-atlas.db", "Path to the local directory database")

	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (sc *SyncCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	registry, err := config.NewRegistry(sc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %s: %w", sc.profilesPath, err)
	}
	profile, err := registry.GetProfile(ctx, sc.profile)
	if err != nil {
		return err
	}

	client, err := httpclient.NewReportingClient(profile.Host, profile.Token)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: sc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open directory database: %w", err)
	}
	defer db.Close()

	store, err := directory.NewStore(db)
	if err != nil {
		return err
	}

	n, err := svcdirectory.NewSyncer(client, store).Sync(ctx)
	if err != nil {
		return fmt.Errorf("directory sync failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Synced %d devices\n", n)
	return nil
}
