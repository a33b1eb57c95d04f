package commands

import (
	"fmt"
	"io"

	"github.com/dairy-tools/milk-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilesPath string
	out          io.Writer
}

func NewProfilesCmd(out io.Writer) *cobra.Command {
	pc := &ProfilesCmd{out: out}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List configured reporting-service profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilesPath, "profiles", "", "Path to the reporting-service profiles file")
	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, args []string) error {
	registry, err := config.NewRegistry(pc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %s: %w", pc.profilesPath, err)
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}

	for _, name := range profiles {
		fmt.Fprintln(pc.out, name)
	}
	return nil
}
