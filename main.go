package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"slockconf/config"
)

const (
	resourceName  = "slock"
	resourceClass = "Slock"
)

var rootCmd = &cobra.Command{
	Use:   "slockconf",
	Short: "Resolve and print the screen locker settings",
	Long: `slockconf builds the screen locker settings table: the compiled-in
identity and colors, overridden by a preference file and then by the X
resource database (slock.color0 .. slock.color3).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		noXrdb, _ := cmd.Flags().GetBool("no-xrdb")
		preview, _ := cmd.Flags().GetBool("preview")

		var overrides []config.Source
		if !noXrdb {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			xr, err := config.LoadXrdb(ctx, resourceName, resourceClass)
			cancel()
			if err != nil {
				log.Printf("xrdb: %v", err)
			} else {
				overrides = append(overrides, xr)
			}
		}

		tbl, rep, err := config.Load(path, overrides...)
		if err != nil && !(path == "" && errors.Is(err, config.ErrNoConfig)) {
			log.Printf("config: %v", err)
		}
		for _, r := range rep.Rejected {
			log.Printf("config: ignoring %v", r)
		}

		settings := tbl.Finalize()
		if _, _, err := settings.Identity().Lookup(); err != nil {
			log.Printf("identity: %v", err)
		}
		if preview {
			fmt.Print(settings.Palette().Swatches())
			return nil
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	},
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "Preference file (TOML or YAML; default: search XDG config dirs)")
	rootCmd.Flags().Bool("no-xrdb", false, "Do not read overrides from the X resource database")
	rootCmd.Flags().BoolP("preview", "p", false, "Render color swatches instead of JSON")
}

func main() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
