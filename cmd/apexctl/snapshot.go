package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Record a score snapshot for every workspace now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, closeFn, err := openServices()
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := svcs.Snapshots.RecordAllSnapshots(time.Now().UTC().Truncate(time.Second))
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %d snapshots\n", n)
			return nil
		},
	}
}
