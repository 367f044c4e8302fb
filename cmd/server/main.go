package main

import (
	"log"

	"github.com/spf13/cobra"

	"minisocial/cmd/initdb"
	"minisocial/cmd/seed"
	"minisocial/cmd/serve"
)

func main() {
	root := &cobra.Command{
		Use:          "minisocial",
		Short:        "A minimal social network: posts, follows, likes and comments",
		SilenceUsage: true,
	}
	root.AddCommand(serve.NewServeCommand())
	root.AddCommand(initdb.NewInitDBCommand())
	root.AddCommand(seed.NewSeedCommand())

	if err := root.Execute(); err != nil {
		log.Fatalf("minisocial: %v", err)
	}
}
