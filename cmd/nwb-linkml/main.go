// Command nwb-linkml translates NWB schema namespaces to LinkML schemas and
// pydantic models.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/commands"
)

func main() {
	if err := commands.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		logrus.Errorf("nwb-linkml-%s: %v", commands.Version, err)
		os.Exit(1)
	}
}
