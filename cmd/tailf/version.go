package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crowdsecurity/go-cs-lib/version"
)

type cliVersion struct{}

func NewCLIVersion() *cliVersion {
	return &cliVersion{}
}

func fullVersion() string {
	ret := fmt.Sprintf("version: %s\n", version.String())
	ret += fmt.Sprintf("BuildDate: %s\n", version.BuildDate)
	ret += fmt.Sprintf("GoVersion: %s\n", version.GoVersion)
	ret += fmt.Sprintf("Platform: %s\n", version.System)

	return ret
}

func (cli cliVersion) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "version",
		Short:             "Display version",
		Args:              cobra.ExactArgs(0),
		DisableAutoGenTag: true,
		Run: func(_ *cobra.Command, _ []string) {
			os.Stdout.WriteString(fullVersion())
		},
	}

	return cmd
}
