package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/logbook/api-contract-tests/config"
)

type commandParams struct {
	configPath string
	overrides  config.Overrides
	debug      bool
	debugAll   bool
}

// Read parses the command line. Only flags that were given explicitly become overrides, so that
// an omitted flag never hides a value from the config file or the environment.
func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	var (
		baseURL        string
		adminUsername  string
		adminPassword  string
		memberPassword string
		keepData       bool
	)

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.configPath, "config", "", "path of a YAML configuration file")
	fs.StringVar(&baseURL, "url", config.DefaultBaseURL, "base URL of the logbook service (env "+config.EnvBaseURL+")")
	fs.StringVar(&adminUsername, "admin-user", config.DefaultAdminUsername, "admin username (env "+config.EnvAdminUsername+")")
	fs.StringVar(&adminPassword, "admin-password", config.DefaultAdminPassword, "admin password (env "+config.EnvAdminPassword+")")
	fs.StringVar(&memberPassword, "member-password", config.DefaultMemberPassword,
		"password for the member account created by the run (env "+config.EnvMemberPassword+")")
	fs.BoolVar(&keepData, "keep-data", false, "do not delete the created log head and member account (env "+config.EnvKeepData+")")
	fs.BoolVar(&c.debug, "debug", false, "print debug output if the run fails")
	fs.BoolVar(&c.debugAll, "debug-all", false, "print debug output even if the run succeeds")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			c.overrides.BaseURL = &baseURL
		case "admin-user":
			c.overrides.AdminUsername = &adminUsername
		case "admin-password":
			c.overrides.AdminPassword = &adminPassword
		case "member-password":
			c.overrides.MemberPassword = &memberPassword
		case "keep-data":
			c.overrides.PreserveData = &keepData
		}
	})
	return true
}
