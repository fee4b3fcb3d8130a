// Copyright (c) 2021 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/tvartifacts"
	"github.com/forensicanalysis/tvartifacts/config"
	"github.com/forensicanalysis/tvartifacts/logger"
	"github.com/forensicanalysis/tvartifacts/store"
)

// Root is the tvartifacts commandline with all subcommands.
func Root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tvartifacts",
		Short:         "Extract TeamViewer artifacts from disk images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(Extract(), Element(), Types())
	return rootCmd
}

// Extract is the tvartifacts extract commandline subcommand
func Extract() *cobra.Command {
	var source, storeName, configFile string
	var debug bool
	extractCommand := &cobra.Command{
		Use:   "extract",
		Short: "Extract TeamViewer artifacts from a mounted image into a new store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configFile)
			if err != nil {
				return err
			}
			if debug {
				cfg.Log.Debug = true
			}
			if err := logger.Init(cfg.Log); err != nil {
				return err
			}

			info, err := os.Stat(source)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("source %s is not a directory", source)
			}

			artifactStore, err := store.New(storeName)
			if err != nil {
				return errors.Wrap(err, storeName)
			}
			defer artifactStore.Close()

			image := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), source))
			analyzer := tvartifacts.NewAnalyzer(cfg, image, artifactStore, logger.WithComponent("analyzer"))
			if err := analyzer.Setup(); err != nil {
				return err
			}
			summary, err := analyzer.Process()
			if err != nil {
				return err
			}

			b, _ := json.Marshal(summary)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return nil
		},
	}
	extractCommand.Flags().StringVar(&source, "source", "", "root directory of the mounted image")
	extractCommand.Flags().StringVar(&storeName, "store", "", "store file to create")
	extractCommand.Flags().StringVar(&configFile, "config", "", "json configuration file")
	extractCommand.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	_ = extractCommand.MarkFlagRequired("source")
	_ = extractCommand.MarkFlagRequired("store")
	return extractCommand
}

// Element is the tvartifacts element commandline subcommand
func Element() *cobra.Command {
	elementCommand := &cobra.Command{
		Use:   "element",
		Short: "Read extracted artifacts from a store",
	}
	elementCommand.AddCommand(getCommand(), selectCommand(), allCommand(), searchCommand())
	return elementCommand
}

// Types is the tvartifacts types commandline subcommand
func Types() *cobra.Command {
	return &cobra.Command{
		Use:   "types <store>",
		Short: "List the element types of a store and their fields",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifactStore, err := store.Open(args[0])
			if err != nil {
				return err
			}
			defer artifactStore.Close()
			b, _ := json.Marshal(artifactStore.Types())
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return nil
		},
	}
}

func requireOneStore(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("requires exactly one store")
	}
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return errors.Wrap(os.ErrNotExist, args[0])
	}
	return nil
}
