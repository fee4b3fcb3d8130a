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
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/tvartifacts/store"
)

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id> <store>",
		Short: "Retrieve a single element",
		Args:  cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			artifactStore, err := store.Open(args[1])
			if err != nil {
				return err
			}
			defer artifactStore.Close()
			element, err := artifactStore.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", element)
			return nil
		},
	}
}

func selectCommand() *cobra.Command {
	var filters []string
	var field string
	selectCommand := &cobra.Command{
		Use:   "select <type> <store>",
		Short: "Retrieve a list of all elements of a specific type",
		Args:  cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions, err := parseFilters(filters)
			if err != nil {
				return err
			}
			artifactStore, err := store.Open(args[1])
			if err != nil {
				return err
			}
			defer artifactStore.Close()
			elements, err := artifactStore.Select(args[0], conditions)
			if err != nil {
				return err
			}
			if field != "" {
				printField(cmd.OutOrStdout(), elements, field)
				return nil
			}
			return printElements(cmd.OutOrStdout(), elements)
		},
	}
	selectCommand.Flags().StringArrayVar(&filters, "filter", nil, "only elements where key LIKE value, e.g. value=123%")
	selectCommand.Flags().StringVar(&field, "field", "", "print only this field of each element")
	return selectCommand
}

func allCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all <store>",
		Short: "Retrieve all elements",
		Args:  requireOneStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifactStore, err := store.Open(args[0])
			if err != nil {
				return err
			}
			defer artifactStore.Close()
			elements, err := artifactStore.All()
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), elements)
		},
	}
}

func searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query> <store>",
		Short: "Full text search over all elements",
		Args:  cobra.ExactArgs(2), //nolint:gomnd
		RunE: func(cmd *cobra.Command, args []string) error {
			artifactStore, err := store.Open(args[1])
			if err != nil {
				return err
			}
			defer artifactStore.Close()
			elements, err := artifactStore.Search(args[0])
			if err != nil {
				return err
			}
			return printElements(cmd.OutOrStdout(), elements)
		},
	}
}

func parseFilters(filters []string) ([]map[string]string, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	condition := map[string]string{}
	for _, filter := range filters {
		parts := strings.SplitN(filter, "=", 2) //nolint:gomnd
		if len(parts) != 2 || parts[0] == "" { //nolint:gomnd
			return nil, fmt.Errorf("filter %q is not key=value", filter)
		}
		condition[parts[0]] = parts[1]
	}
	return []map[string]string{condition}, nil
}

func printElements(w io.Writer, elements []store.JSONElement) error {
	raw := make([]json.RawMessage, len(elements))
	for i, element := range elements {
		raw[i] = json.RawMessage(element)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", b)
	return nil
}

func printField(w io.Writer, elements []store.JSONElement, field string) {
	for _, element := range elements {
		if value := gjson.GetBytes(element, field); value.Exists() {
			fmt.Fprintln(w, value.String())
		}
	}
}
