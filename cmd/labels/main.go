// Command labels resolves menRva vocabulary slugs to their display labels
// from the command line, and dumps the vocabularies for other tools.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/menrva/internal/domain"
	"github.com/pkordes/menrva/internal/labels"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "labels",
		Short: "Resolve vocabulary slugs to display labels",
		Long: `Resolve license, subject source and permission slugs to the labels
shown in the records UI.

Examples:
  labels license cc-by
  labels subject MeSH
  labels access restricted_view
  labels class --type published --permissions all_view
  labels vocab --format json | jq '.licenses[].name'`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(
		lookupCmd("license", "Print the display name of a license slug", labels.LicenseName),
		lookupCmd("subject", "Print the category name of a subject source", labels.SubjectCategoryName),
		accessCmd(),
		classCmd(),
		vocabCmd(),
	)
	return root
}

// lookupCmd builds a command around a (name, ok) lookup. A miss is an error
// so scripts can test the exit status.
func lookupCmd(use, short string, lookup func(string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <slug>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown %s %q", use, args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
}

func accessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access <permission>",
		Short: "Print the access tier label of a permission slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), labels.AccessTierLabel(args[0]))
			return err
		},
	}
}

func classCmd() *cobra.Command {
	var recordType, permissions string
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Print the badge CSS class of a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec := domain.Record{Metadata: domain.Metadata{
				Type:        domain.RecordType(recordType),
				Permissions: permissions,
			}}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), labels.RecordLabelClass(rec))
			return err
		},
	}
	cmd.Flags().StringVarP(&recordType, "type", "t", string(domain.RecordTypeDraft), "Record type (draft or published)")
	cmd.Flags().StringVarP(&permissions, "permissions", "p", "", "Permission slug, e.g. all_view")
	return cmd
}

func vocabCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Dump licenses, subject sources and permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeVocabulary(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	return cmd
}

var errUnknownFormat = errors.New("unknown format")

func writeVocabulary(w io.Writer, format string) error {
	v := labels.Vocabularies()
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("%w %q (want yaml or json)", errUnknownFormat, format)
	}
}
