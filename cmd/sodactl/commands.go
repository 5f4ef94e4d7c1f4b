package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/provider"
	"github.com/Aleph-Alpha/docstore/v1/query"
)

func newEnsureCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure <collection>",
		Short: "Create the collection when it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
				if err := p.EnsureCollection(ctx, args[0]); err != nil {
					return nil, err
				}
				return map[string]string{"collection": args[0]}, nil
			})
		},
	}
}

func newCreateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <collection> <document>",
		Short: "Insert a document and print its envelope",
		Long: `Insert a document. The document is inline JSON, @path for a file or - for
standard input.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
				return p.Create(ctx, args[0], doc)
			})
		},
	}
}

func newGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Print one document by key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
				return p.Retrieve(ctx, args[0], args[1])
			})
		},
	}
}

func newUpdateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <collection> <id> <document>",
		Short: "Replace an existing document",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[2])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
				return p.Update(ctx, args[0], args[1], doc)
			})
		},
	}
}

func newUpsertCommand(opts *RootOptions) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "upsert <collection> <document>",
		Short: "Replace the document with --id, or insert it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
				return p.Upsert(ctx, args[0], id, doc)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "key of the document to replace")
	return cmd
}

func newDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Remove one document by key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
				if err := p.Delete(ctx, args[0], args[1]); err != nil {
					return nil, err
				}
				return map[string]string{"deleted": args[1]}, nil
			})
		},
	}
}

// pageFlags binds the paging flags shared by list and filter.
func pageFlags(cmd *cobra.Command) *document.Page {
	page := document.NewPage()
	var desc bool
	cmd.Flags().IntVar(&page.PageNumber, "page", page.PageNumber, "1-based page number")
	cmd.Flags().IntVar(&page.ItemsPerPage, "per-page", page.ItemsPerPage, "documents per page")
	cmd.Flags().StringVar(&page.OrderingPath, "order-by", "", "document path to sort on")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.PreRun = func(*cobra.Command, []string) {
		if desc {
			page.Ordering = document.Descending
		}
	}
	return page
}

func newListCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "Print one page of a collection",
		Args:  cobra.ExactArgs(1),
	}
	page := pageFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
			return p.List(ctx, args[0], page)
		})
	}
	return cmd
}

func newFilterCommand(opts *RootOptions) *cobra.Command {
	var where []string
	cmd := &cobra.Command{
		Use:   "filter <collection> [raw-filter]",
		Short: "Print the documents matching a filter",
		Long: `Print the documents matching a filter.

Either pass a native filter, a query-by-example document for the rest and
qbe backends or a SQL predicate for the sql backend, or build a portable
query with --where. Each --where is key=value, key>value or key<value;
integer values compare as numbers. All conditions must hold.`,
		Args: cobra.RangeArgs(1, 2),
	}
	page := pageFlags(cmd)
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition key=value, key>value or key<value (repeatable)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 && len(where) > 0 {
			return fmt.Errorf("raw filter and --where are mutually exclusive")
		}
		if len(args) == 2 {
			return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
				return p.FilterRaw(ctx, args[0], args[1], page)
			})
		}
		q, err := parseWhere(where)
		if err != nil {
			return err
		}
		return opts.run(cmd, func(ctx context.Context, p provider.Provider) (interface{}, error) {
			return p.Filter(ctx, args[0], q, page)
		})
	}
	return cmd
}

// parseWhere turns key=value conditions into a query.
func parseWhere(conditions []string) (*query.Query, error) {
	q := query.New()
	for _, c := range conditions {
		i := strings.IndexAny(c, "=<>")
		if i <= 0 || i == len(c)-1 {
			return nil, fmt.Errorf("invalid condition %q: want key=value, key>value or key<value", c)
		}
		key, value := c[:i], c[i+1:]
		compare := query.Equals
		switch c[i] {
		case '>':
			compare = query.GreaterThan
		case '<':
			compare = query.LessThan
		}

		if n, err := strconv.Atoi(value); err == nil {
			q.With(query.Int(key, n, compare))
		} else {
			q.With(query.String(key, value, compare))
		}
	}
	return q, nil
}

// readDocument resolves inline JSON, @path or - for stdin.
func readDocument(stdin io.Reader, arg string) (json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case arg == "-":
		data, err = io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		data, err = os.ReadFile(arg[1:])
	default:
		data = []byte(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if !json.Valid(data) {
		return nil, document.Validationf("document is not valid JSON")
	}
	return json.RawMessage(data), nil
}
