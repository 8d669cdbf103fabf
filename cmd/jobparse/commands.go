package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/jobpost/internal/batch"
	"github.com/dgallion1/jobpost/internal/cleaner"
	"github.com/dgallion1/jobpost/internal/config"
	"github.com/dgallion1/jobpost/internal/parser"
	"github.com/dgallion1/jobpost/internal/posting"
	"github.com/dgallion1/jobpost/internal/vocab"
)

type rootOptions struct {
	vocabFile string
	foldWidth bool
	cfg       config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Load()}

	root := &cobra.Command{
		Use:           "jobparse",
		Short:         "Split Japanese job postings into sections",
		Long:          `Detect section headers in Japanese recruitment copy and print a structured record as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.vocabFile, "vocab", opts.cfg.VocabularyFile, "YAML header vocabulary (default: built-in)")
	root.PersistentFlags().BoolVar(&opts.foldWidth, "fold-width", opts.cfg.FoldWidth, "fold full-width ASCII and half-width katakana before parsing")

	root.AddCommand(newParseCmd(opts), newBatchCmd(opts), newVocabCmd(opts))
	return root
}

func (o *rootOptions) vocabulary() (*vocab.Vocabulary, error) {
	if o.vocabFile == "" {
		return vocab.Default(), nil
	}
	return vocab.Load(o.vocabFile)
}

func (o *rootOptions) parser(errOut io.Writer) (*posting.Parser, error) {
	v, err := o.vocabulary()
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLevel(o.cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: level}))
	return posting.New(
		posting.WithVocabulary(v),
		posting.WithCleaner(cleaner.New(cleaner.Options{FoldWidth: o.foldWidth})),
		posting.WithLogger(log),
		posting.WithReaderOptions(parser.Options{PDFFallbackPdftotext: o.cfg.PDFFallbackPdftotext}),
	), nil
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse one posting and print the record",
		Long: `Parse a posting file (.txt, .md, .html, .pdf, .docx) or standard input ("-").
With no argument the built-in sample posting is parsed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.parser(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var rec any
			switch {
			case len(args) == 0:
				rec = p.Parse(posting.Sample)
			case args[0] == "-":
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				rec = p.Parse(string(data))
			default:
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r, err := p.ParseReader(f, args[0])
				if err != nil {
					return err
				}
				rec = r
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(rec)
		},
	}
}

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var column string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Parse every posting in a CSV export and print JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.parser(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			items, err := batch.ReadCSV(f, column)
			if err != nil {
				return err
			}
			results, err := batch.Run(cmd.Context(), p, items, concurrency)
			if err != nil {
				return err
			}
			return batch.WriteJSONL(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "CSV column holding the posting text (default: 本文, text, description or posting)")
	cmd.Flags().IntVar(&concurrency, "concurrency", opts.cfg.BatchConcurrency, "number of postings parsed in parallel")
	return cmd
}

func newVocabCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Print the active header vocabulary as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.vocabulary()
			if err != nil {
				return err
			}
			out, err := vocab.Marshal(v)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
