package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"postcraft/internal/domain"
	"postcraft/internal/http/handlers"
	"postcraft/internal/imageinput"
	"postcraft/internal/infra"
	"postcraft/internal/prompt"
	"postcraft/internal/schema"
	"postcraft/internal/session"
	"postcraft/internal/storage"
	"postcraft/internal/template"
)

// promptSuffix names the files written by batch.
const promptSuffix = ".prompt.txt"

type analyzerFactory func(ctx context.Context) (handlers.Analyzer, error)

type cli struct {
	cfg         *infra.Config
	logger      infra.Logger
	catalog     *template.Catalog
	newAnalyzer analyzerFactory
}

func newRootCmd(cfg *infra.Config, logger infra.Logger, newAnalyzer analyzerFactory) *cobra.Command {
	c := &cli{cfg: cfg, logger: logger, catalog: template.Builtin(), newAnalyzer: newAnalyzer}

	root := &cobra.Command{
		Use:           "promptc",
		Short:         "Compile image-editing prompts from analysis files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		c.templatesCmd(),
		c.compileCmd(),
		c.productCmd(),
		c.batchCmd(),
		c.analyzeCmd(),
	)
	return root
}

func (c *cli) templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in style templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMOOD\tCOLORS\tDESCRIPTION")
			for _, t := range c.catalog.List() {
				g := t.Defaults.GlobalSetting
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, g.Mood, g.ColorScheme, t.Description)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) compileCmd() *cobra.Command {
	var analysisPath, settingsPath, globalPath, templateID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the element prompt for an analysis file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analysis, err := readAnalysis(analysisPath)
			if err != nil {
				return err
			}
			state := template.Initial(analysis.Elements)
			if settingsPath != "" {
				if err := readJSON(settingsPath, &state.Settings); err != nil {
					return err
				}
				if ids := prompt.Unresolved(analysis, state.Settings); len(ids) > 0 {
					c.logger.Warn().Strs("element_ids", ids).Msg("settings reference unknown elements; skipped")
				}
			}
			if globalPath != "" {
				// Keys missing from the file keep their baseline values.
				if err := readJSON(globalPath, &state.Global); err != nil {
					return err
				}
			}
			ws, err := session.Restore(analysis, state)
			if err != nil {
				return err
			}
			if templateID != "" {
				t, err := c.catalog.Get(templateID)
				if err != nil {
					return err
				}
				ws = ws.SelectTemplate(t)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, map[string]any{"state": ws.State(), "prompt": ws.Prompt()})
			}
			_, err = fmt.Fprintln(out, ws.Prompt())
			return err
		},
	}
	cmd.Flags().StringVar(&analysisPath, "analysis", "", "analysis JSON file")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "element settings JSON file")
	cmd.Flags().StringVar(&globalPath, "global", "", "global setting JSON file")
	cmd.Flags().StringVar(&templateID, "template", "", "style template to apply")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print state and prompt as JSON")
	_ = cmd.MarkFlagRequired("analysis")
	return cmd
}

func (c *cli) productCmd() *cobra.Command {
	var analysisPath, infoPath, zipPath string

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Compile the seven product prompts for a product analysis file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(analysisPath)
			if err != nil {
				return err
			}
			analysis, err := schema.ParseProductAnalysis(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", analysisPath, err)
			}
			info, err := readProductInfo(infoPath)
			if err != nil {
				return err
			}
			prompts := prompt.BuildProductPrompts(info, analysis)

			if zipPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt.ConcatenateForClipboard(prompts))
				return err
			}
			data, err := prompt.Bundle(prompts)
			if err != nil {
				return err
			}
			store, err := storage.NewFileStore(filepath.Dir(zipPath))
			if err != nil {
				return err
			}
			if _, err := store.Write(cmd.Context(), filepath.Base(zipPath), data); err != nil {
				return err
			}
			c.logger.Info().Str("path", zipPath).Int("bytes", len(data)).Msg("wrote prompt bundle")
			return nil
		},
	}
	cmd.Flags().StringVar(&analysisPath, "analysis", "", "product analysis JSON file")
	cmd.Flags().StringVar(&infoPath, "info", "", "product info JSON file")
	cmd.Flags().StringVar(&zipPath, "zip", "", "write a zip bundle instead of printing")
	_ = cmd.MarkFlagRequired("analysis")
	return cmd
}

func (c *cli) batchCmd() *cobra.Command {
	var outDir, templateID string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch [analysis.json...]",
		Short: "Compile many analysis files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFileStore(outDir)
			if err != nil {
				return err
			}
			var tmpl *domain.StyleTemplate
			if templateID != "" {
				t, err := c.catalog.Get(templateID)
				if err != nil {
					return err
				}
				tmpl = &t
			}

			written := make([]string, len(args))
			eg, egCtx := errgroup.WithContext(cmd.Context())
			if concurrency > 0 {
				eg.SetLimit(concurrency)
			}
			for i, path := range args {
				eg.Go(func() error {
					analysis, err := readAnalysis(path)
					if err != nil {
						return err
					}
					ws := session.New(analysis)
					if tmpl != nil {
						ws = ws.SelectTemplate(*tmpl)
					}
					key, err := store.WriteText(egCtx, outputName(path), ws.Prompt()+"\n")
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					written[i] = key
					c.logger.Debug().Str("input", path).Str("output", key).Msg("compiled prompt")
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range written {
				p, _ := store.Path(key)
				fmt.Fprintln(out, p)
			}
			c.logger.Info().Int("files", len(written)).Str("out", outDir).Msg("batch compiled")
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().StringVar(&templateID, "template", "", "style template to apply to every file")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "files compiled in parallel")
	return cmd
}

func (c *cli) analyzeCmd() *cobra.Command {
	var imagePath, infoPath string
	var product bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an image with Gemini and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			img, err := imageinput.Load(imagePath, c.cfg.MaxUploadBytes)
			if err != nil {
				return err
			}
			analyzer, err := c.newAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !product {
				res, err := analyzer.AnalyzeImage(cmd.Context(), img)
				if err != nil {
					return err
				}
				ws := session.New(res)
				return writeJSON(out, map[string]any{"analysis": res, "state": ws.State(), "prompt": ws.Prompt()})
			}

			info, err := readProductInfo(infoPath)
			if err != nil {
				return err
			}
			res, err := analyzer.AnalyzeProduct(cmd.Context(), img, info)
			if err != nil {
				return err
			}
			return writeJSON(out, map[string]any{"analysis": res, "prompts": prompt.BuildProductPrompts(info, res)})
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "PNG, JPEG or WEBP image")
	cmd.Flags().BoolVar(&product, "product", false, "analyze as a product photo")
	cmd.Flags().StringVar(&infoPath, "info", "", "product info JSON file (with --product)")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func readJSON(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func readAnalysis(path string) (domain.AnalysisResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	res, err := schema.ParseAnalysis(raw)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func readProductInfo(path string) (domain.ProductInfo, error) {
	if path == "" {
		return domain.ProductInfo{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ProductInfo{}, err
	}
	info, err := schema.ParseProductInfo(raw)
	if err != nil {
		return domain.ProductInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputName maps "dir/post.json" to "post.prompt.txt".
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + promptSuffix
}
