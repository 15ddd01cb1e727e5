package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/teachme/internal/document"
	"github.com/abhisek/teachme/internal/lesson"
	"github.com/abhisek/teachme/internal/logger"
	"github.com/abhisek/teachme/internal/render"
)

var teachCmd = &cobra.Command{
	Use:   "teach [topic]",
	Short: "Generate a lesson for a topic or a document",
	Long: `Generate a lesson for a topic, or for the contents of a document passed
with --file. The lesson is printed to stdout and can also be written as HTML
or PDF.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetString("depth")
		file, _ := cmd.Flags().GetString("file")
		htmlOut, _ := cmd.Flags().GetString("html")
		pdfOut, _ := cmd.Flags().GetString("pdf")
		planOnly, _ := cmd.Flags().GetBool("plan-only")

		var topic string
		if len(args) == 1 {
			topic = args[0]
		}
		if strings.TrimSpace(topic) == "" && file == "" {
			return fmt.Errorf("a topic or --file is required")
		}

		d, err := buildDeps(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		ctx := logger.ToContext(cmd.Context(), d.log)

		req := lesson.Request{Topic: topic, Depth: depth}
		if file != "" {
			source, err := readDocument(cmd, d, file)
			if err != nil {
				return err
			}
			req.Source = source
		}

		if planOnly {
			subtopics, err := d.lessons.Preview(ctx, req)
			if err != nil {
				return err
			}
			for i, s := range subtopics {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, s)
			}
			return nil
		}

		l, err := d.lessons.Generate(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), l.Content)

		if htmlOut != "" {
			if err := writeRendered(render.NewHTMLFormatter(), l, htmlOut); err != nil {
				return err
			}
		}
		if pdfOut != "" {
			if err := writeRendered(render.NewPDFFormatter(), l, pdfOut); err != nil {
				return err
			}
		}
		return nil
	},
}

func readDocument(cmd *cobra.Command, d *deps, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := document.New(filepath.Base(path), "", data)
	if err != nil {
		return "", err
	}
	text := d.extractor.ExtractText(cmd.Context(), doc)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text could be extracted from %s", path)
	}
	return text, nil
}

func writeRendered(f render.Formatter, l *lesson.Lesson, path string) error {
	out, err := f.Format(l)
	if err != nil {
		return fmt.Errorf("render %s: %w", f.FileExtension(), err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}

func init() {
	teachCmd.Flags().StringP("depth", "d", "briefly", "Lesson depth: briefly, thorough or advanced")
	teachCmd.Flags().StringP("file", "f", "", "Teach from a document (PDF, text or markdown)")
	teachCmd.Flags().String("html", "", "Also write the lesson as HTML to this path")
	teachCmd.Flags().String("pdf", "", "Also write the lesson as PDF to this path")
	teachCmd.Flags().Bool("plan-only", false, "Print the planned subtopics without writing the lesson")
}
