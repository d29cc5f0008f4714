package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srazzak/tutorsite/internal/docx"
	"github.com/srazzak/tutorsite/internal/export"
	"github.com/srazzak/tutorsite/internal/guard"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file.docx]",
	Short: "Convert a Word document to HTML, Markdown or an outline",
	Long: `Converts a local .docx file with the same converter the server uses.
By default the raw HTML fragment is printed; --guard adds the watermark and
protection styles exactly as the conversion endpoints do.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("guard", false, "wrap the HTML as served to the viewer")
	convertCmd.Flags().Bool("markdown", false, "print Markdown instead of HTML")
	convertCmd.Flags().Bool("outline", false, "print the heading outline")
	convertCmd.Flags().Bool("json", false, "print the conversion result as JSON")
	convertCmd.MarkFlagsMutuallyExclusive("markdown", "outline", "json")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	guarded, _ := cmd.Flags().GetBool("guard")
	asMarkdown, _ := cmd.Flags().GetBool("markdown")
	asOutline, _ := cmd.Flags().GetBool("outline")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := docx.ConvertFile(args[0], cfg.MaxDocumentBytes)
	if err != nil {
		return fmt.Errorf("converting %s: %w", args[0], err)
	}
	for _, m := range res.Messages {
		fmt.Fprintf(os.Stderr, "%s: %s\n", m.Severity, m.Text)
	}

	out := cmd.OutOrStdout()
	html := res.HTML
	if guarded {
		html = guard.Guard(html)
	}

	switch {
	case asMarkdown:
		md, err := export.Markdown(res.HTML)
		if err != nil {
			return err
		}
		fmt.Fprint(out, md)
	case asOutline:
		headings, err := export.Outline(res.HTML)
		if err != nil {
			return err
		}
		fmt.Fprint(out, export.FormatOutline(headings))
	case asJSON:
		msgs := res.Messages
		if msgs == nil {
			msgs = []docx.Message{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			HTML     string         `json:"html"`
			Messages []docx.Message `json:"messages"`
		}{html, msgs})
	default:
		fmt.Fprintln(out, html)
	}
	return nil
}
