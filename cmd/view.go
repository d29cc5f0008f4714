package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srazzak/tutorsite/internal/catalog"
	"github.com/srazzak/tutorsite/internal/export"
	"github.com/srazzak/tutorsite/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view [course] [topic]",
	Short: "Fetch a catalog topic from a running server and print it",
	Long: `Opens a viewer session against a running tutorsite server, the same way the
course page does, and prints the document as Markdown. The course is a slug
such as olevel/p1 and the topic is its title or file name.`,
	Example: `  tutorsite view olevel/p1 "Binary Represents Data"
  tutorsite view olevel/p2 Trace_Table.docx --html`,
	Args: cobra.ExactArgs(2),
	RunE: runView,
}

func init() {
	viewCmd.Flags().String("url", "http://localhost:3000", "base URL of the tutorsite server")
	viewCmd.Flags().Bool("html", false, "print the guarded HTML instead of Markdown")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("url")
	asHTML, _ := cmd.Flags().GetBool("html")

	ref, err := findTopic(catalog.Default(), args[0], args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	sess := viewer.NewSession(viewer.NewHTTPFetcher(baseURL, reg), nil)
	defer sess.Close()

	doc := viewer.Document{
		Title:         ref.Topic.Title,
		Kind:          ref.Course.Tree,
		Filename:      ref.Topic.File,
		Discriminator: ref.Topic.Discriminator,
	}
	if err := sess.Open(cmd.Context(), doc); err != nil {
		return fmt.Errorf("%s: %w", viewer.DefaultPolicy().ErrorMessage, err)
	}

	html := sess.Snapshot().HTML
	out := cmd.OutOrStdout()
	if asHTML {
		fmt.Fprintln(out, html)
		return nil
	}
	md, err := export.Markdown(html)
	if err != nil {
		return err
	}
	fmt.Fprint(out, md)
	return nil
}

// findTopic looks a topic up by title or file name within a course.
func findTopic(cat *catalog.Catalog, course, topic string) (catalog.Ref, error) {
	c, ok := cat.Lookup(course)
	if !ok {
		return catalog.Ref{}, fmt.Errorf("unknown course %q", course)
	}
	for _, ref := range cat.Documents() {
		if ref.Course != c {
			continue
		}
		if strings.EqualFold(ref.Topic.Title, topic) || strings.EqualFold(ref.Topic.File, topic) {
			return ref, nil
		}
	}
	return catalog.Ref{}, fmt.Errorf("no topic %q in %s", topic, c.Slug())
}
