package cmd

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/spf13/cobra"

	"github.com/srazzak/tutorsite/internal/catalog"
	"github.com/srazzak/tutorsite/internal/contenttree"
	"github.com/srazzak/tutorsite/internal/docx"
	"github.com/srazzak/tutorsite/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every catalog document exists and converts",
	Long: `Resolves each topic in the catalog against its content tree and runs the
converter on it. Documents on disk that no catalog topic points to are listed
as unreferenced. Exits non-zero when any catalog document is missing or broken.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-convert", false, "only check that files exist")
	rootCmd.AddCommand(checkCmd)
}

// checkProblem is a catalog topic that failed to resolve or convert.
type checkProblem struct {
	Ref catalog.Ref
	Err error
}

type checkReport struct {
	Checked      int
	Warnings     int
	Problems     []checkProblem
	Unreferenced []string
}

func runCheck(cmd *cobra.Command, args []string) error {
	noConvert, _ := cmd.Flags().GetBool("no-convert")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	limit := cfg.MaxDocumentBytes
	if noConvert {
		limit = 0
	}
	rep := checkDocuments(catalog.Default(), reg, limit, progress.NewReporter("Checking documents"))
	printCheckReport(cmd.OutOrStdout(), rep)

	if len(rep.Problems) > 0 {
		return fmt.Errorf("%d of %d catalog documents failed", len(rep.Problems), rep.Checked)
	}
	return nil
}

// checkDocuments resolves and, when limit > 0, converts every catalog topic.
func checkDocuments(cat *catalog.Catalog, reg *contenttree.Registry, limit int64, r progress.Reporter) checkReport {
	refs := cat.Documents()
	var rep checkReport
	seen := make(map[contenttree.Kind]map[string]bool)

	r.Start(len(refs))
	for i, ref := range refs {
		r.Update(i+1, ref.Topic.File)
		rep.Checked++

		tree, ok := reg.Get(ref.Course.Tree)
		if !ok {
			rep.Problems = append(rep.Problems, checkProblem{ref, fmt.Errorf("no content tree %q", ref.Course.Tree)})
			continue
		}
		req := ref.Request()
		if seen[tree.Kind] == nil {
			seen[tree.Kind] = make(map[string]bool)
		}
		sub, _ := tree.Subdir(tree.Discriminator(req))
		seen[tree.Kind][path.Join(sub, req.Filename)] = true

		p, err := tree.Resolve(req)
		if err != nil {
			rep.Problems = append(rep.Problems, checkProblem{ref, err})
			continue
		}
		if limit <= 0 {
			continue
		}
		res, err := docx.ConvertFile(p, limit)
		if err != nil {
			rep.Problems = append(rep.Problems, checkProblem{ref, err})
			continue
		}
		rep.Warnings += len(res.Messages)
	}
	r.Finish()

	for _, tree := range reg.Trees() {
		entries, err := contenttree.Inventory(tree, nil, nil)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !seen[tree.Kind][e.RelPath] {
				rep.Unreferenced = append(rep.Unreferenced, path.Join(string(tree.Kind), e.RelPath))
			}
		}
	}
	return rep
}

func printCheckReport(w io.Writer, rep checkReport) {
	fmt.Fprintf(w, "Checked %d catalog documents: %d ok, %d failed, %d warnings\n",
		rep.Checked, rep.Checked-len(rep.Problems), len(rep.Problems), rep.Warnings)
	for _, p := range rep.Problems {
		reason := "conversion failed"
		switch {
		case errors.Is(p.Err, contenttree.ErrNotFound):
			reason = "missing"
		case !errors.Is(p.Err, docx.ErrInvalidDocument):
			reason = "error"
		}
		fmt.Fprintf(w, "  %-17s %s (%s)\n", reason, p.Ref, p.Ref.Topic.File)
		if verbose {
			fmt.Fprintf(w, "                    %v\n", p.Err)
		}
	}
	if len(rep.Unreferenced) > 0 {
		fmt.Fprintf(w, "\n%d documents on disk are not in the catalog:\n", len(rep.Unreferenced))
		for _, u := range rep.Unreferenced {
			fmt.Fprintf(w, "  %s\n", u)
		}
	}
}
