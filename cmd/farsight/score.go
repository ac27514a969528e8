package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/audit"
	"github.com/farsight-cli/farsight/internal/calibration"
	"github.com/farsight-cli/farsight/internal/decision"
	"github.com/farsight-cli/farsight/internal/parser"
	"github.com/farsight-cli/farsight/internal/render"
)

var (
	scoreReScore     bool
	scoreReflections string
)

var scoreCmd = &cobra.Command{
	Use:   "score [PREFIX]",
	Short: "Record actual outcomes for a decision",
	Long: `Record what actually happened. For each metric you are prompted for
the observed value; answers are parsed leniently ("$1,200", "about 85"),
and a blank answer skips a metric you cannot observe yet.

Without PREFIX, pick from the unscored decisions. Scoring an
already-scored decision is rejected unless --re-score is set, in which
case the old outcomes are overwritten and the change is shown as a diff
first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}

		in := bufio.NewReader(os.Stdin)
		var d decision.Decision
		if len(args) == 1 {
			d, err = st.Get(args[0])
		} else {
			d, err = pickUnscored(in, os.Stdout, st)
		}
		if err != nil {
			return err
		}

		if d.Scored() && !scoreReScore {
			return fmt.Errorf("decision [%s] was already scored on %s; pass --re-score to overwrite",
				d.ID, d.ScoredAt.Format("2006-01-02"))
		}

		var before []byte
		if d.Scored() {
			if before, err = json.MarshalIndent(&d, "", "  "); err != nil {
				return fmt.Errorf("snapshot record: %w", err)
			}
		}

		fmt.Printf("Scoring [%s]: %s\n", d.ID, d.Question)
		fmt.Printf("Chosen: %s\n\n", d.ChosenOption)

		outcomes, err := collectOutcomes(in, os.Stdout, &d)
		if err != nil {
			return err
		}
		if len(outcomes) == 0 {
			fmt.Println("No outcomes recorded.")
			return nil
		}

		reflections := scoreReflections
		if reflections == "" {
			reflections = promptLine(in, os.Stdout, "Reflections (optional): ")
		}

		if err := d.Score(outcomes, reflections, time.Now().UTC()); err != nil {
			return err
		}

		if before != nil {
			after, err := json.MarshalIndent(&d, "", "  ")
			if err != nil {
				return fmt.Errorf("snapshot record: %w", err)
			}
			diff, err := unifiedDiff(before, after, d.ID+" (scored)", d.ID+" (re-scored)")
			if err != nil {
				return fmt.Errorf("diff records: %w", err)
			}
			fmt.Printf("\nOverwriting previous score:\n%s\n", diff)
		}

		if err := st.Update(d); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		auditLog(cfg, audit.EventScore, map[string]any{"id": d.ID, "outcomes": outcomes})

		fmt.Println()
		if err := render.Outcomes(os.Stdout, &d); err != nil {
			return err
		}

		all, err := st.List()
		if err != nil {
			return err
		}
		fmt.Println()
		return render.Calibration(os.Stdout, calibration.New(cfg.ConfidenceTolerance).Report(all))
	},
}

// pickUnscored lists unscored decisions and reads a numbered selection.
func pickUnscored(r *bufio.Reader, w io.Writer, st interface {
	ListUnscored() ([]decision.Decision, error)
}) (decision.Decision, error) {
	unscored, err := st.ListUnscored()
	if err != nil {
		return decision.Decision{}, err
	}
	if len(unscored) == 0 {
		return decision.Decision{}, errors.New("no unscored decisions to score")
	}

	fmt.Fprintf(w, "Unscored decisions:\n\n")
	for i := range unscored {
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, unscored[i].ID, unscored[i].Question)
	}
	fmt.Fprintln(w)

	choice := promptLine(r, w, "Enter number to score (or q to quit): ")
	if strings.EqualFold(choice, "q") {
		return decision.Decision{}, errors.New("cancelled")
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(unscored) {
		return decision.Decision{}, fmt.Errorf("invalid selection %q", choice)
	}
	return unscored[idx-1], nil
}

// collectOutcomes prompts for one observed value per metric. Blank skips
// the metric; an unparseable answer re-prompts; EOF ends the session with
// whatever was gathered.
func collectOutcomes(r *bufio.Reader, w io.Writer, d *decision.Decision) (map[string]float64, error) {
	if d.ChosenOption == "" {
		return nil, decision.ErrNotDecided
	}
	chosen, _ := d.OptionByName(d.ChosenOption)

	outcomes := make(map[string]float64)
	for _, m := range d.Metrics {
		if chosen != nil {
			if f, ok := chosen.Forecasts[m.Name]; ok {
				fmt.Fprintf(w, "%s: forecast %g (%g–%g @ %.0f%%)\n",
					m.Name, f.PointEstimate, f.Interval.Low, f.Interval.High, f.ConfidenceLevel*100)
			}
		}
		for {
			answer, eof := readLine(r, w, fmt.Sprintf("  Actual %s%s (blank to skip): ", m.Name, unitHint(m.Unit)))
			if answer == "" {
				if eof {
					return outcomes, nil
				}
				break
			}
			v, err := parser.Number(answer)
			if err != nil {
				fmt.Fprintf(w, "  could not read a number in %q, try again\n", answer)
				if eof {
					return outcomes, nil
				}
				continue
			}
			outcomes[m.Name] = v
			if eof {
				return outcomes, nil
			}
			break
		}
	}
	return outcomes, nil
}

func unitHint(unit string) string {
	if unit == "" {
		return ""
	}
	return " (" + unit + ")"
}

// promptLine prints a prompt and reads one trimmed line.
func promptLine(r *bufio.Reader, w io.Writer, prompt string) string {
	line, _ := readLine(r, w, prompt)
	return line
}

// readLine reads one trimmed line, reporting whether input is exhausted.
func readLine(r *bufio.Reader, w io.Writer, prompt string) (string, bool) {
	fmt.Fprint(w, prompt)
	line, err := r.ReadString('\n')
	return strings.TrimSpace(line), err != nil
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreReScore, "re-score", false, "Overwrite an existing score")
	scoreCmd.Flags().StringVar(&scoreReflections, "reflections", "", "Retrospective note to store with the outcomes")
	rootCmd.AddCommand(scoreCmd)
}
