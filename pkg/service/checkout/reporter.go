package checkout

import (
	"fmt"
	"io"

	"github.com/amirasaad/paymethods/pkg/money"
	"github.com/fatih/color"
)

// ConsoleReporter writes one line per outcome.
type ConsoleReporter struct {
	out   io.Writer
	ok    *color.Color
	fail  *color.Color
	muted *color.Color
}

// NewConsoleReporter creates a reporter writing to out. Colors follow
// fatih/color's terminal detection unless noColor is set.
func NewConsoleReporter(out io.Writer, noColor bool) *ConsoleReporter {
	r := &ConsoleReporter{
		out:   out,
		ok:    color.New(color.FgGreen, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		muted: color.New(color.Faint),
	}
	if noColor {
		r.ok.DisableColor()
		r.fail.DisableColor()
		r.muted.DisableColor()
	}
	return r
}

// Report prints the outcome of a single payment method.
func (r *ConsoleReporter) Report(o Outcome) {
	prefix := fmt.Sprintf("[%d] %s", o.Position, o.Method)
	switch o.Status {
	case StatusConfirmed:
		fmt.Fprintf(r.out, "%s %s: %s\n", prefix, r.ok.Sprint("SUCCESS"), o.Result.TransactionID) //nolint:errcheck
		if !o.Result.CryptoAmount.IsZero() {
			fmt.Fprintf(r.out, "    %s %s %s (rate %s)\n", //nolint:errcheck
				r.muted.Sprint("charged"),
				o.Result.CryptoAmount.StringFixed(money.CryptoDecimals),
				o.Method,
				o.Result.CombinedRate.String(),
			)
		}
	case StatusFailed:
		fmt.Fprintf(r.out, "%s %s: %s\n", prefix, r.fail.Sprint("FAILED"), o.Result.Code) //nolint:errcheck
	case StatusInvalid:
		fmt.Fprintf(r.out, "%s %s: payment details failed validation\n", prefix, r.fail.Sprint("INVALID")) //nolint:errcheck
	}
}

// Summarize prints the totals line.
func (r *ConsoleReporter) Summarize(s Summary) {
	fmt.Fprintf(r.out, "%s %d processed, %d confirmed, %d failed, %d invalid\n", //nolint:errcheck
		r.muted.Sprint("done:"), s.Total(), s.Confirmed, s.Failed, s.Invalid)
}

var _ Reporter = (*ConsoleReporter)(nil)
